// Package timex holds the millisecond clock used by the sensor loop.
//
// Timestamps are uint32 milliseconds that wrap at 2^32 (about 49.7 days).
// Elapsed time must always be taken with Since, never by comparing two
// timestamps directly.
package timex

import "time"

// Clock is a monotonic millisecond counter.
type Clock interface {
	NowMs() uint32
}

// Since returns the milliseconds elapsed from then to now, tolerating one
// wrap of the counter.
func Since(now, then uint32) uint32 { return now - then }

// Elapsed reports Since(now, then) > d.
func Elapsed(now, then, d uint32) bool { return Since(now, then) > d }

// Uptime is a Clock anchored at its creation.
type Uptime struct {
	start time.Time
}

// NewUptime starts a Clock at zero.
func NewUptime() *Uptime { return &Uptime{start: time.Now()} }

func (u *Uptime) NowMs() uint32 {
	return uint32(time.Since(u.start).Milliseconds())
}

// Manual is a settable Clock for tests and simulations.
type Manual struct {
	Ms uint32
}

func (m *Manual) NowMs() uint32 { return m.Ms }

// Advance moves the clock forward by d milliseconds, wrapping as the
// hardware counter would.
func (m *Manual) Advance(d uint32) { m.Ms += d }
