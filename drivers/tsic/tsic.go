// Package tsic reads TSIC 306 temperature sensors over ZACwire.
//
// The sensor sends a frame about every 100 ms without being asked: two
// packets of a start bit, eight data bits and an even parity bit. Every bit
// starts with a falling edge. The start bit is low for half a bit period
// (the strobe); a 1 is low for less than the strobe, a 0 for more.
//
// Pin edges go to Device.Edge, usually from an interrupt set up by Listen:
//
//	d := tsic.New(nowUs)
//	present := d.Listen(line)
//	...
//	c, err := d.Read()
package tsic

import (
	"errors"

	"thermosense-go/x/mathx"
)

const (
	// FrameBits is the number of low pulses in one frame.
	FrameBits  = 2 * packetBits
	packetBits = 10

	// A high period longer than this starts a new frame. Packets within a
	// frame are one bit period (125 µs) apart; frames 100 ms.
	idleGapUs = 1000

	// DefaultMaxAgeUs is how old the last frame may be before Read reports
	// ErrNoSignal.
	DefaultMaxAgeUs = 250_000
)

// Temperature range of the 11-bit TSIC 306 reading.
const (
	minC   = -50
	spanC  = 200
	rawMax = 2047
)

var (
	ErrNoSignal = errors.New("tsic: no signal")
	ErrParity   = errors.New("tsic: parity error")
	ErrFrame    = errors.New("tsic: malformed frame")
)

// Frame is the low-pulse widths of one frame in microseconds.
type Frame [FrameBits]uint16

// Capture assembles frames from pin edges.
type Capture struct {
	fallUs uint32
	riseUs uint32
	n      int
	cur    Frame

	last   Frame
	lastUs uint32
	seq    uint32
}

// Edge records a transition; high is the level after it.
func (c *Capture) Edge(high bool, nowUs uint32) {
	if !high {
		if nowUs-c.riseUs > idleGapUs {
			c.n = 0
		}
		c.fallUs = nowUs
		return
	}
	c.riseUs = nowUs
	c.cur[c.n] = uint16(mathx.Clamp(nowUs-c.fallUs, 0, 0xffff))
	c.n++
	if c.n == FrameBits {
		c.last = c.cur
		c.lastUs = nowUs
		c.seq++
		c.n = 0
	}
}

// Last returns the most recent complete frame and when it ended. ok is
// false until a frame has been seen.
func (c *Capture) Last() (f Frame, atUs uint32, ok bool) {
	return c.last, c.lastUs, c.seq > 0
}

// Decode turns a frame into °C.
func Decode(f Frame) (float32, error) {
	hi, err := packet(f[:packetBits])
	if err != nil {
		return 0, err
	}
	lo, err := packet(f[packetBits:])
	if err != nil {
		return 0, err
	}
	// Only the low three bits of the first packet carry data.
	if hi > 0x07 {
		return 0, ErrFrame
	}
	raw := uint16(hi)<<8 | uint16(lo)
	return float32(raw)*spanC/rawMax + minC, nil
}

func packet(p []uint16) (uint8, error) {
	strobe := p[0]
	if strobe == 0 {
		return 0, ErrFrame
	}
	var b uint8
	ones := 0
	for _, w := range p[1:9] {
		b <<= 1
		if w < strobe {
			b |= 1
			ones++
		}
	}
	if p[9] < strobe {
		ones++
	}
	if ones%2 != 0 {
		return 0, ErrParity
	}
	return b, nil
}

// Device decodes frames captured from one sensor.
type Device struct {
	cap      Capture
	nowUs    func() uint32
	guard    func() (release func())
	MaxAgeUs uint32
}

// New returns a Device reading time from nowUs, a free-running
// microsecond counter.
func New(nowUs func() uint32) *Device {
	return &Device{
		nowUs:    nowUs,
		guard:    func() func() { return func() {} },
		MaxAgeUs: DefaultMaxAgeUs,
	}
}

// Edge feeds one pin transition. Safe to call from an interrupt.
func (d *Device) Edge(high bool) { d.cap.Edge(high, d.nowUs()) }

// Line is the GPIO a Device listens on.
type Line interface {
	// ConfigurePulldown makes an undriven line read low.
	ConfigurePulldown()
	Get() bool
	OnToggle(fn func(high bool)) error
}

// Listen feeds edges from line into d. It reports false when the line is
// not driven high at idle, which means no sensor is powered on it.
func (d *Device) Listen(line Line) bool {
	line.ConfigurePulldown()
	if err := line.OnToggle(d.Edge); err != nil {
		return false
	}
	return line.Get()
}

// Read decodes the latest frame. It never waits for the sensor.
func (d *Device) Read() (float32, error) {
	release := d.guard()
	f, at, ok := d.cap.Last()
	release()
	if !ok || d.nowUs()-at > d.MaxAgeUs {
		return 0, ErrNoSignal
	}
	return Decode(f)
}
