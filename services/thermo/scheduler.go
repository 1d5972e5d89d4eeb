package thermo

import "thermosense-go/x/timex"

// sample is what one scheduler poll produced.
type sample struct {
	read    bool // the backend was read during this poll
	value   float32
	store   bool // value becomes the public temperature
	track   bool // value also moves the deviation reference
	newData bool // smoothing and notification run this cycle
	bad     bool // bad-reading flag after the read
}

// scheduler turns a slow acquisition into at most one sample per poll
// without blocking.
type scheduler interface {
	poll(now uint32) sample
}

// dallasScheduler runs request -> wait -> read on a one-wire bus.
// At most one conversion is outstanding.
type dallasScheduler struct {
	bus           MultiDropBus
	waitMs        uint32
	pending       bool
	lastRequestMs uint32
}

func (d *dallasScheduler) poll(now uint32) sample {
	var s sample
	if d.pending && timex.Elapsed(now, d.lastRequestMs, d.waitMs) {
		v := d.bus.ReadCByIndex(0)
		d.pending = false
		s = sample{read: true, value: v, bad: true}
		if v > DisconnectedC {
			s.bad = false
			s.store, s.track, s.newData = true, true, true
			// The next conversion is requested on the following poll.
			return s
		}
	}
	if !d.pending {
		d.lastRequestMs = now
		d.bus.RequestConversion()
		d.pending = true
	}
	return s
}

// tsicScheduler samples a free-running sensor every waitMs.
type tsicScheduler struct {
	sensor        SingleWireSensor
	waitMs        uint32
	lastRequestMs uint32
}

func (t *tsicScheduler) poll(now uint32) sample {
	if !timex.Elapsed(now, t.lastRequestMs, t.waitMs) {
		return sample{}
	}
	t.lastRequestMs = now
	v := t.sensor.ReadC()
	s := sample{read: true, value: v}
	if v != TSICBadFrame && v != TSICNoSignal {
		s.store = true
	}
	// NOTE: every read is flagged bad, stored or not, and none counts as
	// new data. Kept as observed until the product owner rules on it.
	s.bad = true
	return s
}
