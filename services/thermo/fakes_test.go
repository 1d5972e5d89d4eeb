package thermo

import (
	"bytes"

	"thermosense-go/x/logx"
	"thermosense-go/x/timex"
)

// fakeBus replays values; the last one repeats.
type fakeBus struct {
	values   []float32
	count    int
	beginErr error
	convMs   uint32

	reads    int
	requests int
}

func (f *fakeBus) Begin() error                       { return f.beginErr }
func (f *fakeBus) DeviceCount() int                   { return f.count }
func (f *fakeBus) RequestConversion()                 { f.requests++ }
func (f *fakeBus) ConversionWaitMs(bits uint8) uint32 { return f.convMs }
func (f *fakeBus) ReadCByIndex(index int) float32 {
	v := f.values[min(f.reads, len(f.values)-1)]
	f.reads++
	return v
}

type fakeTSIC struct {
	present bool
	values  []float32
	reads   int
}

func (f *fakeTSIC) Begin() bool { return f.present }
func (f *fakeTSIC) ReadC() float32 {
	v := f.values[min(f.reads, len(f.values)-1)]
	f.reads++
	return v
}

type notification struct {
	tempC, rate float32
	confirmed   bool
}

type recorder struct{ got []notification }

func (r *recorder) Notify(tempC, rate float32, confirmed bool) {
	r.got = append(r.got, notification{tempC, rate, confirmed})
}

type rig struct {
	h   *Handler
	clk *timex.Manual
	bus *fakeBus
	rec *recorder
	out *bytes.Buffer
}

// newDallasRig returns an initialised handler on a 375 ms bus (412 ms wait)
// with one device and the clock at 1000 ms.
func newDallasRig(cfg Config, values ...float32) *rig {
	r := &rig{
		clk: &timex.Manual{Ms: 1000},
		bus: &fakeBus{values: values, count: 1, convMs: 375},
		rec: &recorder{},
		out: &bytes.Buffer{},
	}
	h, err := New(cfg, r.clk, logx.New(r.out, logx.LevelDebug))
	if err != nil {
		panic(err)
	}
	if err := h.Init(DallasBackend{Pin: 4, Bus: r.bus}); err != nil {
		panic(err)
	}
	h.OnChange(r.rec)
	r.h = h
	return r
}

// cycle runs one Service call and then advances the clock by stepMs.
func (r *rig) cycle(stepMs uint32) {
	r.h.Service()
	r.clk.Advance(stepMs)
}

// accept runs two cycles at 1000 ms: one request and one read.
func (r *rig) accept() {
	r.cycle(1000)
	r.cycle(1000)
}
