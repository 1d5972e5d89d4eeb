package thermo

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"thermosense-go/errcode"
	"thermosense-go/x/timex"
)

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LowerC, cfg.UpperC = 10, 10
	_, err := New(cfg, nil, nil)
	require.Equal(t, errcode.InvalidParams, errcode.Of(err))

	cfg = DefaultConfig()
	cfg.MaxDeviationC = -1
	_, err = New(cfg, nil, nil)
	require.Equal(t, errcode.InvalidParams, errcode.Of(err))
}

func TestServiceBeforeInitIsNoop(t *testing.T) {
	h, err := New(DefaultConfig(), &timex.Manual{Ms: 1000}, nil)
	require.NoError(t, err)
	rec := &recorder{}
	h.OnChange(rec)
	h.Service()
	require.False(t, h.faults.Tentative())
	require.Empty(t, rec.got)
	require.Equal(t, VariantNone, h.Identity().Variant)
}

func TestFirstReadingHasZeroRate(t *testing.T) {
	r := newDallasRig(DefaultConfig(), 21)
	r.accept()
	require.Equal(t, []notification{{tempC: 21, rate: 0}}, r.rec.got)
	require.False(t, r.h.faults.Tentative())
}

func TestEndToEndDeviationFault(t *testing.T) {
	r := newDallasRig(DefaultConfig(), 20, 20, 20, 30, 40, 50, 60)

	for i := 1; i <= 7; i++ {
		r.cycle(1000)
		require.False(t, r.h.faults.Tentative(), "cycle %d", i)
	}

	r.cycle(1000) // cycle 8 accepts 30
	require.Equal(t, float32(30), r.h.Temperature())
	require.True(t, r.h.faults.Tentative())
	require.Equal(t, errcode.ExcessiveDeviation, r.h.faults.Code())
	require.Contains(t, r.out.String(), "Warn: fault detected: deviation between readings too large (val: 10.00 / lim: 5.00)")

	for i := 9; i <= 12; i++ {
		r.cycle(1000)
		require.False(t, r.h.FaultConfirmed(), "cycle %d", i)
	}

	r.cycle(1000) // cycle 13, 5000 ms after detection
	require.True(t, r.h.FaultConfirmed())
	require.Contains(t, r.out.String(), "Error: temperature sensor malfunction")

	require.Len(t, r.rec.got, 7)
	last := r.rec.got[6]
	require.True(t, last.confirmed)
	require.Equal(t, float32(50), last.tempC)
	for _, n := range r.rec.got[:6] {
		require.False(t, n.confirmed)
	}

	st := r.h.Snapshot()
	require.True(t, st.FaultConfirmed)
	require.Equal(t, "excessive_deviation", st.Fault)
	require.Equal(t, float32(50), st.TempC)
	require.Equal(t, uint32(14000), st.TsMs)
}

func TestConfirmDelayBoundary(t *testing.T) {
	r := newDallasRig(DefaultConfig(), 20)
	r.accept() // clock now at 3000
	require.NoError(t, r.h.SetLimits(30, 40))

	r.h.Service()
	require.True(t, r.h.faults.Tentative())
	require.Equal(t, errcode.OutOfLimits, r.h.faults.Code())

	r.clk.Ms = 7900
	r.h.Service()
	require.False(t, r.h.FaultConfirmed())

	r.clk.Ms = 8000
	r.h.Service()
	require.True(t, r.h.FaultConfirmed())
	require.True(t, r.rec.got[len(r.rec.got)-1].confirmed)
}

func TestLowerLimitWaitsForFirstReading(t *testing.T) {
	r := newDallasRig(DefaultConfig())
	require.NoError(t, r.h.SetLimits(-10, -5))
	r.bus.values = []float32{DisconnectedC}

	r.h.Service() // no reading yet, temperature reads 0
	require.True(t, r.h.faults.Tentative())
	require.Equal(t, errcode.OutOfLimits, r.h.faults.Code())

	r2 := newDallasRig(DefaultConfig(), 15)
	require.NoError(t, r2.h.SetLimits(10, 20))
	r2.h.Service()
	require.False(t, r2.h.faults.Tentative())
}

func TestSetLimitsRejectsInverted(t *testing.T) {
	r := newDallasRig(DefaultConfig(), 20)
	err := r.h.SetLimits(50, 10)
	require.Equal(t, errcode.InvalidParams, errcode.Of(err))
	require.Equal(t, float32(0), r.h.Config().LowerC)
	require.Equal(t, float32(150), r.h.Config().UpperC)

	require.Error(t, r.h.SetLimits(10, 10))
	require.NoError(t, r.h.SetLimits(-20, 80))
	require.Equal(t, float32(-20), r.h.Config().LowerC)
}

func TestOnChangeReplacesNotifier(t *testing.T) {
	r := newDallasRig(DefaultConfig(), 20)
	second := &recorder{}
	r.h.OnChange(second)
	r.accept()
	require.Empty(t, r.rec.got)
	require.Len(t, second.got, 1)

	r.h.OnChange(nil)
	r.accept()
	require.Len(t, second.got, 1)

	var calls int
	r.h.OnChange(NotifierFunc(func(float32, float32, bool) { calls++ }))
	r.accept()
	require.Equal(t, 1, calls)
}

func TestReinitClearsConfirmedFault(t *testing.T) {
	r := newDallasRig(DefaultConfig(), 20)
	r.bus.count = 0
	require.NoError(t, r.h.Init(DallasBackend{Pin: 4, Bus: r.bus}))
	require.False(t, r.h.SensorAvailable())

	for i := 0; i < 7; i++ {
		r.cycle(1000)
	}
	require.True(t, r.h.FaultConfirmed())
	require.Equal(t, errcode.SensorUnavailable, r.h.faults.Code())

	r.bus.count = 1
	require.NoError(t, r.h.Init(DallasBackend{Pin: 4, Bus: r.bus}))
	require.False(t, r.h.FaultConfirmed())
	require.True(t, r.h.SensorAvailable())
	require.Equal(t, float32(0), r.h.Temperature())
	require.Equal(t, 0, r.h.smooth.Cursor())
}

func TestInitBeginFailure(t *testing.T) {
	r := newDallasRig(DefaultConfig(), 20)
	r.bus.beginErr = errors.New("no pull-up")
	require.NoError(t, r.h.Init(DallasBackend{Pin: 7, Bus: r.bus}))
	require.False(t, r.h.SensorAvailable())
	require.Contains(t, r.out.String(), "one-wire bus on GPIO 7 failed to start: no pull-up")

	r.h.Service()
	require.Equal(t, errcode.SensorUnavailable, r.h.faults.Code())
}

func TestInitDeviceCount(t *testing.T) {
	r := newDallasRig(DefaultConfig(), 20)
	require.Contains(t, r.out.String(), "Info: found 1 devices on GPIO 4")
	require.NotContains(t, r.out.String(), "only one sensor per GPIO")

	r.bus.count = 3
	require.NoError(t, r.h.Init(DallasBackend{Pin: 4, Bus: r.bus}))
	require.True(t, r.h.SensorAvailable())
	require.Contains(t, r.out.String(), "Warn: only one sensor per GPIO is supported")
}

type otherBackend struct{}

func (otherBackend) identity() Identity { return Identity{} }

func TestInitRejectsBadBackends(t *testing.T) {
	h, err := New(DefaultConfig(), &timex.Manual{}, nil)
	require.NoError(t, err)

	require.Equal(t, errcode.InvalidParams, errcode.Of(h.Init(nil)))
	require.Equal(t, errcode.InvalidParams, errcode.Of(h.Init(DallasBackend{Pin: 1})))
	require.Equal(t, errcode.InvalidParams, errcode.Of(h.Init(TSICBackend{Pin: 1})))
	require.Equal(t, errcode.Unsupported, errcode.Of(h.Init(otherBackend{})))
}

func TestTSICInitWaitsForStartup(t *testing.T) {
	h, err := New(DefaultConfig(), &timex.Manual{}, nil)
	require.NoError(t, err)
	var slept []time.Duration
	h.sleep = func(d time.Duration) { slept = append(slept, d) }

	require.NoError(t, h.Init(TSICBackend{Pin: 2, Sensor: &fakeTSIC{}}))
	require.Equal(t, []time.Duration{2 * time.Millisecond}, slept)
	require.False(t, h.SensorAvailable())
	require.Equal(t, Identity{Variant: VariantTSIC, Pin: 2, WaitMs: 400}, h.Identity())
}

func TestRateStaysFiniteOnFastReads(t *testing.T) {
	r := newDallasRig(DefaultConfig(), 20, 20.5, 21)
	r.bus.convMs = 0
	require.NoError(t, r.h.Init(DallasBackend{Pin: 4, Bus: r.bus}))
	// One read per millisecond.
	for i := 0; i < 6; i++ {
		r.h.Service()
		r.clk.Advance(1)
		r.h.Service()
	}
	require.False(t, math.IsNaN(float64(r.h.ChangeRate())))
	require.False(t, math.IsInf(float64(r.h.ChangeRate()), 0))
}
