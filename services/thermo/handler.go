// Package thermo polls a temperature sensor without blocking, derives a
// change rate over a short history and latches a fault when the sensor or
// its readings cannot be trusted.
//
// A Handler is driven by calling Service repeatedly from one goroutine:
//
//	h, _ := thermo.New(thermo.DefaultConfig(), clock, log)
//	_ = h.Init(thermo.DallasBackend{Pin: 4, Bus: bus})
//	h.OnChange(notifier)
//	for {
//		h.Service()
//		time.Sleep(50 * time.Millisecond)
//	}
//
// Nothing in the package locks; a Handler must have a single owner.
package thermo

import (
	"time"

	"thermosense-go/errcode"
	"thermosense-go/types"
	"thermosense-go/x/logx"
	"thermosense-go/x/mathx"
	"thermosense-go/x/timex"
)

type Handler struct {
	cfg      Config
	clock    timex.Clock
	log      Logger
	sleep    func(time.Duration)
	notifier Notifier

	id        Identity
	sched     scheduler
	available bool

	tempC      float32
	badReading bool
	smooth     Smoother
	faults     FaultMonitor
}

// New builds an uninitialised Handler. A nil clock counts from now; a nil
// log discards.
func New(cfg Config, clock timex.Clock, log Logger) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = timex.NewUptime()
	}
	if log == nil {
		log = logx.Discard
	}
	h := &Handler{
		cfg:   cfg,
		clock: clock,
		log:   log,
		sleep: time.Sleep,
	}
	h.reset()
	return h, nil
}

// Init starts the backend, detects the sensor and fixes the identity.
// Calling Init again starts a fresh run, which is the only way to clear a
// confirmed fault.
func (h *Handler) Init(b Backend) error {
	if b == nil {
		return errcode.InvalidParams
	}
	h.reset()
	h.id = b.identity()

	switch be := b.(type) {
	case DallasBackend:
		if be.Bus == nil {
			return &errcode.E{C: errcode.InvalidParams, Op: "thermo.init", Msg: "nil one-wire bus"}
		}
		// 10% margin over the datasheet conversion time.
		h.id.WaitMs = mathx.MulDiv(be.Bus.ConversionWaitMs(DallasResolutionBits), 11, 10)
		h.sched = &dallasScheduler{bus: be.Bus, waitMs: h.id.WaitMs}
		if err := be.Bus.Begin(); err != nil {
			h.log.Errorf("one-wire bus on GPIO %d failed to start: %s", be.Pin, err.Error())
			return nil
		}
		h.available = h.checkDeviceCount(be)

	case TSICBackend:
		if be.Sensor == nil {
			return &errcode.E{C: errcode.InvalidParams, Op: "thermo.init", Msg: "nil tsic sensor"}
		}
		h.id.WaitMs = tsicWaitMs
		h.sched = &tsicScheduler{sensor: be.Sensor, waitMs: h.id.WaitMs}
		h.available = be.Sensor.Begin()
		h.sleep(tsicStartupDelay)

	default:
		return errcode.Unsupported
	}

	h.log.Infof("%s sensor on GPIO %d, wait %d ms, available=%t",
		h.id.Variant.String(), h.id.Pin, h.id.WaitMs, h.available)
	return nil
}

func (h *Handler) checkDeviceCount(be DallasBackend) bool {
	n := be.Bus.DeviceCount()
	h.log.Infof("found %d devices on GPIO %d", n, be.Pin)
	if n > 1 {
		h.log.Warnf("only one sensor per GPIO is supported, using index 0")
	}
	return n > 0
}

func (h *Handler) reset() {
	h.sched = nil
	h.available = false
	h.tempC = 0
	h.badReading = false
	h.smooth = Smoother{}
	h.faults = FaultMonitor{log: h.log}
}

// SetLimits replaces the limits; lower must be below upper.
func (h *Handler) SetLimits(lowerC, upperC float32) error {
	cfg := h.cfg
	cfg.LowerC, cfg.UpperC = lowerC, upperC
	return h.Configure(cfg)
}

// Configure replaces every tunable at once. An invalid cfg changes nothing.
func (h *Handler) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	h.cfg = cfg
	return nil
}

func (h *Handler) Config() Config { return h.cfg }

// OnChange registers the single notification sink, replacing any earlier
// one. nil disables notification.
func (h *Handler) OnChange(n Notifier) { h.notifier = n }

// Service advances the pipeline by one cycle. It never blocks. Before Init
// it does nothing.
func (h *Handler) Service() {
	if h.sched == nil {
		return
	}
	now := h.clock.NowMs()

	s := h.sched.poll(now)
	if s.read {
		if s.track {
			h.smooth.Track(h.tempC, s.value)
		}
		if s.store {
			h.tempC = s.value
		}
		h.badReading = s.bad
	}

	ref, hasRef := h.smooth.Reference()
	in := faultInputs{
		tempC:           h.tempC,
		prevC:           ref,
		hasRef:          hasRef,
		badReading:      h.badReading,
		sensorAvailable: h.available,
	}
	if h.faults.Evaluate(now, in, h.cfg) {
		h.notify()
	}

	if s.newData {
		h.smooth.Update(h.tempC, now)
		h.notify()
	}
}

func (h *Handler) notify() {
	if h.notifier != nil {
		h.notifier.Notify(h.tempC, h.smooth.ChangeRate(), h.faults.Confirmed())
	}
}

// Temperature is the last accepted reading in °C.
func (h *Handler) Temperature() float32 { return h.tempC }

// ChangeRate is the scaled mean slot rate over the history window.
func (h *Handler) ChangeRate() float32 { return h.smooth.ChangeRate() }

// FaultConfirmed is latched for the rest of the run once set.
func (h *Handler) FaultConfirmed() bool { return h.faults.Confirmed() }

func (h *Handler) Identity() Identity    { return h.id }
func (h *Handler) SensorAvailable() bool { return h.available }

// Snapshot is the bus view of the current state.
func (h *Handler) Snapshot() types.ThermoState {
	st := types.ThermoState{
		TempC:          h.tempC,
		ChangeRate:     h.smooth.ChangeRate(),
		FaultConfirmed: h.faults.Confirmed(),
		FaultActive:    h.faults.Tentative(),
		Message:        h.faults.Message(),
		TsMs:           h.clock.NowMs(),
	}
	if c := h.faults.Code(); c != errcode.OK {
		st.Fault = string(c)
	}
	return st
}
