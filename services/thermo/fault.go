package thermo

import (
	"thermosense-go/errcode"
	"thermosense-go/x/fmtx"
	"thermosense-go/x/mathx"
	"thermosense-go/x/timex"
)

// faultInputs is the per-cycle view the monitor checks.
type faultInputs struct {
	tempC           float32
	prevC           float32
	hasRef          bool
	badReading      bool
	sensorAvailable bool
}

// FaultMonitor escalates in two stages: tentative on the first cycle any
// condition holds, confirmed once a condition has held for ConfirmDelayMs.
// Tentative clears on the first clean cycle; confirmed never clears.
type FaultMonitor struct {
	tentative  bool
	confirmed  bool
	detectedMs uint32
	lastLogMs  uint32

	code    errcode.Code
	message string

	log Logger
}

// Evaluate runs one cycle and reports whether the fault was confirmed on
// this cycle. The first matching branch ends the cycle.
func (m *FaultMonitor) Evaluate(now uint32, in faultInputs, cfg Config) bool {
	found := m.check(in, cfg)

	if found && !m.confirmed && !m.tentative {
		m.lastLogMs = now
		m.detectedMs = now
		m.log.Warnf("fault detected: %s", m.message)
		m.tentative = true
		return false
	}

	if found && !m.confirmed && timex.Since(now, m.detectedMs) >= cfg.ConfirmDelayMs {
		m.confirmed = true
		m.log.Errorf("temperature sensor malfunction: %s", m.message)
		return true
	}

	if found && !m.confirmed && timex.Elapsed(now, m.lastLogMs, cfg.LogIntervalMs) {
		m.lastLogMs = now
		m.log.Warnf("%s", m.message)
		return false
	}

	if !found {
		m.tentative = false
	}
	return false
}

// check evaluates every condition in order. A later match overwrites the
// code and message of an earlier one.
func (m *FaultMonitor) check(in faultInputs, cfg Config) bool {
	m.code, m.message = errcode.OK, ""
	found := false

	// NOTE: the lower bound only applies once a reading was accepted, the
	// upper bound always does. Grouping kept as shipped; flagged for review.
	if (in.hasRef && in.tempC <= cfg.LowerC) || in.tempC >= cfg.UpperC {
		m.set(errcode.OutOfLimits, fmtx.Sprintf("value out of limits (val: %.2f / min: %.2f / max: %.2f)",
			in.tempC, cfg.LowerC, cfg.UpperC))
		found = true
	}

	if d := mathx.Abs(in.tempC - in.prevC); d > cfg.MaxDeviationC {
		m.set(errcode.ExcessiveDeviation, fmtx.Sprintf("deviation between readings too large (val: %.2f / lim: %.2f)",
			d, cfg.MaxDeviationC))
		found = true
	}

	if in.badReading {
		m.set(errcode.BadReading, "sensor returned an invalid value")
		found = true
	}

	if !in.sensorAvailable {
		m.set(errcode.SensorUnavailable, "no sensor found, check the hardware setup")
		found = true
	}
	return found
}

func (m *FaultMonitor) set(c errcode.Code, msg string) {
	m.code = c
	m.message = msg
}

// Tentative reports the first escalation stage.
func (m *FaultMonitor) Tentative() bool { return m.tentative }

// Confirmed reports the latched second stage.
func (m *FaultMonitor) Confirmed() bool { return m.confirmed }

// Code and Message describe the last condition matched this cycle.
func (m *FaultMonitor) Code() errcode.Code { return m.code }
func (m *FaultMonitor) Message() string    { return m.message }
