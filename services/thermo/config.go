package thermo

import (
	"thermosense-go/errcode"
	"thermosense-go/types"
	"thermosense-go/x/fmtx"
)

// Config holds the tunables of the fault monitor.
type Config struct {
	LowerC         float32 // out of limits at or below, once a reading exists
	UpperC         float32 // out of limits at or above
	MaxDeviationC  float32 // largest step allowed between accepted readings
	ConfirmDelayMs uint32  // time a condition must hold to confirm the fault
	LogIntervalMs  uint32  // re-log period while tentative
}

func DefaultConfig() Config {
	return ConfigFrom(types.DefaultThermoConfig())
}

// ConfigFrom extracts the monitor tunables from a bus config.
func ConfigFrom(tc types.ThermoConfig) Config {
	return Config{
		LowerC:         tc.LowerC,
		UpperC:         tc.UpperC,
		MaxDeviationC:  tc.MaxDeviationC,
		ConfirmDelayMs: tc.ConfirmDelayMs,
		LogIntervalMs:  tc.LogIntervalMs,
	}
}

// Validate enforces LowerC < UpperC and a non-negative deviation.
func (c Config) Validate() error {
	if !(c.LowerC < c.UpperC) {
		return &errcode.E{C: errcode.InvalidParams, Op: "thermo.config",
			Msg: fmtx.Sprintf("lower limit %.2f must be below upper limit %.2f", c.LowerC, c.UpperC)}
	}
	if !(c.MaxDeviationC >= 0) {
		return &errcode.E{C: errcode.InvalidParams, Op: "thermo.config", Msg: "max deviation must be >= 0"}
	}
	return nil
}
