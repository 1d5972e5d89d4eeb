// Package tsic registers the "tsic306" sensor kind.
package tsic

import (
	"errors"

	"thermosense-go/drivers/tsic"
	"thermosense-go/errcode"
	"thermosense-go/services/thermo"
	"thermosense-go/types"
)

func init() { thermo.RegisterBuilder(types.SensorTSIC306, builder{}) }

type builder struct{}

func (builder) Build(in thermo.BuildInput) (thermo.Backend, error) {
	if in.Pin < 0 {
		return nil, errcode.InvalidParams
	}
	s, err := openSensor(in.Pin)
	if err != nil {
		return nil, err
	}
	return thermo.TSICBackend{Pin: in.Pin, Sensor: s}, nil
}

// frameReader is the part of tsic.Device the sensor needs.
type frameReader interface {
	Read() (float32, error)
}

// sensor maps driver errors onto the TSIC sentinel readings.
type sensor struct {
	dev   frameReader
	begin func() bool
}

func (s *sensor) Begin() bool { return s.begin() }

func (s *sensor) ReadC() float32 {
	c, err := s.dev.Read()
	switch {
	case err == nil:
		return c
	case errors.Is(err, tsic.ErrNoSignal):
		return thermo.TSICNoSignal
	default:
		return thermo.TSICBadFrame
	}
}
