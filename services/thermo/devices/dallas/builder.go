// Package dallas registers the "dallas" sensor kind: DS18B20-family
// thermometers on a one-wire bus.
package dallas

import (
	"thermosense-go/errcode"
	"thermosense-go/services/thermo"
	"thermosense-go/types"
	"thermosense-go/x/mathx"
)

func init() { thermo.RegisterBuilder(types.SensorDallas, builder{}) }

type builder struct{}

func (builder) Build(in thermo.BuildInput) (thermo.Backend, error) {
	if in.Pin < 0 {
		return nil, errcode.InvalidParams
	}
	bus, err := openBus(in.Pin)
	if err != nil {
		return nil, err
	}
	return thermo.DallasBackend{Pin: in.Pin, Bus: bus}, nil
}

// ConversionWaitMs is the DS18B20 maximum conversion time: 750 ms at 12
// bits, halving per bit dropped.
func ConversionWaitMs(resolutionBits uint8) uint32 {
	return 750 >> (12 - mathx.Clamp(resolutionBits, 9, 12))
}
