//go:build rp2040

package tsic

import (
	"machine"

	"thermosense-go/drivers/tsic"
	"thermosense-go/services/thermo"
)

func openSensor(pin int) (thermo.SingleWireSensor, error) {
	s := &sensor{}
	s.begin = func() bool {
		dev, ok := tsic.Attach(machine.Pin(pin))
		s.dev = dev
		return ok
	}
	return s, nil
}
