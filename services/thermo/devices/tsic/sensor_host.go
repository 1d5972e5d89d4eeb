//go:build !rp2040

package tsic

import (
	"thermosense-go/errcode"
	"thermosense-go/services/thermo"
)

func openSensor(pin int) (thermo.SingleWireSensor, error) {
	return nil, errcode.Unsupported
}
