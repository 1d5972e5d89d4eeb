//go:build !rp2040

package dallas

import (
	"thermosense-go/errcode"
	"thermosense-go/services/thermo"
)

func openBus(pin int) (thermo.MultiDropBus, error) {
	return nil, errcode.Unsupported
}
