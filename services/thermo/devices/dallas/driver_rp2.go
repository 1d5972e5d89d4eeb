//go:build rp2040

package dallas

import (
	"machine"

	"tinygo.org/x/drivers/ds18b20"
	"tinygo.org/x/drivers/onewire"

	"thermosense-go/services/thermo"
)

// rp2Wire joins the bus driver (search) and the thermometer driver.
type rp2Wire struct {
	ow *onewire.Device
	ds ds18b20.Device
}

func (w rp2Wire) Search(cmd uint8) ([][]uint8, error) {
	return w.ow.Search(cmd)
}

func (w rp2Wire) ThermometerResolution(rom []uint8, bits uint8) {
	w.ds.ThermometerResolution(rom, bits)
}

func (w rp2Wire) RequestTemperature(rom []uint8) {
	w.ds.RequestTemperature(rom)
}

func (w rp2Wire) ReadTemperature(rom []uint8) (int32, error) {
	return w.ds.ReadTemperature(rom)
}

func openBus(pin int) (thermo.MultiDropBus, error) {
	ow := onewire.New(machine.Pin(pin))
	ow.Configure(onewire.Config{})
	return &oneWireBus{w: rp2Wire{ow: &ow, ds: ds18b20.New(&ow)}}, nil
}
