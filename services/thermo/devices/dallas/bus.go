package dallas

import "thermosense-go/services/thermo"

// searchROM is the one-wire SEARCH ROM command (onewire.SEARCH_ROM).
const searchROM uint8 = 0xF0

// wire is the part of the onewire and ds18b20 drivers the bus uses.
type wire interface {
	Search(cmd uint8) ([][]uint8, error)
	ThermometerResolution(rom []uint8, bits uint8)
	RequestTemperature(rom []uint8)
	ReadTemperature(rom []uint8) (int32, error)
}

// oneWireBus drives every DS18B20 found on one GPIO. Conversions are
// broadcast; reads address a device by its search index.
type oneWireBus struct {
	w    wire
	roms [][]uint8
}

func (b *oneWireBus) Begin() error {
	roms, err := b.w.Search(searchROM)
	if err != nil {
		return err
	}
	b.roms = roms
	for _, rom := range roms {
		b.w.ThermometerResolution(rom, thermo.DallasResolutionBits)
	}
	return nil
}

func (b *oneWireBus) DeviceCount() int { return len(b.roms) }

// RequestConversion starts a conversion on every device (skip ROM).
func (b *oneWireBus) RequestConversion() { b.w.RequestTemperature(nil) }

func (b *oneWireBus) ConversionWaitMs(bits uint8) uint32 { return ConversionWaitMs(bits) }

func (b *oneWireBus) ReadCByIndex(index int) float32 {
	if index < 0 || index >= len(b.roms) {
		return thermo.DisconnectedC
	}
	milliC, err := b.w.ReadTemperature(b.roms[index])
	if err != nil {
		return thermo.DisconnectedC
	}
	return float32(milliC) / 1000
}
