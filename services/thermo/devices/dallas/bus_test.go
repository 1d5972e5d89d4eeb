package dallas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"thermosense-go/services/thermo"
)

type fakeWire struct {
	roms      [][]uint8
	searchErr error
	milliC    map[uint8]int32 // by first ROM byte
	readErr   error

	searchCmd  uint8
	resolution map[uint8]uint8
	requested  int
	requestRom []uint8
}

func (f *fakeWire) Search(cmd uint8) ([][]uint8, error) {
	f.searchCmd = cmd
	return f.roms, f.searchErr
}

func (f *fakeWire) ThermometerResolution(rom []uint8, bits uint8) {
	if f.resolution == nil {
		f.resolution = map[uint8]uint8{}
	}
	f.resolution[rom[0]] = bits
}

func (f *fakeWire) RequestTemperature(rom []uint8) {
	f.requested++
	f.requestRom = rom
}

func (f *fakeWire) ReadTemperature(rom []uint8) (int32, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	return f.milliC[rom[0]], nil
}

func twoSensors() *fakeWire {
	return &fakeWire{
		roms:   [][]uint8{{0x28, 1}, {0x29, 2}},
		milliC: map[uint8]int32{0x28: 21375, 0x29: -10500},
	}
}

func TestBusBeginSearchesAndSetsResolution(t *testing.T) {
	w := twoSensors()
	b := &oneWireBus{w: w}
	require.NoError(t, b.Begin())
	require.Equal(t, uint8(0xF0), w.searchCmd)
	require.Equal(t, 2, b.DeviceCount())
	require.Equal(t, map[uint8]uint8{0x28: 11, 0x29: 11}, w.resolution)
}

func TestBusBeginSearchError(t *testing.T) {
	w := &fakeWire{searchErr: errors.New("no presence pulse")}
	b := &oneWireBus{w: w}
	require.Error(t, b.Begin())
	require.Equal(t, 0, b.DeviceCount())
	require.Equal(t, thermo.DisconnectedC, b.ReadCByIndex(0))
}

func TestBusReadsByIndex(t *testing.T) {
	w := twoSensors()
	b := &oneWireBus{w: w}
	require.NoError(t, b.Begin())

	b.RequestConversion()
	require.Equal(t, 1, w.requested)
	require.Nil(t, w.requestRom)

	require.Equal(t, float32(21.375), b.ReadCByIndex(0))
	require.Equal(t, float32(-10.5), b.ReadCByIndex(1))
	require.Equal(t, thermo.DisconnectedC, b.ReadCByIndex(2))
	require.Equal(t, thermo.DisconnectedC, b.ReadCByIndex(-1))

	w.readErr = errors.New("crc mismatch")
	require.Equal(t, thermo.DisconnectedC, b.ReadCByIndex(0))
}

func TestHandlerOnOneWireBus(t *testing.T) {
	w := twoSensors()
	b := &oneWireBus{w: w}
	require.Equal(t, uint32(375), b.ConversionWaitMs(thermo.DallasResolutionBits))

	h, err := thermo.New(thermo.DefaultConfig(), nil, nil)
	require.NoError(t, err)
	require.NoError(t, h.Init(thermo.DallasBackend{Pin: 4, Bus: b}))
	require.True(t, h.SensorAvailable())
	require.Equal(t, uint32(412), h.Identity().WaitMs)
}
