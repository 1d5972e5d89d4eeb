// Package sim registers the "sim" sensor kind: a one-wire bus with a
// single simulated DS18B20 that follows a temperature profile.
package sim

import (
	"math"
	"sync"

	"thermosense-go/services/thermo"
	"thermosense-go/services/thermo/devices/dallas"
	"thermosense-go/types"
	"thermosense-go/x/mathx"
	"thermosense-go/x/ramp"
	"thermosense-go/x/timex"
)

func init() { thermo.RegisterBuilder(types.SensorSim, builder{}) }

// DefaultProfile warms up, holds and cools down over six minutes.
var DefaultProfile = ramp.Profile{
	ramp.Linear(21, 65, 90_000),
	ramp.Hold(65, 60_000),
	ramp.Linear(65, 30, 210_000),
}

type builder struct{}

func (builder) Build(in thermo.BuildInput) (thermo.Backend, error) {
	b := NewBus(timex.NewUptime(), DefaultProfile)
	// One dropped read a little into the warm-up.
	b.Glitch(40, thermo.DisconnectedC)
	return thermo.DallasBackend{Pin: in.Pin, Bus: b}, nil
}

// Bus is a simulated one-wire bus. A conversion latches the profile value
// at request time, quantised to the sensor resolution.
type Bus struct {
	mu       sync.Mutex
	clock    timex.Clock
	profile  ramp.Profile
	devices  int
	startMs  uint32
	latched  float32
	reads    int
	glitches map[int]float32
	bits     uint8
}

// NewBus returns a bus with one device following p from Begin.
func NewBus(clock timex.Clock, p ramp.Profile) *Bus {
	return &Bus{
		clock:    clock,
		profile:  p,
		devices:  1,
		glitches: map[int]float32{},
		bits:     thermo.DallasResolutionBits,
	}
}

// SetDevices changes how many devices a search finds.
func (b *Bus) SetDevices(n int) {
	b.mu.Lock()
	b.devices = n
	b.mu.Unlock()
}

// Glitch makes the nth read (from 1) return v instead of the profile.
func (b *Bus) Glitch(nth int, v float32) {
	b.mu.Lock()
	b.glitches[nth] = v
	b.mu.Unlock()
}

func (b *Bus) Begin() error {
	b.mu.Lock()
	b.startMs = b.clock.NowMs()
	b.mu.Unlock()
	return nil
}

func (b *Bus) DeviceCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.devices
}

func (b *Bus) RequestConversion() {
	b.mu.Lock()
	defer b.mu.Unlock()
	v := b.profile.At(timex.Since(b.clock.NowMs(), b.startMs))
	step := float64(uint32(1) << (b.bits - 8)) // 11 bits: 1/8 °C
	b.latched = float32(math.Round(float64(v)*step) / step)
}

func (b *Bus) ConversionWaitMs(bits uint8) uint32 {
	if mathx.Between(bits, 9, 12) {
		b.mu.Lock()
		b.bits = bits
		b.mu.Unlock()
	}
	return dallas.ConversionWaitMs(bits)
}

func (b *Bus) ReadCByIndex(index int) float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= b.devices {
		return thermo.DisconnectedC
	}
	b.reads++
	if v, ok := b.glitches[b.reads]; ok {
		return v
	}
	return b.latched
}
