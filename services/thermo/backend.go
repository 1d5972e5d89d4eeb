package thermo

import "time"

// DisconnectedC is what a one-wire bus read returns for a missing device.
const DisconnectedC float32 = -127

// Codes a TSIC read returns in place of a temperature.
const (
	TSICBadFrame float32 = 221 // parity or range failure
	TSICNoSignal float32 = 222 // no frame seen on the pin
)

// DallasResolutionBits is the resolution every one-wire sensor is set to.
const DallasResolutionBits = 11

const (
	tsicWaitMs       = 400
	tsicStartupDelay = 2 * time.Millisecond
)

// MultiDropBus is a one-wire temperature bus with explicit conversions.
// Only device index 0 is ever read.
type MultiDropBus interface {
	Begin() error
	DeviceCount() int
	RequestConversion()
	// ConversionWaitMs is the datasheet conversion time at the given
	// resolution.
	ConversionWaitMs(resolutionBits uint8) uint32
	// ReadCByIndex returns DisconnectedC when the device does not answer.
	ReadCByIndex(index int) float32
}

// SingleWireSensor is a free-running single-device sensor that is simply
// sampled. ReadC returns TSICBadFrame or TSICNoSignal on failure.
type SingleWireSensor interface {
	// Begin reports whether the sensor was detected. The first ReadC must
	// come at least 2 ms later.
	Begin() bool
	ReadC() float32
}

// Variant tags the acquisition strategy.
type Variant uint8

const (
	VariantNone Variant = iota
	VariantDallas
	VariantTSIC
)

func (v Variant) String() string {
	switch v {
	case VariantDallas:
		return "dallas"
	case VariantTSIC:
		return "tsic306"
	default:
		return "none"
	}
}

// Backend is one of DallasBackend or TSICBackend.
type Backend interface {
	identity() Identity
}

type DallasBackend struct {
	Pin int
	Bus MultiDropBus
}

type TSICBackend struct {
	Pin    int
	Sensor SingleWireSensor
}

func (b DallasBackend) identity() Identity { return Identity{Variant: VariantDallas, Pin: b.Pin} }
func (b TSICBackend) identity() Identity   { return Identity{Variant: VariantTSIC, Pin: b.Pin} }

// Identity is fixed by Init.
type Identity struct {
	Variant Variant
	Pin     int
	WaitMs  uint32 // acquisition wait between request and read
}
