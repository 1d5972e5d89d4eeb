package config

// Embedded configuration, keyed by the device ID placed in the context
// under CtxDeviceKey.

const cfgPico = `{
  "thermo": {
    "sensor": "dallas",
    "pin": 4,
    "lower_c": 0,
    "upper_c": 150,
    "max_deviation_c": 5,
    "confirm_delay_ms": 5000,
    "log_interval_ms": 1000,
    "poll_ms": 50
  }
}`

const cfgPicoTSIC = `{
  "thermo": {
    "sensor": "tsic306",
    "pin": 5,
    "upper_c": 120,
    "poll_ms": 50
  }
}`

const cfgHost = `{
  "thermo": {
    "sensor": "sim",
    "upper_c": 60,
    "confirm_delay_ms": 5000,
    "poll_ms": 100
  }
}`

var embeddedConfigs = map[string][]byte{
	"pico":      []byte(cfgPico),
	"pico-tsic": []byte(cfgPicoTSIC),
	"host":      []byte(cfgHost),
}
