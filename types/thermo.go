package types

// Sensor kinds accepted in ThermoConfig.Sensor.
const (
	SensorDallas  = "dallas"  // one-wire DS18B20 family
	SensorTSIC306 = "tsic306" // ZACwire TSIC 306
	SensorSim     = "sim"     // host simulation
)

// ThermoConfig is supplied on topic "config/thermo".
// Absent fields keep their defaults when decoded over DefaultThermoConfig.
type ThermoConfig struct {
	Sensor         string  `json:"sensor"`
	Pin            int     `json:"pin"`
	LowerC         float32 `json:"lower_c"`
	UpperC         float32 `json:"upper_c"`
	MaxDeviationC  float32 `json:"max_deviation_c"`
	ConfirmDelayMs uint32  `json:"confirm_delay_ms"`
	LogIntervalMs  uint32  `json:"log_interval_ms"`
	PollMs         uint32  `json:"poll_ms"`
}

// DefaultThermoConfig mirrors the sensor handler defaults.
func DefaultThermoConfig() ThermoConfig {
	return ThermoConfig{
		Sensor:         SensorDallas,
		LowerC:         0,
		UpperC:         150,
		MaxDeviationC:  5,
		ConfirmDelayMs: 5000,
		LogIntervalMs:  1000,
		PollMs:         50,
	}
}

// ThermoState is published retained on "thermo/state".
type ThermoState struct {
	TempC          float32 `json:"temp_c"`
	ChangeRate     float32 `json:"change_rate"`
	FaultConfirmed bool    `json:"fault_confirmed"`
	FaultActive    bool    `json:"fault_active"`    // tentative stage
	Fault          string  `json:"fault,omitempty"` // errcode of the retained message
	Message        string  `json:"message,omitempty"`
	TsMs           uint32  `json:"ts_ms"`
}
