package configuration

const (
	CurveModeLinear  = "linear"
	CurveModeStepped = "stepped"
)

// CurvePointConfig maps a temperature (°C) to a fan duty cycle (percent).
type CurvePointConfig struct {
	Temp float64 `json:"temp"`
	Duty int     `json:"duty"`
}

// CurveConfig defines the baseline temperature -> duty mapping.
// Points must be sorted ascending by temperature and unique.
type CurveConfig struct {
	Points []CurvePointConfig `json:"points"`
	Mode   string             `json:"mode"`
}
