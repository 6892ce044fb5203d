package configuration

// HysteresisConfig defines the asymmetric dead-band (in °C) around the
// last settled temperature. Rising temperatures can be configured to react
// faster than falling ones for thermal safety.
type HysteresisConfig struct {
	RisingMargin  float64 `json:"risingMargin"`
	FallingMargin float64 `json:"fallingMargin"`
}
