package configuration

// SpinDownConfig controls engine behaviour when every monitored
// rotational device reports standby.
type SpinDownConfig struct {
	Enabled bool `json:"enabled"`
	// Value is the duty to apply while all devices are spun down. It is an
	// explicit exception to MinDuty and may also be the power-off sentinel.
	Value SpinDownValue `json:"value"`
}

type LimitsConfig struct {
	MinDuty int `json:"minDuty"`
	MaxDuty int `json:"maxDuty"`
	// BiasLimit bounds the manual offset to [-BiasLimit, +BiasLimit].
	BiasLimit int            `json:"biasLimit"`
	SpinDown  SpinDownConfig `json:"spinDown"`
}
