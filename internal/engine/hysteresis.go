package engine

import (
	"github.com/CameraRick/onAir-fanControl/internal/configuration"
)

// Hysteresis suppresses small temperature jitter by holding the last
// settled temperature until the current one leaves an asymmetric band
// around it.
type Hysteresis struct {
	risingMargin  float64
	fallingMargin float64
}

func NewHysteresis(config configuration.HysteresisConfig) Hysteresis {
	return Hysteresis{
		risingMargin:  config.RisingMargin,
		fallingMargin: config.FallingMargin,
	}
}

// Apply returns the temperature the curve should be evaluated against.
// A rise of at least risingMargin or a drop of at least fallingMargin
// settles the current value; anything closer keeps the previous settled
// value. When no settled value exists yet the current one is accepted
// unconditionally.
func (h Hysteresis) Apply(settled float64, hasSettled bool, current float64) float64 {
	if !hasSettled {
		return current
	}
	if current > settled && current-settled >= h.risingMargin {
		return current
	}
	if current < settled && settled-current >= h.fallingMargin {
		return current
	}
	return settled
}
