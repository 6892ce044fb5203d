package engine

import (
	"github.com/CameraRick/onAir-fanControl/internal/configuration"
	"github.com/CameraRick/onAir-fanControl/internal/util"
)

// Clamp applies the manual bias to a curve duty and bounds the result to
// the configured duty window.
func Clamp(curveDuty int, bias int, limits configuration.LimitsConfig) int {
	return int(util.Coerce(
		float64(curveDuty+bias),
		float64(limits.MinDuty),
		float64(limits.MaxDuty),
	))
}
