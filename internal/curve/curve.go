package curve

import (
	"errors"
	"fmt"
	"math"

	"github.com/CameraRick/onAir-fanControl/internal/configuration"
	"github.com/CameraRick/onAir-fanControl/internal/util"
)

// ErrInvalidCurve indicates a curve that violates the configuration
// invariant (no points, or points not strictly ascending by temperature).
// Given a validated configuration this should be unreachable; the engine
// treats it as fatal-for-that-tick.
var ErrInvalidCurve = errors.New("invalid curve")

// Curve maps a temperature to a raw target duty cycle using the configured
// control points and interpolation mode.
type Curve struct {
	points []configuration.CurvePointConfig
	mode   string
}

func New(config configuration.CurveConfig) (*Curve, error) {
	if len(config.Points) == 0 {
		return nil, fmt.Errorf("%w: no points", ErrInvalidCurve)
	}

	for i := 1; i < len(config.Points); i++ {
		if config.Points[i].Temp <= config.Points[i-1].Temp {
			return nil, fmt.Errorf("%w: points not strictly ascending at index %d", ErrInvalidCurve, i)
		}
	}

	switch config.Mode {
	case configuration.CurveModeLinear, configuration.CurveModeStepped:
	default:
		return nil, fmt.Errorf("%w: unknown mode '%s'", ErrInvalidCurve, config.Mode)
	}

	points := make([]configuration.CurvePointConfig, len(config.Points))
	copy(points, config.Points)

	return &Curve{
		points: points,
		mode:   config.Mode,
	}, nil
}

// Evaluate returns the duty (percent) for the given temperature.
// Temperatures outside the configured range are clamped to the first and
// last point, there is no extrapolation.
func (c *Curve) Evaluate(temp float64) (int, error) {
	if len(c.points) == 0 {
		return 0, fmt.Errorf("%w: no points", ErrInvalidCurve)
	}

	first := c.points[0]
	last := c.points[len(c.points)-1]

	if temp <= first.Temp {
		return first.Duty, nil
	}
	if temp >= last.Temp {
		return last.Duty, nil
	}

	// find the bracketing pair p[i].Temp <= temp <= p[i+1].Temp
	for i := 0; i < len(c.points)-1; i++ {
		lower := c.points[i]
		upper := c.points[i+1]

		if temp > upper.Temp {
			continue
		}

		if c.mode == configuration.CurveModeStepped {
			// plateau of the greatest point whose temperature <= temp
			if temp == upper.Temp {
				return upper.Duty, nil
			}
			return lower.Duty, nil
		}

		if temp == lower.Temp {
			return lower.Duty, nil
		}
		if temp == upper.Temp {
			return upper.Duty, nil
		}

		ratio := util.Ratio(temp, lower.Temp, upper.Temp)
		interpolated := float64(lower.Duty) + ratio*float64(upper.Duty-lower.Duty)
		return int(math.Round(interpolated)), nil
	}

	return last.Duty, nil
}

// Mode returns the configured interpolation mode.
func (c *Curve) Mode() string {
	return c.mode
}

// Sample evaluates the curve at every whole degree between the first and
// last control point. Used by the CLI curve preview.
func (c *Curve) Sample() ([]float64, error) {
	if len(c.points) == 0 {
		return nil, fmt.Errorf("%w: no points", ErrInvalidCurve)
	}

	start := int(math.Floor(c.points[0].Temp))
	stop := int(math.Ceil(c.points[len(c.points)-1].Temp))

	values := make([]float64, 0, stop-start+1)
	for t := start; t <= stop; t++ {
		duty, err := c.Evaluate(float64(t))
		if err != nil {
			return nil, err
		}
		values = append(values, float64(duty))
	}
	return values, nil
}
