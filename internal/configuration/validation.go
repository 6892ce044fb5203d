package configuration

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// ErrInvalidConfig is wrapped by every validation failure, so that write
// boundaries (API, MQTT) can reject a config swap while keeping the
// previous configuration in force.
var ErrInvalidConfig = errors.New("invalid configuration")

func invalidf(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, a...))
}

// Validate checks the currently loaded configuration.
func Validate() error {
	return ValidateConfig(&CurrentConfig)
}

func ValidateConfig(config *Configuration) error {
	if err := validateCurve(&config.Curve); err != nil {
		return err
	}
	if err := validateLimits(&config.Limits); err != nil {
		return err
	}
	if err := validateHysteresis(&config.Hysteresis); err != nil {
		return err
	}
	if err := validateController(&config.Controller); err != nil {
		return err
	}
	return validateTelemetry(&config.Telemetry)
}

func validateCurve(curve *CurveConfig) error {
	if len(curve.Points) == 0 {
		return invalidf("curve: at least one point is required")
	}

	supportedModes := []string{CurveModeLinear, CurveModeStepped}
	if !slices.Contains(supportedModes, curve.Mode) {
		return invalidf("curve: unsupported mode '%s', use one of: linear | stepped", curve.Mode)
	}

	for i, point := range curve.Points {
		if point.Duty < 0 || point.Duty > 100 {
			return invalidf("curve: point %d: duty %d out of range [0, 100]", i, point.Duty)
		}
		if i == 0 {
			continue
		}
		previous := curve.Points[i-1]
		if point.Temp == previous.Temp {
			return invalidf("curve: duplicate temperature %.1f", point.Temp)
		}
		if point.Temp < previous.Temp {
			return invalidf("curve: points not sorted ascending by temperature (%.1f after %.1f)", point.Temp, previous.Temp)
		}
	}

	return nil
}

func validateLimits(limits *LimitsConfig) error {
	if limits.MinDuty < 0 || limits.MinDuty > 100 {
		return invalidf("limits: minDuty %d out of range [0, 100]", limits.MinDuty)
	}
	if limits.MaxDuty < 0 || limits.MaxDuty > 100 {
		return invalidf("limits: maxDuty %d out of range [0, 100]", limits.MaxDuty)
	}
	if limits.MinDuty > limits.MaxDuty {
		return invalidf("limits: minDuty %d > maxDuty %d", limits.MinDuty, limits.MaxDuty)
	}
	if limits.BiasLimit < 0 || limits.BiasLimit > 100 {
		return invalidf("limits: biasLimit %d out of range [0, 100]", limits.BiasLimit)
	}

	if limits.SpinDown.Enabled && !limits.SpinDown.Value.IsPowerOff() {
		duty, err := limits.SpinDown.Value.Duty()
		if err != nil {
			return invalidf("limits: %v", err)
		}
		// the spin-down duty deliberately ignores minDuty, but it still has
		// to be a valid duty cycle
		if duty < 0 || duty > 100 {
			return invalidf("limits: spin-down duty %d out of range [0, 100]", duty)
		}
	}

	return nil
}

func validateHysteresis(hysteresis *HysteresisConfig) error {
	if hysteresis.RisingMargin < 0 {
		return invalidf("hysteresis: risingMargin must be >= 0")
	}
	if hysteresis.FallingMargin < 0 {
		return invalidf("hysteresis: fallingMargin must be >= 0")
	}
	return nil
}

func validateController(controller *ControllerConfig) error {
	if controller.PollInterval <= 0 {
		return invalidf("controller: pollInterval must be > 0")
	}
	if controller.PublishInterval <= 0 {
		return invalidf("controller: publishInterval must be > 0")
	}
	if controller.RampStep < 1 {
		return invalidf("controller: rampStep must be >= 1")
	}
	return nil
}

func validateTelemetry(telemetry *TelemetryConfig) error {
	if len(telemetry.SnapshotPath) == 0 {
		return invalidf("telemetry: snapshotPath is missing")
	}
	if telemetry.ProbeTimeout <= 0 {
		return invalidf("telemetry: probeTimeout must be > 0")
	}
	return nil
}
