package configuration

import "time"

type ControllerConfig struct {
	// Time interval between telemetry polls (one full engine tick each).
	PollInterval time.Duration `json:"pollInterval"`
	// Time interval between state publishes, independent of the poll cadence.
	PublishInterval time.Duration `json:"publishInterval"`
	// Maximum duty change (percent points) applied per poll tick.
	RampStep int `json:"rampStep"`
}
