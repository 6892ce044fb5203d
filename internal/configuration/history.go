package configuration

import "time"

type HistoryConfig struct {
	Enabled bool   `json:"enabled"`
	DbPath  string `json:"dbPath"`
	// SampleInterval controls how often a (temperature, duty) sample is
	// recorded for the status API.
	SampleInterval time.Duration `json:"sampleInterval"`
	MaxSamples     int           `json:"maxSamples"`
}
