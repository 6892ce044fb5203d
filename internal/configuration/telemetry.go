package configuration

import "time"

type TelemetryConfig struct {
	// Devices lists the recognized rotational device names (e.g. "sda").
	Devices []string `json:"devices"`
	// SnapshotPath points at the externally refreshed disks.ini status file.
	SnapshotPath string `json:"snapshotPath"`
	// ProbeTimeout bounds a single live SMART probe.
	ProbeTimeout   time.Duration `json:"probeTimeout"`
	SmartctlBinary string        `json:"smartctlBinary"`
}
