package engine

import (
	"github.com/CameraRick/onAir-fanControl/internal/telemetry"
)

type SelectionKind string

const (
	// SelectionHottest means a hottest active device was found.
	SelectionHottest SelectionKind = "hottest"
	// SelectionAllStandby means every rotational device reports standby.
	SelectionAllStandby SelectionKind = "all-standby"
	// SelectionNoData means at least one device is active but none of them
	// reported a usable temperature.
	SelectionNoData SelectionKind = "no-data"
)

// Selection is the per-tick outcome of reducing all device readings to a
// single control input.
type Selection struct {
	Kind SelectionKind
	// Device and Temperature are only meaningful for SelectionHottest.
	Device      string
	Temperature float64
	Source      telemetry.ReadingSource

	ActiveCount  int
	StandbyCount int
}

// SelectHottest reduces the given readings to the hottest active
// rotational device. Solid-state devices never drive the fan and are
// ignored entirely. Ties resolve to the lexicographically smallest
// device name so the outcome is deterministic.
func SelectHottest(readings []telemetry.DeviceReading) Selection {
	selection := Selection{Kind: SelectionNoData}
	found := false

	for _, reading := range readings {
		if reading.Media != telemetry.MediaRotational {
			continue
		}

		if reading.PowerState == telemetry.PowerStateStandby {
			selection.StandbyCount++
			continue
		}
		selection.ActiveCount++

		if !reading.HasTemperature() {
			continue
		}

		temp := *reading.Temperature
		if !found || temp > selection.Temperature ||
			(temp == selection.Temperature && reading.Device < selection.Device) {
			selection.Device = reading.Device
			selection.Temperature = temp
			selection.Source = reading.Source
			found = true
		}
	}

	switch {
	case found:
		selection.Kind = SelectionHottest
	case selection.StandbyCount > 0 && selection.ActiveCount == 0:
		selection.Kind = SelectionAllStandby
	}
	return selection
}
