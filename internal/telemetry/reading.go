package telemetry

import (
	cmap "github.com/orcaman/concurrent-map/v2"
)

type PowerState string

const (
	PowerStateActive  PowerState = "active"
	PowerStateStandby PowerState = "standby"
)

type MediaKind string

const (
	MediaRotational MediaKind = "rotational"
	MediaSolidState MediaKind = "solid-state"
)

// ReadingSource tags where a reading's data came from.
type ReadingSource string

const (
	ReadingSourceLiveProbe      ReadingSource = "live-probe"
	ReadingSourceCachedSnapshot ReadingSource = "cached-snapshot"
	ReadingSourceNone           ReadingSource = "none"
)

// DeviceReading is one device's state for the current tick.
// Temperature is nil when neither the live probe nor the cached snapshot
// yielded a usable value.
type DeviceReading struct {
	Device      string        `json:"device"`
	Temperature *float64      `json:"temperature"`
	PowerState  PowerState    `json:"powerState"`
	Media       MediaKind     `json:"media"`
	Source      ReadingSource `json:"source"`
}

// HasTemperature reports whether a usable temperature is present.
func (r DeviceReading) HasTemperature() bool {
	return r.Temperature != nil
}

var (
	// ReadingMap holds the most recent reading per device. It is written by
	// the engine's poll tick and read concurrently by the status API and
	// the statistics collectors.
	ReadingMap = cmap.New[DeviceReading]()
)

// StoreReading publishes the given reading to the shared registry.
func StoreReading(reading DeviceReading) {
	ReadingMap.Set(reading.Device, reading)
}

// GetReading returns the last stored reading for the given device.
func GetReading(device string) (DeviceReading, bool) {
	return ReadingMap.Get(device)
}

// Readings returns a copy of all last stored readings.
func Readings() map[string]DeviceReading {
	return ReadingMap.Items()
}
