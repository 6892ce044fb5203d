package telemetry

import (
	"context"

	"github.com/CameraRick/onAir-fanControl/internal/ui"
)

// Collector produces one DeviceReading per recognized device for the
// current tick, preferring a live probe and falling back to the cached
// snapshot. Readings are also published to the shared registry.
type Collector struct {
	prober    Prober
	snapshots SnapshotProvider
}

func NewCollector(prober Prober, snapshots SnapshotProvider) *Collector {
	return &Collector{
		prober:    prober,
		snapshots: snapshots,
	}
}

// Collect gathers readings for the given devices. It never fails as a
// whole: per-device probe errors degrade to the cached snapshot, a
// missing snapshot degrades to probe-only operation.
func (c *Collector) Collect(ctx context.Context, devices []string) []DeviceReading {
	snapshot, err := c.snapshots.Load()
	if err != nil {
		ui.Warning("Cannot load cached snapshot: %v", err)
		snapshot.Readings = map[string]SnapshotReading{}
	}

	readings := make([]DeviceReading, 0, len(devices))
	for _, device := range devices {
		reading := c.collectDevice(ctx, device, snapshot)
		StoreReading(reading)
		readings = append(readings, reading)
	}
	return readings
}

func (c *Collector) collectDevice(ctx context.Context, device string, snapshot Snapshot) DeviceReading {
	cached, hasCached := snapshot.Readings[device]

	media := MediaRotational
	if hasCached {
		media = cached.Media
	}

	// a device the snapshot already knows to be asleep is not probed, so
	// that telemetry itself never keeps a drive awake
	if hasCached && cached.PowerState == PowerStateStandby {
		reading := DeviceReading{
			Device:      device,
			Temperature: cached.Temperature,
			PowerState:  PowerStateStandby,
			Media:       media,
			Source:      ReadingSourceCachedSnapshot,
		}
		logReading(reading)
		return reading
	}

	result, err := c.prober.Probe(ctx, device)
	if err == nil {
		reading := DeviceReading{
			Device:      device,
			Temperature: result.Temperature,
			PowerState:  result.PowerState,
			Media:       media,
			Source:      ReadingSourceLiveProbe,
		}
		logReading(reading)
		return reading
	}

	ui.Debug("Live probe of %s failed (%v), falling back to snapshot", device, err)

	if hasCached {
		reading := DeviceReading{
			Device:      device,
			Temperature: cached.Temperature,
			PowerState:  cached.PowerState,
			Media:       media,
			Source:      ReadingSourceCachedSnapshot,
		}
		logReading(reading)
		return reading
	}

	// neither source yielded anything; the device still counts toward the
	// "is everything standby?" decision as an active, unreadable device
	reading := DeviceReading{
		Device:     device,
		PowerState: PowerStateActive,
		Media:      media,
		Source:     ReadingSourceNone,
	}
	logReading(reading)
	return reading
}

// logReading reports device, source and value. Reporting only, control
// decisions never depend on it.
func logReading(reading DeviceReading) {
	if reading.HasTemperature() {
		ui.Debug("Device %s [%s, %s]: %.1f°C (%s)",
			reading.Device, reading.Media, reading.PowerState, *reading.Temperature, reading.Source)
		return
	}
	ui.Debug("Device %s [%s, %s]: no temperature (%s)",
		reading.Device, reading.Media, reading.PowerState, reading.Source)
}
