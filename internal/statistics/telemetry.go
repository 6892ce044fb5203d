package statistics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/CameraRick/onAir-fanControl/internal/telemetry"
)

const deviceSubsystem = "device"

type DeviceCollector struct {
	temp    *prometheus.Desc
	standby *prometheus.Desc
}

func NewDeviceCollector() *DeviceCollector {
	return &DeviceCollector{
		temp: prometheus.NewDesc(prometheus.BuildFQName(namespace, deviceSubsystem, "temp"),
			"Last known temperature of the device",
			[]string{"id", "source"}, nil,
		),
		standby: prometheus.NewDesc(prometheus.BuildFQName(namespace, deviceSubsystem, "standby"),
			"Whether the device is currently in standby",
			[]string{"id"}, nil,
		),
	}
}

func (collector *DeviceCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.temp
	ch <- collector.standby
}

// Collect implements the prometheus collector contract.
func (collector *DeviceCollector) Collect(ch chan<- prometheus.Metric) {
	for id, reading := range telemetry.Readings() {
		standby := 0.0
		if reading.PowerState == telemetry.PowerStateStandby {
			standby = 1.0
		}
		ch <- prometheus.MustNewConstMetric(collector.standby, prometheus.GaugeValue, standby, id)

		if reading.HasTemperature() {
			ch <- prometheus.MustNewConstMetric(collector.temp, prometheus.GaugeValue,
				*reading.Temperature, id, string(reading.Source))
		}
	}
}
