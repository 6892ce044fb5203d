package statistics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/CameraRick/onAir-fanControl/internal/engine"
)

const engineSubsystem = "engine"

type stateSource interface {
	Snapshot() engine.State
}

type EngineCollector struct {
	source stateSource

	liveDuty     *prometheus.Desc
	targetDuty   *prometheus.Desc
	bias         *prometheus.Desc
	maxTemp      *prometheus.Desc
	activeCount  *prometheus.Desc
	standbyCount *prometheus.Desc
	poweredOff   *prometheus.Desc
}

func NewEngineCollector(source stateSource) *EngineCollector {
	return &EngineCollector{
		source: source,
		liveDuty: prometheus.NewDesc(prometheus.BuildFQName(namespace, engineSubsystem, "duty_live"),
			"Currently applied fan duty in percent",
			nil, nil,
		),
		targetDuty: prometheus.NewDesc(prometheus.BuildFQName(namespace, engineSubsystem, "duty_target"),
			"Duty the ramp is converging on, in percent",
			nil, nil,
		),
		bias: prometheus.NewDesc(prometheus.BuildFQName(namespace, engineSubsystem, "bias"),
			"Manual duty offset in percent points",
			nil, nil,
		),
		maxTemp: prometheus.NewDesc(prometheus.BuildFQName(namespace, engineSubsystem, "temp_max"),
			"Settled temperature of the hottest device",
			[]string{"device"}, nil,
		),
		activeCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, engineSubsystem, "devices_active"),
			"Number of devices currently spinning",
			nil, nil,
		),
		standbyCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, engineSubsystem, "devices_standby"),
			"Number of devices currently in standby",
			nil, nil,
		),
		poweredOff: prometheus.NewDesc(prometheus.BuildFQName(namespace, engineSubsystem, "powered_off"),
			"Whether the spin-down override has switched the fan off",
			nil, nil,
		),
	}
}

func (collector *EngineCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.liveDuty
	ch <- collector.targetDuty
	ch <- collector.bias
	ch <- collector.maxTemp
	ch <- collector.activeCount
	ch <- collector.standbyCount
	ch <- collector.poweredOff
}

// Collect implements the prometheus collector contract.
func (collector *EngineCollector) Collect(ch chan<- prometheus.Metric) {
	state := collector.source.Snapshot()

	ch <- prometheus.MustNewConstMetric(collector.liveDuty, prometheus.GaugeValue, float64(state.LiveDuty))
	ch <- prometheus.MustNewConstMetric(collector.targetDuty, prometheus.GaugeValue, float64(state.TargetDuty))
	ch <- prometheus.MustNewConstMetric(collector.bias, prometheus.GaugeValue, float64(state.Bias))
	ch <- prometheus.MustNewConstMetric(collector.activeCount, prometheus.GaugeValue, float64(state.ActiveCount))
	ch <- prometheus.MustNewConstMetric(collector.standbyCount, prometheus.GaugeValue, float64(state.StandbyCount))

	poweredOff := 0.0
	if state.PoweredOff {
		poweredOff = 1.0
	}
	ch <- prometheus.MustNewConstMetric(collector.poweredOff, prometheus.GaugeValue, poweredOff)

	if state.MaxTemp != nil {
		ch <- prometheus.MustNewConstMetric(collector.maxTemp, prometheus.GaugeValue, *state.MaxTemp, state.SourceDevice)
	}
}
