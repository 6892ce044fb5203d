package statistics

import "github.com/prometheus/client_golang/prometheus"

const (
	namespace = "onair_fancontrol"
)

func Register(collector prometheus.Collector) {
	prometheus.MustRegister(collector)
}
