package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "healthmonitor"

// Collectors holds the in-process gauges and counters fed by each check.
type Collectors struct {
	Usage         *prometheus.GaugeVec
	Status        prometheus.Gauge
	Threshold     prometheus.Gauge
	Checks        *prometheus.CounterVec
	ProcessMemory *prometheus.GaugeVec
}

// NewCollectors registers the health monitor collectors on reg.
func NewCollectors(reg prometheus.Registerer) *Collectors {
	factory := promauto.With(reg)
	return &Collectors{
		Usage: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "usage_percent",
			Help:      "Latest simulated usage percentage per resource",
		}, []string{"resource"}),
		Status: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "status",
			Help:      "Latest check status (0 healthy, 1 warning)",
		}),
		Threshold: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "alert_threshold_percent",
			Help:      "Configured alert threshold",
		}),
		Checks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checks_total",
			Help:      "Total number of health checks by resulting status",
		}, []string{"status"}),
		ProcessMemory: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "process_memory_bytes",
			Help:      "Process memory usage reported by the debug memory timer",
		}, []string{"kind"}),
	}
}
