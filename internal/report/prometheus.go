package report

import (
	"healthmonitor/internal/metrics"
	"healthmonitor/internal/models"
)

// Prometheus mirrors checks and memory readings into in-process collectors.
type Prometheus struct {
	collectors *metrics.Collectors
}

// NewPrometheus creates a reporter updating the given collectors.
func NewPrometheus(collectors *metrics.Collectors) *Prometheus {
	return &Prometheus{collectors: collectors}
}

// ReportCheck implements Reporter.
func (p *Prometheus) ReportCheck(check models.Check) error {
	for resource, value := range check.Sample.Values() {
		p.collectors.Usage.WithLabelValues(string(resource)).Set(value)
	}
	status := 0.0
	if check.Status == models.StatusWarning {
		status = 1
	}
	p.collectors.Status.Set(status)
	p.collectors.Threshold.Set(check.Threshold)
	p.collectors.Checks.WithLabelValues(string(check.Status)).Inc()
	return nil
}

// ReportMemory implements MemoryReporter.
func (p *Prometheus) ReportMemory(usage models.MemoryUsage) error {
	p.collectors.ProcessMemory.WithLabelValues("rss").Set(float64(usage.RSSBytes))
	p.collectors.ProcessMemory.WithLabelValues("heap_used").Set(float64(usage.HeapUsedBytes))
	return nil
}
