// Package report renders health checks and memory readings. Which capabilities
// are active (basic metrics, debug lines, memory readings, prometheus gauges)
// is decided once, when the reporters are built from configuration.
package report

import (
	"errors"

	"healthmonitor/internal/config"
	"healthmonitor/internal/models"
)

// Reporter receives the outcome of every health check.
type Reporter interface {
	ReportCheck(check models.Check) error
}

// MemoryReporter receives periodic process memory readings.
type MemoryReporter interface {
	ReportMemory(usage models.MemoryUsage) error
}

type multiReporter []Reporter

// Combine fans a check out to every reporter and joins their errors.
func Combine(reporters ...Reporter) Reporter {
	return multiReporter(reporters)
}

func (m multiReporter) ReportCheck(check models.Check) error {
	var errs []error
	for _, r := range m {
		if err := r.ReportCheck(check); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type multiMemoryReporter []MemoryReporter

// CombineMemory fans a memory reading out to every reporter and joins their errors.
func CombineMemory(reporters ...MemoryReporter) MemoryReporter {
	return multiMemoryReporter(reporters)
}

func (m multiMemoryReporter) ReportMemory(usage models.MemoryUsage) error {
	var errs []error
	for _, r := range m {
		if err := r.ReportMemory(usage); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Build assembles the reporters enabled by cfg. The memory reporter is nil
// unless debug mode is on, which also disables the memory timer.
func Build(cfg config.Config, console *Console, prom *Prometheus) (Reporter, MemoryReporter) {
	checks := []Reporter{console}
	if prom != nil {
		checks = append(checks, prom)
	}
	if !cfg.DebugMode {
		return Combine(checks...), nil
	}

	memory := []MemoryReporter{console}
	if prom != nil {
		memory = append(memory, prom)
	}
	return Combine(checks...), CombineMemory(memory...)
}
