package models

import (
	"math"
	"time"
)

// Status is the derived health verdict of a single check.
type Status string

const (
	StatusHealthy Status = "HEALTHY"
	StatusWarning Status = "WARNING"
)

// Resource names a simulated resource reading.
type Resource string

const (
	ResourceCPU    Resource = "cpu"
	ResourceMemory Resource = "memory"
	ResourceDisk   Resource = "disk"
)

// HealthSample is one simulated reading of CPU/memory/disk usage percentages.
type HealthSample struct {
	Timestamp time.Time `json:"timestamp"`
	CPU       float64   `json:"cpu"`
	Memory    float64   `json:"memory"`
	Disk      float64   `json:"disk"`
}

// Max returns the highest of the three readings.
func (s HealthSample) Max() float64 {
	return math.Max(s.CPU, math.Max(s.Memory, s.Disk))
}

// Values returns the readings keyed by resource.
func (s HealthSample) Values() map[Resource]float64 {
	return map[Resource]float64{
		ResourceCPU:    s.CPU,
		ResourceMemory: s.Memory,
		ResourceDisk:   s.Disk,
	}
}

// Evaluate derives the status of a sample against the alert threshold.
// Any reading strictly above the threshold yields a warning.
func Evaluate(sample HealthSample, threshold float64) Status {
	if sample.Max() > threshold {
		return StatusWarning
	}
	return StatusHealthy
}

// Check is the outcome of one health check, as handed to reporters.
type Check struct {
	Sample    HealthSample  `json:"sample"`
	Status    Status        `json:"status"`
	Threshold float64       `json:"threshold"`
	Interval  time.Duration `json:"interval"`
}

// MemoryUsage captures the resident set and heap usage of this process.
type MemoryUsage struct {
	Timestamp     time.Time `json:"timestamp"`
	RSSBytes      uint64    `json:"rss_bytes"`
	HeapUsedBytes uint64    `json:"heap_used_bytes"`
}
