package monitor

import (
	"math/rand/v2"
	"sync"
	"time"

	"healthmonitor/internal/metrics"
	"healthmonitor/internal/models"
)

// Sampler produces one health sample per check.
type Sampler interface {
	Sample(now time.Time) models.HealthSample
}

// SamplerFunc adapts a function to Sampler.
type SamplerFunc func(now time.Time) models.HealthSample

// Sample calls f(now).
func (f SamplerFunc) Sample(now time.Time) models.HealthSample { return f(now) }

// RandomSampler simulates readings as independent uniform draws on [0, 100).
type RandomSampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSampler creates a sampler. A zero seed draws the seed from the
// runtime's entropy source; any other seed gives a reproducible sequence.
func NewRandomSampler(seed uint64) *RandomSampler {
	if seed == 0 {
		return &RandomSampler{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
	}
	return &RandomSampler{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Sample implements Sampler.
func (s *RandomSampler) Sample(now time.Time) models.HealthSample {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.HealthSample{
		Timestamp: now,
		CPU:       s.percent(),
		Memory:    s.percent(),
		Disk:      s.percent(),
	}
}

func (s *RandomSampler) percent() float64 {
	return metrics.TruncatePercent(s.rng.Float64() * 100)
}
