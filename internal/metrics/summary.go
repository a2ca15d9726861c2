package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Summary condenses the collectors into the figures logged on shutdown.
type Summary struct {
	// Checks counts completed checks by status.
	Checks map[string]float64
	// Usage holds the latest reading per resource.
	Usage map[string]float64
	// ProcessMemory holds the latest debug memory reading per kind, in bytes.
	ProcessMemory map[string]float64
}

// Total is the number of checks across every status.
func (s Summary) Total() float64 {
	var n float64
	for _, v := range s.Checks {
		n += v
	}
	return n
}

// Summarize gathers g and picks out the health monitor families.
func Summarize(g prometheus.Gatherer) (Summary, error) {
	families, err := g.Gather()
	if err != nil {
		return Summary{}, fmt.Errorf("gather metrics: %w", err)
	}

	s := Summary{
		Checks:        make(map[string]float64),
		Usage:         make(map[string]float64),
		ProcessMemory: make(map[string]float64),
	}
	for _, f := range families {
		for _, m := range f.GetMetric() {
			var label string
			if len(m.GetLabel()) > 0 {
				label = m.GetLabel()[0].GetValue()
			}
			switch f.GetName() {
			case namespace + "_checks_total":
				s.Checks[label] = m.GetCounter().GetValue()
			case namespace + "_usage_percent":
				s.Usage[label] = m.GetGauge().GetValue()
			case namespace + "_process_memory_bytes":
				s.ProcessMemory[label] = m.GetGauge().GetValue()
			}
		}
	}
	return s, nil
}

// Fields renders the summary as zap fields with a stable order.
func (s Summary) Fields() []zap.Field {
	fields := []zap.Field{zap.Float64("checks_total", s.Total())}
	for _, k := range sortedKeys(s.Checks) {
		fields = append(fields, zap.Float64("checks_"+strings.ToLower(k), s.Checks[k]))
	}
	for _, k := range sortedKeys(s.Usage) {
		fields = append(fields, zap.Float64("last_"+k+"_percent", s.Usage[k]))
	}
	for _, k := range sortedKeys(s.ProcessMemory) {
		fields = append(fields, zap.Float64("last_"+k+"_mb", round2(s.ProcessMemory[k]/bytesPerMB)))
	}
	return fields
}

// LogSummary logs the current collector values gathered from g.
func LogSummary(log *zap.Logger, g prometheus.Gatherer) {
	s, err := Summarize(g)
	if err != nil {
		log.Warn("health check summary unavailable", zap.Error(err))
		return
	}
	log.Info("health check summary", s.Fields()...)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
