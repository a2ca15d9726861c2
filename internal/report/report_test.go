package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthmonitor/internal/config"
	"healthmonitor/internal/metrics"
	"healthmonitor/internal/models"
)

type recorder struct {
	checks []models.Check
	err    error
}

func (r *recorder) ReportCheck(c models.Check) error {
	r.checks = append(r.checks, c)
	return r.err
}

func TestCombine_FansOutAndJoinsErrors(t *testing.T) {
	first := &recorder{err: errors.New("first failed")}
	second := &recorder{}
	third := &recorder{err: errors.New("third failed")}

	err := Combine(first, second, third).ReportCheck(newCheck(1, 2, 3))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "first failed")
	assert.Contains(t, err.Error(), "third failed")
	assert.Len(t, first.checks, 1)
	assert.Len(t, second.checks, 1)
	assert.Len(t, third.checks, 1)
}

func TestPrometheus_ReportCheck(t *testing.T) {
	collectors := metrics.NewCollectors(prometheus.NewRegistry())
	p := NewPrometheus(collectors)

	require.NoError(t, p.ReportCheck(newCheck(90, 20, 30)))
	require.NoError(t, p.ReportCheck(newCheck(10, 20, 30)))

	assert.Equal(t, 10.0, testutil.ToFloat64(collectors.Usage.WithLabelValues("cpu")))
	assert.Equal(t, 20.0, testutil.ToFloat64(collectors.Usage.WithLabelValues("memory")))
	assert.Equal(t, 30.0, testutil.ToFloat64(collectors.Usage.WithLabelValues("disk")))
	assert.Equal(t, 0.0, testutil.ToFloat64(collectors.Status))
	assert.Equal(t, 80.0, testutil.ToFloat64(collectors.Threshold))
	assert.Equal(t, 1.0, testutil.ToFloat64(collectors.Checks.WithLabelValues("WARNING")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collectors.Checks.WithLabelValues("HEALTHY")))
}

func TestPrometheus_ReportMemory(t *testing.T) {
	collectors := metrics.NewCollectors(prometheus.NewRegistry())
	p := NewPrometheus(collectors)

	require.NoError(t, p.ReportMemory(models.MemoryUsage{RSSBytes: 2048, HeapUsedBytes: 1024}))

	assert.Equal(t, 2048.0, testutil.ToFloat64(collectors.ProcessMemory.WithLabelValues("rss")))
	assert.Equal(t, 1024.0, testutil.ToFloat64(collectors.ProcessMemory.WithLabelValues("heap_used")))
}

func TestBuild(t *testing.T) {
	collectors := metrics.NewCollectors(prometheus.NewRegistry())

	t.Run("debug off has no memory reporter", func(t *testing.T) {
		var buf bytes.Buffer
		checks, memory := Build(config.DefaultConfig(), NewConsole(&buf, MetricsSection), NewPrometheus(collectors))
		require.NotNil(t, checks)
		assert.Nil(t, memory)

		require.NoError(t, checks.ReportCheck(newCheck(1, 2, 3)))
		assert.Contains(t, buf.String(), "CPU usage: 1.00%")
	})

	t.Run("debug on reports memory to console and prometheus", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.DebugMode = true
		var buf bytes.Buffer
		_, memory := Build(cfg, NewConsole(&buf), NewPrometheus(collectors))
		require.NotNil(t, memory)

		require.NoError(t, memory.ReportMemory(models.MemoryUsage{RSSBytes: 1024 * 1024}))
		assert.Contains(t, buf.String(), "RSS: 1.00 MB")
		assert.Equal(t, float64(1024*1024), testutil.ToFloat64(collectors.ProcessMemory.WithLabelValues("rss")))
	})

	t.Run("prometheus optional", func(t *testing.T) {
		var buf bytes.Buffer
		checks, _ := Build(config.DefaultConfig(), NewConsole(&buf, StatusSection), nil)
		require.NoError(t, checks.ReportCheck(newCheck(1, 2, 3)))
		assert.Equal(t, "✅ System Status: HEALTHY\n", buf.String())
	})
}
