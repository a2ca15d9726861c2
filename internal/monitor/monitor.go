package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"healthmonitor/internal/config"
	"healthmonitor/internal/metrics"
	"healthmonitor/internal/models"
	"healthmonitor/internal/report"
	"healthmonitor/internal/scheduler"
)

const (
	// MemoryInterval is the default period of the debug-mode memory report.
	MemoryInterval = 30 * time.Second

	healthCheckTask = "health_check"
	memoryUsageTask = "memory_usage"

	stopTimeout = 5 * time.Second
)

// ErrMemoryReportDisabled is returned by ReportMemory outside debug mode.
var ErrMemoryReportDisabled = errors.New("memory report requires debug mode")

// Monitor periodically simulates health samples and reports them.
type Monitor struct {
	cfg        config.Config
	log        *zap.Logger
	sampler    Sampler
	memory     MemoryProbe
	registerer prometheus.Registerer
	now        func() time.Time
	memEvery   time.Duration

	console   *report.Console
	checks    report.Reporter
	memReport report.MemoryReporter
	scheduler *scheduler.Scheduler

	mu      sync.Mutex
	started bool
}

// Option customises a Monitor.
type Option func(*Monitor)

// WithSampler replaces the random sampler.
func WithSampler(s Sampler) Option {
	return func(m *Monitor) { m.sampler = s }
}

// WithMemoryProbe replaces the process memory probe.
func WithMemoryProbe(p MemoryProbe) Option {
	return func(m *Monitor) { m.memory = p }
}

// WithRegisterer mirrors every check into prometheus collectors registered on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(m *Monitor) { m.registerer = reg }
}

// WithClock replaces the wall clock used to timestamp samples.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) { m.now = now }
}

// WithMemoryInterval changes the period of the debug-mode memory report.
func WithMemoryInterval(d time.Duration) Option {
	return func(m *Monitor) { m.memEvery = d }
}

// New creates a monitor writing its report to out. The configuration is
// captured by value; a non-positive interval falls back to the default.
func New(cfg config.Config, out io.Writer, log *zap.Logger, opts ...Option) *Monitor {
	if cfg.IntervalMS <= 0 {
		cfg.IntervalMS = config.DefaultIntervalMS
	}

	m := &Monitor{
		cfg:    cfg,
		log:    log.Named("monitor"),
		memory:   NewProcessMemoryProbe(),
		now:      time.Now,
		memEvery: MemoryInterval,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.sampler == nil {
		m.sampler = NewRandomSampler(cfg.RandomSeed)
	}
	if m.memEvery <= 0 {
		m.memEvery = MemoryInterval
	}

	m.console = report.NewConsole(out, report.ConsoleSections(cfg)...)
	var prom *report.Prometheus
	if m.registerer != nil {
		prom = report.NewPrometheus(metrics.NewCollectors(m.registerer))
	}
	m.checks, m.memReport = report.Build(cfg, m.console, prom)
	m.scheduler = scheduler.New(m.log)
	return m
}

// Config returns the configuration the monitor was built with.
func (m *Monitor) Config() config.Config {
	return m.cfg
}

// Start prints the banner, schedules the recurring checks (and the memory
// report in debug mode) and runs the first check immediately. Calling Start
// again is a no-op.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return nil
	}

	m.log.Info("health monitor starting",
		zap.Duration("interval", m.cfg.Interval()),
		zap.Float64("alert_threshold", m.cfg.AlertThreshold),
		zap.String("metrics_endpoint", m.cfg.MetricsEndpoint),
		zap.Bool("debug_mode", m.cfg.DebugMode),
		zap.Bool("verbose_logging", m.cfg.VerboseLogging))

	if err := m.console.Banner(m.cfg.Interval()); err != nil {
		return err
	}

	if err := m.scheduler.AddIntervalTask(healthCheckTask, m.cfg.Interval(), func(ctx context.Context) error {
		_, err := m.CheckSystemHealth(ctx)
		return err
	}); err != nil {
		return fmt.Errorf("schedule health check: %w", err)
	}
	if m.memReport != nil {
		if err := m.scheduler.AddIntervalTask(memoryUsageTask, m.memEvery, func(ctx context.Context) error {
			_, err := m.ReportMemory(ctx)
			return err
		}); err != nil {
			return fmt.Errorf("schedule memory report: %w", err)
		}
	}
	if err := m.scheduler.Start(); err != nil {
		return err
	}
	m.started = true

	if _, err := m.CheckSystemHealth(ctx); err != nil {
		m.log.Error("initial check failed", zap.Error(err))
	}
	return nil
}

// Stop halts the check timer and the memory timer together.
func (m *Monitor) Stop(ctx context.Context) error {
	return m.scheduler.Stop(ctx)
}

// Run starts the monitor and blocks until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	if err := m.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	return m.Stop(stopCtx)
}

// CheckSystemHealth draws a fresh sample, derives its status and hands the
// result to every reporter.
func (m *Monitor) CheckSystemHealth(ctx context.Context) (models.Check, error) {
	if err := ctx.Err(); err != nil {
		return models.Check{}, err
	}

	sample := m.sampler.Sample(m.now().UTC())
	check := models.Check{
		Sample:    sample,
		Status:    models.Evaluate(sample, m.cfg.AlertThreshold),
		Threshold: m.cfg.AlertThreshold,
		Interval:  m.cfg.Interval(),
	}

	fields := []zap.Field{
		zap.Float64("cpu", sample.CPU),
		zap.Float64("memory", sample.Memory),
		zap.Float64("disk", sample.Disk),
		zap.String("status", string(check.Status)),
	}
	if check.Status == models.StatusWarning {
		m.log.Warn("resource usage above threshold", fields...)
	} else {
		m.log.Debug("health check completed", fields...)
	}

	if err := m.checks.ReportCheck(check); err != nil {
		return check, fmt.Errorf("report check: %w", err)
	}
	return check, nil
}

// ReportMemory reads the process memory usage and reports it. Only available
// in debug mode.
func (m *Monitor) ReportMemory(ctx context.Context) (models.MemoryUsage, error) {
	if m.memReport == nil {
		return models.MemoryUsage{}, ErrMemoryReportDisabled
	}
	usage, err := m.memory.Read(ctx)
	if err != nil {
		return models.MemoryUsage{}, fmt.Errorf("read memory usage: %w", err)
	}
	m.log.Debug("memory usage collected",
		zap.Float64("rss_mb", metrics.BytesToMB(usage.RSSBytes)),
		zap.Float64("heap_used_mb", metrics.BytesToMB(usage.HeapUsedBytes)))

	if err := m.memReport.ReportMemory(usage); err != nil {
		return usage, fmt.Errorf("report memory: %w", err)
	}
	return usage, nil
}

// ScheduledTasks lists the recurring timers registered by Start.
func (m *Monitor) ScheduledTasks() []string {
	return m.scheduler.Tasks()
}
