// Package app assembles the health monitor process with fx.
package app

import (
	"context"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"healthmonitor/internal/config"
	"healthmonitor/internal/metrics"
	"healthmonitor/internal/monitor"
)

// Options returns the fx options of the health monitor. The monitor starts
// with the application and both of its timers stop with it, after which the
// collected check counts are logged.
func Options(cfg config.Config, out io.Writer, log *zap.Logger) []fx.Option {
	return []fx.Option{
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
		fx.Supply(cfg, log),
		fx.Provide(
			func() io.Writer { return out },
			prometheus.NewRegistry,
			newMonitor,
		),
		fx.Invoke(registerLifecycle),
	}
}

type monitorParams struct {
	fx.In

	Config   config.Config
	Out      io.Writer
	Logger   *zap.Logger
	Registry *prometheus.Registry
}

func newMonitor(p monitorParams) *monitor.Monitor {
	return monitor.New(p.Config, p.Out, p.Logger, monitor.WithRegisterer(p.Registry))
}

func registerLifecycle(lc fx.Lifecycle, m *monitor.Monitor, reg *prometheus.Registry, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return m.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			err := m.Stop(ctx)
			metrics.LogSummary(log, reg)
			_ = log.Sync()
			return err
		},
	})
}
