package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"healthmonitor/internal/app"
	"healthmonitor/internal/config"
	"healthmonitor/internal/logging"
	"healthmonitor/internal/metrics"
	"healthmonitor/internal/monitor"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "healthmonitor",
		Short: "Simulated periodic system health checks",
		Long: `healthmonitor periodically simulates CPU, memory and disk usage readings,
prints them and flags a WARNING when any reading exceeds the alert threshold.

Configuration is read from an optional YAML file, then MONITOR_* environment
variables (a .env file in the working directory is honoured), then flags.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}
	bindFlags(cmd.Flags(), opts)
	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	if err := loadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg, err = applyFlags(cmd.Flags(), opts, cfg).Normalize()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if opts.once {
		reg := prometheus.NewRegistry()
		m := monitor.New(cfg, cmd.OutOrStdout(), log, monitor.WithRegisterer(reg))
		if _, err := m.CheckSystemHealth(cmd.Context()); err != nil {
			return err
		}
		metrics.LogSummary(log, reg)
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fxApp := fx.New(app.Options(cfg, cmd.OutOrStdout(), log)...)
	if err := fxApp.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(context.Background(), fxApp.StartTimeout())
	defer cancel()
	if err := fxApp.Start(startCtx); err != nil {
		return fmt.Errorf("start: %w", err)
	}

	<-ctx.Done()
	log.Info("shutting down")

	stopCtx, cancelStop := context.WithTimeout(context.Background(), fxApp.StopTimeout())
	defer cancelStop()
	if err := fxApp.Stop(stopCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
		return err
	}
	return nil
}

// loadDotEnv exports the variables of ./.env when that file exists.
func loadDotEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}
