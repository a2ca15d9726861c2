package main

import (
	"github.com/spf13/pflag"

	"healthmonitor/internal/config"
)

type options struct {
	configPath string
	intervalMS int
	threshold  float64
	debug      bool
	verbose    bool
	logLevel   string
	seed       uint64
	once       bool
}

func bindFlags(fs *pflag.FlagSet, o *options) {
	fs.StringVarP(&o.configPath, "config", "c", "", "path to configuration file (YAML)")
	fs.IntVar(&o.intervalMS, "interval", config.DefaultIntervalMS, "check interval in milliseconds")
	fs.Float64Var(&o.threshold, "threshold", config.DefaultAlertThreshold, "alert threshold percentage (0-100)")
	fs.BoolVar(&o.debug, "debug", false, "enable debug output and the memory usage report")
	fs.BoolVar(&o.verbose, "verbose", false, "print when the next check is due")
	fs.StringVar(&o.logLevel, "log-level", "info", "operational log level (debug, info, warn, error)")
	fs.Uint64Var(&o.seed, "seed", 0, "seed for reproducible readings (0 = random)")
	fs.BoolVar(&o.once, "once", false, "run a single check and exit")
}

// applyFlags overlays the flags the user set explicitly onto cfg.
func applyFlags(fs *pflag.FlagSet, o *options, cfg config.Config) config.Config {
	if fs.Changed("interval") {
		cfg.IntervalMS = o.intervalMS
	}
	if fs.Changed("threshold") {
		cfg.AlertThreshold = o.threshold
	}
	if fs.Changed("debug") {
		cfg.DebugMode = o.debug
	}
	if fs.Changed("verbose") {
		cfg.VerboseLogging = o.verbose
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if fs.Changed("seed") {
		cfg.RandomSeed = o.seed
	}
	return cfg
}
