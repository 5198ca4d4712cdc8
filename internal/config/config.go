// Package config loads hazard settings from defaults, an optional YAML file
// and HAZARD_* environment variables.
package config

import (
	"fmt"
	"time"
)

// Config holds the application's configuration.
type Config struct {
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Log       LogConfig       `mapstructure:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Recorder  RecorderConfig  `mapstructure:"recorder"`
}

type DashboardConfig struct {
	Interval       time.Duration `mapstructure:"interval"`
	SeriesCapacity int           `mapstructure:"series_capacity"`
	AlertCapacity  int           `mapstructure:"alert_capacity"` // 0 keeps every alert
	AutoStart      bool          `mapstructure:"auto_start"`
	InitialCycle   bool          `mapstructure:"initial_cycle"`
	Seed           uint64        `mapstructure:"seed"` // 0 seeds from entropy
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
	Output string `mapstructure:"output"` // file path, "stdout" or "stderr"
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"` // empty disables the endpoint
}

type RecorderConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// Validate checks the configuration for values the dashboard cannot run with.
func (c *Config) Validate() error {
	if c.Dashboard.Interval <= 0 {
		return fmt.Errorf("dashboard.interval must be positive, got %s", c.Dashboard.Interval)
	}
	if c.Dashboard.SeriesCapacity < 1 {
		return fmt.Errorf("dashboard.series_capacity must be at least 1, got %d", c.Dashboard.SeriesCapacity)
	}
	if c.Dashboard.AlertCapacity < 0 {
		return fmt.Errorf("dashboard.alert_capacity must not be negative, got %d", c.Dashboard.AlertCapacity)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	if c.Recorder.Enabled && c.Recorder.Dir == "" {
		return fmt.Errorf("recorder.dir is required when recorder.enabled is set")
	}
	return nil
}
