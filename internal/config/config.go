//-------------------------------------------------------------------------
//
// riskgen - synthetic financing risk data generator
//
// Portions copyright (c) 2025 - 2026, FO Data Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for riskgen.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for riskgen.
type Config struct {
	// Connection is the ClickHouse connection string
	// (e.g. "clickhouse://default@localhost:9000/default").
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Init holds configuration for the init subcommand.
	Init InitConfig `mapstructure:"init"`

	// Run holds configuration for the run subcommand.
	Run RunConfig `mapstructure:"run"`
}

// InitConfig holds configuration for schema and reference data bootstrap.
type InitConfig struct {
	// Books is the number of HMS book rows to generate.
	Books int `mapstructure:"books"`

	// Counterparties is the number of counterparty rows to generate.
	Counterparties int `mapstructure:"counterparties"`

	// Instruments is the number of instrument rows to generate.
	Instruments int `mapstructure:"instruments"`

	// Trades is the number of trade rows to generate.
	Trades int `mapstructure:"trades"`

	// DropExisting drops existing tables before initialization.
	DropExisting bool `mapstructure:"drop_existing"`
}

// RunConfig holds configuration for the risk-snapshot pipeline loop.
type RunConfig struct {
	// IntervalSeconds is the pause between pipeline runs.
	IntervalSeconds int `mapstructure:"interval_seconds"`

	// Duration is how long to run in minutes (0 = single run).
	Duration int `mapstructure:"duration"`

	// JobType tags every job created by this process.
	JobType string `mapstructure:"job_type"`

	// VersionFallback restores the legacy behavior of assigning snapshot
	// version 0 when the max-version lookup fails. Off by default: a failed
	// lookup fails the run rather than risking a silent version collision.
	VersionFallback bool `mapstructure:"version_fallback"`

	// BusinessHours optionally gates pipeline runs to a daily window.
	BusinessHours BusinessHoursConfig `mapstructure:"business_hours"`
}

// BusinessHoursConfig describes the daily window in which the pipeline
// generates snapshots. Outside the window scheduled runs are skipped.
type BusinessHoursConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Start    string `mapstructure:"start"` // "08:00"
	End      string `mapstructure:"end"`   // "17:00"
	Timezone string `mapstructure:"timezone"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Init: InitConfig{
			Books:          100,
			Counterparties: 1000,
			Instruments:    2500,
			Trades:         5000,
			DropExisting:   false,
		},
		Run: RunConfig{
			IntervalSeconds: 5,
			Duration:        0,
			JobType:         "INTRADAY",
			VersionFallback: false,
			BusinessHours: BusinessHoursConfig{
				Enabled:  false,
				Start:    "08:00",
				End:      "17:00",
				Timezone: "America/New_York",
			},
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./riskgen.yaml
// 3. ~/.config/riskgen/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("riskgen")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "riskgen"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// ValidateInit checks configuration required for the init command.
func (c *Config) ValidateInit() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Init.Books < 1 {
		return fmt.Errorf("books must be at least 1")
	}
	if c.Init.Counterparties < 1 {
		return fmt.Errorf("counterparties must be at least 1")
	}
	if c.Init.Instruments < 1 {
		return fmt.Errorf("instruments must be at least 1")
	}
	if c.Init.Trades < 0 {
		return fmt.Errorf("trades must be non-negative")
	}
	return nil
}

// ValidateRun checks configuration required for the run command.
func (c *Config) ValidateRun() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Run.IntervalSeconds < 1 {
		return fmt.Errorf("interval_seconds must be at least 1")
	}
	if c.Run.Duration < 0 {
		return fmt.Errorf("duration must be non-negative")
	}
	if c.Run.JobType == "" {
		return fmt.Errorf("job_type is required")
	}
	if c.Run.BusinessHours.Enabled {
		if _, err := ParseClock(c.Run.BusinessHours.Start); err != nil {
			return fmt.Errorf("invalid business_hours.start: %w", err)
		}
		if _, err := ParseClock(c.Run.BusinessHours.End); err != nil {
			return fmt.Errorf("invalid business_hours.end: %w", err)
		}
		if _, err := time.LoadLocation(c.Run.BusinessHours.Timezone); err != nil {
			return fmt.Errorf("invalid business_hours.timezone: %w", err)
		}
	}
	return nil
}

// ParseClock parses an "HH:MM" wall-clock string into minutes past midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// InWindow reports whether the given time falls inside the business-hours
// window. Always true when the window is disabled.
func (b BusinessHoursConfig) InWindow(now time.Time) (bool, error) {
	if !b.Enabled {
		return true, nil
	}
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return false, fmt.Errorf("invalid timezone: %w", err)
	}
	start, err := ParseClock(b.Start)
	if err != nil {
		return false, err
	}
	end, err := ParseClock(b.End)
	if err != nil {
		return false, err
	}
	local := now.In(loc)
	minutes := local.Hour()*60 + local.Minute()
	return minutes >= start && minutes <= end, nil
}
