//-------------------------------------------------------------------------
//
// riskgen - synthetic financing risk data generator
//
// Portions copyright (c) 2025 - 2026, FO Data Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for riskgen.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/fodata/riskgen/internal/config"
	"github.com/fodata/riskgen/internal/logging"
	"github.com/fodata/riskgen/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "riskgen",
		Short: "Synthetic financing risk data generator for ClickHouse",
		Long: `riskgen is a CLI tool that connects to ClickHouse, creates a
financing risk schema with a synthetic reference and trade universe, and
runs a versioned risk-snapshot pipeline against it.

Each pipeline run claims the next snapshot version for the day's snapshot,
derives one risk record per trade, and persists the batch together with a
job row tracking the run's outcome. Downstream views always resolve to the
latest completed version per record.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./riskgen.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"ClickHouse connection string")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(reportCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}
