package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fodata/riskgen/internal/logging"
	"github.com/fodata/riskgen/internal/pipeline"
	"github.com/fodata/riskgen/internal/risk"
	"github.com/fodata/riskgen/internal/store"
)

var (
	runInterval        int
	runDuration        int
	runJobType         string
	runOnce            bool
	runVersionFallback bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the risk-snapshot pipeline",
	Long: `Run the risk-snapshot pipeline against an initialized database.
Each run claims the next snapshot version for today's snapshot, derives a
risk record for every trade, and persists the batch. The pipeline repeats
on the configured interval until interrupted with Ctrl+C or until the
duration expires.

Example:
  riskgen run --connection clickhouse://default@localhost:9000/default
  riskgen run --interval 10 --duration 30
  riskgen run --once`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&runInterval, "interval", 0,
		"seconds between pipeline runs")
	runCmd.Flags().IntVar(&runDuration, "duration", 0,
		"duration to run in minutes (0 = run indefinitely)")
	runCmd.Flags().StringVar(&runJobType, "job-type", "",
		"job type recorded on every run (e.g. INTRADAY, EOD)")
	runCmd.Flags().BoolVar(&runOnce, "once", false,
		"execute a single pipeline run and exit")
	runCmd.Flags().BoolVar(&runVersionFallback, "version-fallback", false,
		"fall back to snapshot version 0 when the version lookup fails")
}

func runRun(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if runInterval > 0 {
		cfg.Run.IntervalSeconds = runInterval
	}
	if runDuration > 0 {
		cfg.Run.Duration = runDuration
	}
	if runJobType != "" {
		cfg.Run.JobType = runJobType
	}
	if runVersionFallback {
		cfg.Run.VersionFallback = true
	}

	// Validate configuration
	if err := cfg.ValidateRun(); err != nil {
		return err
	}

	ctx := context.Background()
	st, err := store.ConnectClickHouse(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}
	defer st.Close()

	ledger := pipeline.NewLedger(st, cfg.Run.JobType, cfg.Run.VersionFallback)
	driver := pipeline.NewDriver(ledger, st, risk.NewGenerator(), pipeline.NewSink(st))

	if runOnce {
		_, err := driver.RunOnce(ctx)
		return err
	}

	durationMsg := "indefinitely"
	if cfg.Run.Duration > 0 {
		durationMsg = fmt.Sprintf("%d minutes", cfg.Run.Duration)
	}
	logging.Info().
		Int("interval_seconds", cfg.Run.IntervalSeconds).
		Str("job_type", cfg.Run.JobType).
		Str("duration", durationMsg).
		Msg("Starting pipeline")

	// Set up context with cancellation (and optional timeout)
	var cancel context.CancelFunc
	if cfg.Run.Duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Run.Duration)*time.Minute)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logging.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
	}()

	interval := time.Duration(cfg.Run.IntervalSeconds) * time.Second
	if err := driver.Run(ctx, interval, cfg.Run.BusinessHours); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logging.Info().Msg("Duration limit reached, stopping pipeline")
			return nil
		}
		if errors.Is(err, context.Canceled) {
			logging.Info().Msg("Pipeline stopped")
			return nil
		}
		return err
	}
	return nil
}
