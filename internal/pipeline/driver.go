//-------------------------------------------------------------------------
//
// riskgen - synthetic financing risk data generator
//
// Portions copyright (c) 2025 - 2026, FO Data Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/fodata/riskgen/internal/config"
	"github.com/fodata/riskgen/internal/logging"
	"github.com/fodata/riskgen/internal/model"
)

// TradeSource supplies the trade population for a run.
type TradeSource interface {
	FetchTrades(ctx context.Context) ([]model.Trade, error)
}

// RiskGenerator derives a full risk batch for one snapshot version.
type RiskGenerator interface {
	Generate(ctx context.Context, trades []model.Trade, snapshotID string, version uint64) ([]model.RiskRecord, error)
}

// SnapshotID returns the live snapshot id for the given day, e.g.
// "LIVE20260831".
func SnapshotID(t time.Time) string {
	return "LIVE" + t.Format("20060102")
}

// Driver orchestrates one pipeline run: claim a version, fetch trades,
// derive risk, persist the batch, close the job.
type Driver struct {
	ledger    *Ledger
	source    TradeSource
	generator RiskGenerator
	sink      *Sink
	now       func() time.Time
}

// NewDriver wires a pipeline driver from its parts.
func NewDriver(ledger *Ledger, source TradeSource, generator RiskGenerator, sink *Sink) *Driver {
	return &Driver{
		ledger:    ledger,
		source:    source,
		generator: generator,
		sink:      sink,
		now:       time.Now,
	}
}

// RunOnce executes a single pipeline run against today's snapshot. Any
// failure after the job is registered marks it FAILED; no risk rows from a
// failed run are persisted.
func (d *Driver) RunOnce(ctx context.Context) (model.Job, error) {
	start := d.now()
	snapshotID := SnapshotID(start)

	job, err := d.ledger.CreateJob(ctx, snapshotID)
	if err != nil {
		return model.Job{}, err
	}

	trades, err := d.source.FetchTrades(ctx)
	if err != nil {
		return job, d.fail(ctx, &job, fmt.Errorf("failed to fetch trades: %w", err))
	}

	records, err := d.generator.Generate(ctx, trades, job.SnapshotID, job.SnapshotVersion)
	if err != nil {
		return job, d.fail(ctx, &job, fmt.Errorf("risk generation failed: %w", err))
	}

	if err := d.sink.Insert(ctx, records); err != nil {
		return job, d.fail(ctx, &job, err)
	}

	if err := d.ledger.CompleteJob(ctx, &job); err != nil {
		return job, err
	}

	logging.Info().
		Str("job", job.ID).
		Str("snapshot", job.SnapshotID).
		Uint64("version", job.SnapshotVersion).
		Int("records", len(records)).
		Dur("elapsed", d.now().Sub(start)).
		Msg("Run completed")
	return job, nil
}

// fail records the FAILED transition and returns the original cause. A
// failure of the status write itself is logged and attached to the cause.
func (d *Driver) fail(ctx context.Context, job *model.Job, cause error) error {
	if err := d.ledger.FailJob(ctx, job); err != nil {
		logging.Error().Err(err).Str("job", job.ID).Msg("Failed to record job failure")
		return fmt.Errorf("%w (additionally: %v)", cause, err)
	}
	logging.Error().Err(cause).
		Str("job", job.ID).
		Str("snapshot", job.SnapshotID).
		Uint64("version", job.SnapshotVersion).
		Msg("Run failed")
	return cause
}

// Run executes the pipeline on the given interval until the context is
// cancelled. Runs outside the business-hours window are skipped, and a
// failed run does not stop the loop.
func (d *Driver) Run(ctx context.Context, interval time.Duration, window config.BusinessHoursConfig) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		open, err := window.InWindow(d.now())
		if err != nil {
			return err
		}
		if open {
			if _, err := d.RunOnce(ctx); err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
		} else {
			logging.Debug().Msg("Outside business hours, skipping run")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
