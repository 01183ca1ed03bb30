//-------------------------------------------------------------------------
//
// riskgen - synthetic financing risk data generator
//
// Portions copyright (c) 2025 - 2026, FO Data Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package pipeline runs the versioned risk-snapshot pipeline: one job per
// run, one monotonically increasing snapshot version per snapshot id.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fodata/riskgen/internal/logging"
	"github.com/fodata/riskgen/internal/model"
)

// JobStore is the persistence surface the ledger needs.
type JobStore interface {
	MaxSnapshotVersion(ctx context.Context, snapshotID string) (uint64, bool, error)
	InsertJob(ctx context.Context, job model.Job) error
}

// Ledger assigns snapshot versions and records job lifecycle transitions.
// Version assignment is serialized: the max-version read and the job insert
// happen under one lock, so concurrent runs in the same process can never
// claim the same version.
type Ledger struct {
	store   JobStore
	jobType string

	// versionFallback restores the legacy behavior of treating a failed
	// version lookup as an empty ledger and starting at version 0. Off by
	// default: a lookup failure fails the run instead of silently
	// re-issuing version 0 over existing data.
	versionFallback bool

	mu  sync.Mutex
	now func() time.Time
}

// NewLedger creates a job ledger over the given store.
func NewLedger(store JobStore, jobType string, versionFallback bool) *Ledger {
	return &Ledger{
		store:           store,
		jobType:         jobType,
		versionFallback: versionFallback,
		now:             time.Now,
	}
}

// CreateJob registers a new RUNNING job for the snapshot, assigning the next
// snapshot version: 0 for a fresh snapshot id, max+1 otherwise.
func (l *Ledger) CreateJob(ctx context.Context, snapshotID string) (model.Job, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	max, found, err := l.store.MaxSnapshotVersion(ctx, snapshotID)
	if err != nil {
		if !l.versionFallback {
			return model.Job{}, fmt.Errorf("failed to resolve version for snapshot %s: %w", snapshotID, err)
		}
		logging.Warn().Err(err).Str("snapshot", snapshotID).
			Msg("Version lookup failed, falling back to version 0")
		max, found = 0, false
	}

	var next uint64
	if found {
		next = max + 1
	}

	job := model.Job{
		ID:              uuid.NewString(),
		SnapshotID:      snapshotID,
		SnapshotVersion: next,
		JobType:         l.jobType,
		Status:          model.JobRunning,
		CreatedAt:       l.now().UTC(),
	}
	if err := l.store.InsertJob(ctx, job); err != nil {
		return model.Job{}, fmt.Errorf("failed to record job for snapshot %s: %w", snapshotID, err)
	}

	logging.Info().
		Str("job", job.ID).
		Str("snapshot", job.SnapshotID).
		Uint64("version", job.SnapshotVersion).
		Msg("Job started")
	return job, nil
}

// CompleteJob marks the job COMPLETED and persists the transition.
func (l *Ledger) CompleteJob(ctx context.Context, job *model.Job) error {
	job.Complete(l.now().UTC())
	if err := l.store.InsertJob(ctx, *job); err != nil {
		return fmt.Errorf("failed to record completion of job %s: %w", job.ID, err)
	}
	return nil
}

// FailJob marks the job FAILED and persists the transition.
func (l *Ledger) FailJob(ctx context.Context, job *model.Job) error {
	job.Fail(l.now().UTC())
	if err := l.store.InsertJob(ctx, *job); err != nil {
		return fmt.Errorf("failed to record failure of job %s: %w", job.ID, err)
	}
	return nil
}
