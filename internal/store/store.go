//-------------------------------------------------------------------------
//
// riskgen - synthetic financing risk data generator
//
// Portions copyright (c) 2025 - 2026, FO Data Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package store defines the persistence interface for riskgen.
// Implementations include ClickHouse (the analytical column store) and
// in-memory (for testing). Tables use replace-by-key semantics: re-inserting
// a row under an existing key supersedes the earlier write, which is how job
// status transitions and risk-record versioning are persisted.
package store

import (
	"context"

	"github.com/fodata/riskgen/internal/model"
)

// Store is the persistence interface. Handles are injected into their
// consumers; nothing in this package holds a global connection.
type Store interface {
	// --- Jobs ---

	// MaxSnapshotVersion returns the highest snapshot version recorded for
	// the snapshot id. ok is false when no job exists for it yet.
	MaxSnapshotVersion(ctx context.Context, snapshotID string) (version uint64, ok bool, err error)

	// InsertJob appends a job row. Re-inserting with the same
	// (snapshotID, snapshotVersion) replaces the earlier row.
	InsertJob(ctx context.Context, job model.Job) error

	// Jobs returns all jobs for a snapshot id, latest write per version.
	Jobs(ctx context.Context, snapshotID string) ([]model.Job, error)

	// --- Reference data ---

	InsertBooks(ctx context.Context, books []model.Book) error
	InsertCounterparties(ctx context.Context, cps []model.Counterparty) error
	InsertInstruments(ctx context.Context, instruments []model.Instrument) error

	// Books returns the HMS book directory.
	Books(ctx context.Context) ([]model.Book, error)

	// CounterpartyIDs returns the ids of all reference counterparties.
	CounterpartyIDs(ctx context.Context) ([]string, error)

	// InstrumentIDs returns the ids of all reference instruments.
	InstrumentIDs(ctx context.Context) ([]string, error)

	// --- Trades ---

	InsertTrades(ctx context.Context, trades []model.Trade) error

	// FetchTrades returns the full current trade set.
	FetchTrades(ctx context.Context) ([]model.Trade, error)

	// --- Risk ---

	// InsertRiskRecords writes all records in one batch. Records are
	// immutable; supersession happens through higher snapshot versions.
	InsertRiskRecords(ctx context.Context, records []model.RiskRecord) error

	// RiskRecords returns every stored version of every record for a
	// snapshot id.
	RiskRecords(ctx context.Context, snapshotID string) ([]model.RiskRecord, error)

	// --- Aggregation ---

	// AggregateRows returns the book/desk/date rollup, deduplicated to the
	// latest contributing version per group.
	AggregateRows(ctx context.Context) ([]model.AggregateRow, error)

	// Close releases the underlying connection.
	Close() error
}
