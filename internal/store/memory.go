package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/fodata/riskgen/internal/aggregate"
	"github.com/fodata/riskgen/internal/model"
)

// MemoryStore implements Store with in-memory maps. Used for testing and
// development. It mirrors the replace-by-key semantics of the ClickHouse
// tables: jobs replace by (snapId, snapVersion), risk rows accumulate per
// version, and the rollup is computed from the latest version per identity.
type MemoryStore struct {
	mu             sync.RWMutex
	jobs           map[string]map[uint64]model.Job
	books          []model.Book
	counterparties []model.Counterparty
	instruments    []model.Instrument
	trades         []model.Trade
	risk           []model.RiskRecord

	riskInsertCalls int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		jobs: make(map[string]map[uint64]model.Job),
	}
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) MaxSnapshotVersion(_ context.Context, snapshotID string) (uint64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	versions, ok := s.jobs[snapshotID]
	if !ok || len(versions) == 0 {
		return 0, false, nil
	}
	var max uint64
	for v := range versions {
		if v > max {
			max = v
		}
	}
	return max, true, nil
}

func (s *MemoryStore) InsertJob(_ context.Context, job model.Job) error {
	if !job.Status.Valid() {
		return fmt.Errorf("invalid job status: %q", job.Status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	versions, ok := s.jobs[job.SnapshotID]
	if !ok {
		versions = make(map[uint64]model.Job)
		s.jobs[job.SnapshotID] = versions
	}
	versions[job.SnapshotVersion] = job
	return nil
}

func (s *MemoryStore) Jobs(_ context.Context, snapshotID string) ([]model.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	versions := s.jobs[snapshotID]
	out := make([]model.Job, 0, len(versions))
	for _, j := range versions {
		out = append(out, j)
	}
	// Ascending by version, matching the ClickHouse ordering.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].SnapshotVersion < out[j-1].SnapshotVersion; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out, nil
}

func (s *MemoryStore) InsertBooks(_ context.Context, books []model.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books = append(s.books, books...)
	return nil
}

func (s *MemoryStore) InsertCounterparties(_ context.Context, cps []model.Counterparty) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counterparties = append(s.counterparties, cps...)
	return nil
}

func (s *MemoryStore) InsertInstruments(_ context.Context, instruments []model.Instrument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instruments = append(s.instruments, instruments...)
	return nil
}

func (s *MemoryStore) Books(_ context.Context) ([]model.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Book, len(s.books))
	copy(out, s.books)
	return out, nil
}

func (s *MemoryStore) CounterpartyIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.counterparties))
	for _, cp := range s.counterparties {
		ids = append(ids, cp.ID)
	}
	return ids, nil
}

func (s *MemoryStore) InstrumentIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.instruments))
	for _, in := range s.instruments {
		ids = append(ids, in.ID)
	}
	return ids, nil
}

func (s *MemoryStore) InsertTrades(_ context.Context, trades []model.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trades = append(s.trades, trades...)
	return nil
}

func (s *MemoryStore) FetchTrades(_ context.Context) ([]model.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Trade, len(s.trades))
	copy(out, s.trades)
	return out, nil
}

func (s *MemoryStore) InsertRiskRecords(_ context.Context, records []model.RiskRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.riskInsertCalls++
	s.risk = append(s.risk, records...)
	return nil
}

func (s *MemoryStore) RiskRecords(_ context.Context, snapshotID string) ([]model.RiskRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.RiskRecord
	for _, r := range s.risk {
		if r.SnapshotID == snapshotID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryStore) AggregateRows(_ context.Context) ([]model.AggregateRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return aggregate.Rollup(s.risk, s.books), nil
}

// RiskInsertCalls reports how many batch risk inserts were issued.
func (s *MemoryStore) RiskInsertCalls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.riskInsertCalls
}
