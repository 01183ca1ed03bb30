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

	"github.com/fodata/riskgen/internal/model"
)

// RiskStore is the persistence surface the sink needs.
type RiskStore interface {
	InsertRiskRecords(ctx context.Context, records []model.RiskRecord) error
}

// Sink writes risk record batches. Every batch is a single insert so a
// failure persists nothing; an empty batch issues no insert at all.
type Sink struct {
	store RiskStore
}

// NewSink creates a risk sink over the given store.
func NewSink(store RiskStore) *Sink {
	return &Sink{store: store}
}

// Insert persists the batch, or does nothing when it is empty.
func (s *Sink) Insert(ctx context.Context, records []model.RiskRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := s.store.InsertRiskRecords(ctx, records); err != nil {
		return fmt.Errorf("failed to insert %d risk records: %w", len(records), err)
	}
	return nil
}
