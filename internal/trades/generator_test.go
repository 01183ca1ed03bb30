package trades

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fodata/riskgen/internal/refdata"
	"github.com/fodata/riskgen/internal/store"
)

var testPools = Pools{
	Books:          []string{"XQRT042", "PLMN001"},
	Counterparties: []string{"cp-1", "cp-2", "cp-3"},
	Instruments:    []string{"in-1", "in-2"},
}

func TestGenerate(t *testing.T) {
	g := NewGeneratorWithSeed(42)
	batch, err := g.Generate(50, testPools)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(batch) != 50 {
		t.Fatalf("Generate(50) = %d trades", len(batch))
	}

	minNotional := decimal.NewFromInt(1_000_000)
	maxNotional := decimal.NewFromInt(100_000_000)
	minSpread := decimal.RequireFromString("0.0001")
	maxSpread := decimal.RequireFromString("0.05")

	books := map[string]bool{"XQRT042": true, "PLMN001": true}
	seen := make(map[string]bool, len(batch))
	for _, tr := range batch {
		if tr.ID == "" {
			t.Error("trade has no id")
		}
		if seen[tr.ID] {
			t.Errorf("duplicate trade id %s", tr.ID)
		}
		seen[tr.ID] = true

		if !books[tr.Book] {
			t.Errorf("book %q not from pool", tr.Book)
		}
		if tr.NotionalAmount.LessThan(minNotional) || tr.NotionalAmount.GreaterThan(maxNotional) {
			t.Errorf("notional %s outside [1M, 100M]", tr.NotionalAmount)
		}
		if tr.FinancingSpread.LessThan(minSpread) || tr.FinancingSpread.GreaterThan(maxSpread) {
			t.Errorf("spread %s outside [0.0001, 0.05]", tr.FinancingSpread)
		}
		if !tr.MaturityDate.After(tr.TradeDate) {
			t.Errorf("trade %s matures %s before trade date %s", tr.ID, tr.MaturityDate, tr.TradeDate)
		}
	}
}

func TestGenerateRequiresPools(t *testing.T) {
	g := NewGeneratorWithSeed(1)
	tests := []struct {
		name  string
		pools Pools
	}{
		{"no books", Pools{Counterparties: []string{"c"}, Instruments: []string{"i"}}},
		{"no counterparties", Pools{Books: []string{"b"}, Instruments: []string{"i"}}},
		{"no instruments", Pools{Books: []string{"b"}, Counterparties: []string{"c"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := g.Generate(10, tt.pools); err == nil {
				t.Error("Generate() error = nil, want empty-pool failure")
			}
		})
	}
}

func TestSeed(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	if err := refdata.NewGeneratorWithSeed(7).Seed(ctx, st, 5, 10, 10); err != nil {
		t.Fatalf("refdata Seed() error = %v", err)
	}
	if err := NewGeneratorWithSeed(7).Seed(ctx, st, 100); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	stored, err := st.FetchTrades(ctx)
	if err != nil {
		t.Fatalf("FetchTrades() error = %v", err)
	}
	if len(stored) != 100 {
		t.Errorf("stored trades = %d, want 100", len(stored))
	}
}

func TestSeedWithoutReferenceData(t *testing.T) {
	st := store.NewMemoryStore()
	if err := NewGeneratorWithSeed(7).Seed(context.Background(), st, 10); err == nil {
		t.Error("Seed() error = nil, want failure without reference data")
	}
}
