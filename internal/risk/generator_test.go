package risk

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fodata/riskgen/internal/model"
)

func testTrade(id string, notional, spread string) model.Trade {
	return model.Trade{
		ID:              id,
		Counterparty:    "cp-1",
		Instrument:      "in-1",
		Book:            "XQRT042",
		TradeDate:       time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		MaturityDate:    time.Now().AddDate(2, 0, 0),
		NotionalAmount:  decimal.RequireFromString(notional),
		Currency:        "USD",
		FinancingSpread: decimal.RequireFromString(spread),
	}
}

// inTolerance reports whether a and b differ by less than eps.
func inTolerance(a, b decimal.Decimal, eps string) bool {
	return a.Sub(b).Abs().LessThan(decimal.RequireFromString(eps))
}

func TestGenerateDerivedFields(t *testing.T) {
	g := NewGeneratorWithSeed(42)
	trade := testTrade("t-1", "1000000.00", "0.01")

	records, err := g.Generate(context.Background(), []model.Trade{trade}, "LIVE20260831", 3)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	r := records[0]

	if r.ID != "t-1" || r.SnapshotID != "LIVE20260831" || r.SnapshotVersion != 3 {
		t.Errorf("identity = (%s, %s, %d), want (t-1, LIVE20260831, 3)",
			r.ID, r.SnapshotID, r.SnapshotVersion)
	}

	// spread * notional / 365 = 10000/365 = 27.397260...
	want := decimal.RequireFromString("27.39726")
	if !inTolerance(r.AccrualDaily, want, "0.001") {
		t.Errorf("AccrualDaily = %s, want ~%s", r.AccrualDaily, want)
	}

	// ead = notional * 0.4
	if !r.EAD.Equal(decimal.RequireFromString("400000")) {
		t.Errorf("EAD = %s, want 400000", r.EAD)
	}

	// Past and projected accruals scale the daily accrual by 90 and 150 days.
	if !inTolerance(r.AccrualPast, r.AccrualDaily.Mul(decimal.NewFromInt(90)), "0.01") {
		t.Errorf("AccrualPast = %s, want ~%s", r.AccrualPast, r.AccrualDaily.Mul(decimal.NewFromInt(90)))
	}
	if !inTolerance(r.AccrualProjected, r.AccrualDaily.Mul(decimal.NewFromInt(150)), "0.01") {
		t.Errorf("AccrualProjected = %s, want ~%s", r.AccrualProjected, r.AccrualDaily.Mul(decimal.NewFromInt(150)))
	}

	// Funding notional is the notional converted at the record's own FX spot.
	if !inTolerance(r.NotionalFunding, r.NotionalAmount.Mul(r.FxSpot), "0.01") {
		t.Errorf("NotionalFunding = %s, want ~%s", r.NotionalFunding, r.NotionalAmount.Mul(r.FxSpot))
	}

	if !r.NotionalAmount.Equal(trade.NotionalAmount) {
		t.Errorf("NotionalAmount = %s, want %s", r.NotionalAmount, trade.NotionalAmount)
	}
	if !r.Spread.Equal(trade.FinancingSpread) {
		t.Errorf("Spread = %s, want %s", r.Spread, trade.FinancingSpread)
	}
}

func TestGenerateNoiseFieldRanges(t *testing.T) {
	g := NewGeneratorWithSeed(7)
	batch := []model.Trade{
		testTrade("t-1", "5000000.00", "0.0025"),
		testTrade("t-2", "25000000.00", "0.0400"),
		testTrade("t-3", "99000000.00", "0.0001"),
	}

	records, err := g.Generate(context.Background(), batch, "LIVE20260831", 0)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	for _, r := range records {
		if r.FxSpot.LessThan(decimal.RequireFromString("0.5")) ||
			r.FxSpot.GreaterThan(decimal.RequireFromString("2.0")) {
			t.Errorf("record %s: FxSpot = %s outside [0.5, 2.0]", r.ID, r.FxSpot)
		}
		if r.CashOut.IsNegative() || r.CashOut.GreaterThan(r.NotionalAmount) {
			t.Errorf("record %s: CashOut = %s outside [0, notional]", r.ID, r.CashOut)
		}
		if !r.Margin.Equal(r.MarginOis.Add(r.MarginFixed).Add(r.MarginFloat)) {
			t.Errorf("record %s: Margin = %s, want sum of components", r.ID, r.Margin)
		}
		if r.DTM <= 0 {
			t.Errorf("record %s: DTM = %d, want positive for future maturity", r.ID, r.DTM)
		}
		if r.Side != "BUY" && r.Side != "SELL" {
			t.Errorf("record %s: Side = %q", r.ID, r.Side)
		}
		if r.CalculatedAt.IsZero() || r.AsOfDate.IsZero() {
			t.Errorf("record %s: missing timestamps", r.ID)
		}
	}
}

func TestGenerateRejectsBadTrades(t *testing.T) {
	g := NewGeneratorWithSeed(1)
	ctx := context.Background()

	tests := []struct {
		name  string
		batch []model.Trade
	}{
		{
			name:  "missing id",
			batch: []model.Trade{testTrade("t-1", "1000000", "0.01"), testTrade("", "1000000", "0.01")},
		},
		{
			name:  "negative notional",
			batch: []model.Trade{testTrade("t-1", "-5", "0.01")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := g.Generate(ctx, tt.batch, "LIVE20260831", 0)
			if err == nil {
				t.Fatal("Generate() error = nil, want failure")
			}
			if records != nil {
				t.Errorf("records = %v, want nil on failure", records)
			}
		})
	}
}

func TestGenerateEmptyBatch(t *testing.T) {
	g := NewGenerator()
	records, err := g.Generate(context.Background(), nil, "LIVE20260831", 0)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %d, want 0", len(records))
	}
}
