package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/fodata/riskgen/internal/model"
	"github.com/fodata/riskgen/internal/pipeline"
	"github.com/fodata/riskgen/internal/refdata"
	"github.com/fodata/riskgen/internal/risk"
	"github.com/fodata/riskgen/internal/store"
	"github.com/fodata/riskgen/internal/testutil"
	"github.com/fodata/riskgen/internal/trades"
)

// TestClickHousePipeline exercises the full pipeline against a live
// ClickHouse instance: schema creation, seeding, two versioned runs, and
// the rollup views. Skipped unless ClickHouse is reachable.
func TestClickHousePipeline(t *testing.T) {
	connStr := testutil.SkipIfNoClickHouse(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	st, err := store.ConnectClickHouse(ctx, connStr)
	if err != nil {
		t.Fatalf("ConnectClickHouse() error = %v", err)
	}
	defer st.Close()

	if err := st.DropSchema(ctx); err != nil {
		t.Fatalf("DropSchema() error = %v", err)
	}
	if err := st.CreateSchema(ctx); err != nil {
		t.Fatalf("CreateSchema() error = %v", err)
	}
	t.Cleanup(func() {
		_ = st.DropSchema(context.Background())
	})

	if err := refdata.NewGeneratorWithSeed(42).Seed(ctx, st, 10, 20, 20); err != nil {
		t.Fatalf("refdata Seed() error = %v", err)
	}
	if err := trades.NewGeneratorWithSeed(42).Seed(ctx, st, 50); err != nil {
		t.Fatalf("trades Seed() error = %v", err)
	}

	ledger := pipeline.NewLedger(st, "INTRADAY", false)
	driver := pipeline.NewDriver(ledger, st, risk.NewGeneratorWithSeed(42), pipeline.NewSink(st))

	first, err := driver.RunOnce(ctx)
	if err != nil {
		t.Fatalf("first RunOnce() error = %v", err)
	}
	if first.SnapshotVersion != 0 {
		t.Errorf("first version = %d, want 0", first.SnapshotVersion)
	}

	second, err := driver.RunOnce(ctx)
	if err != nil {
		t.Fatalf("second RunOnce() error = %v", err)
	}
	if second.SnapshotVersion != 1 {
		t.Errorf("second version = %d, want 1", second.SnapshotVersion)
	}

	jobs, err := st.Jobs(ctx, first.SnapshotID)
	if err != nil {
		t.Fatalf("Jobs() error = %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("jobs = %d, want 2", len(jobs))
	}
	for _, j := range jobs {
		if j.Status != model.JobCompleted {
			t.Errorf("job version %d status = %s, want %s",
				j.SnapshotVersion, j.Status, model.JobCompleted)
		}
	}

	records, err := st.RiskRecords(ctx, first.SnapshotID)
	if err != nil {
		t.Fatalf("RiskRecords() error = %v", err)
	}
	if len(records) != 100 {
		t.Errorf("risk records = %d, want 100 (50 trades x 2 versions)", len(records))
	}

	rows, err := st.AggregateRows(ctx)
	if err != nil {
		t.Fatalf("AggregateRows() error = %v", err)
	}
	if len(rows) == 0 {
		t.Fatal("AggregateRows() returned no rows")
	}
	for _, r := range rows {
		if r.Version != 1 {
			t.Errorf("rollup group (%s, %s, %s) version = %d, want 1",
				r.Desk, r.Trader, r.Book, r.Version)
		}
		if r.TotalNotionalAmount.IsNegative() {
			t.Errorf("rollup group (%s, %s, %s) has negative notional %s",
				r.Desk, r.Trader, r.Book, r.TotalNotionalAmount)
		}
	}
}
