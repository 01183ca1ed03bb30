package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fodata/riskgen/internal/pipeline"
	"github.com/fodata/riskgen/internal/store"
)

var reportSnapshot string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report job history and the latest risk rollup",
	Long: `Print the job ledger for a snapshot and the current desk/trader/book
rollup. The rollup reflects only the latest snapshot version per record.

Example:
  riskgen report
  riskgen report --snapshot LIVE20260830`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportSnapshot, "snapshot", "",
		"snapshot id to report on (default: today's)")
}

func runReport(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	snapshotID := reportSnapshot
	if snapshotID == "" {
		snapshotID = pipeline.SnapshotID(time.Now())
	}

	ctx := context.Background()
	st, err := store.ConnectClickHouse(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}
	defer st.Close()

	jobs, err := st.Jobs(ctx, snapshotID)
	if err != nil {
		return fmt.Errorf("failed to load jobs: %w", err)
	}

	cmd.Printf("Jobs for snapshot %s:\n", snapshotID)
	if len(jobs) == 0 {
		cmd.Println("  (none)")
	}
	for _, j := range jobs {
		completed := "-"
		if j.CompletedAt != nil {
			completed = j.CompletedAt.Format(time.RFC3339)
		}
		cmd.Printf("  version %-4d %-10s %-9s created %s completed %s\n",
			j.SnapshotVersion, j.JobType, j.Status,
			j.CreatedAt.Format(time.RFC3339), completed)
	}

	rows, err := st.AggregateRows(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rollup: %w", err)
	}

	cmd.Println()
	cmd.Println("Risk rollup (latest version per record):")
	if len(rows) == 0 {
		cmd.Println("  (empty)")
		return nil
	}
	cmd.Printf("  %-20s %-20s %-10s %-12s %18s %16s %16s\n",
		"DESK", "TRADER", "BOOK", "AS-OF", "NOTIONAL", "DAILY ACCRUAL", "EAD")
	for _, r := range rows {
		cmd.Printf("  %-20s %-20s %-10s %-12s %18s %16s %16s\n",
			r.Desk, r.Trader, r.Book, r.AsOfDate.Format("2006-01-02"),
			r.TotalNotionalAmount.StringFixed(2),
			r.TotalDailyAccrual.StringFixed(2),
			r.TotalEad.StringFixed(2))
	}
	return nil
}
