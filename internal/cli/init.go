package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fodata/riskgen/internal/logging"
	"github.com/fodata/riskgen/internal/refdata"
	"github.com/fodata/riskgen/internal/store"
	"github.com/fodata/riskgen/internal/trades"
)

var (
	initBooks          int
	initCounterparties int
	initInstruments    int
	initTrades         int
	initDropExisting   bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the schema and synthetic universe",
	Long: `Create the risk schema (reference tables, trades, risk facts, jobs,
and the aggregation views) and populate it with a synthetic reference and
trade universe. Run this once before 'run'.

Example:
  riskgen init --connection clickhouse://default@localhost:9000/default
  riskgen init --trades 20000 --drop-existing`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().IntVar(&initBooks, "books", 0,
		"number of HMS books to generate")
	initCmd.Flags().IntVar(&initCounterparties, "counterparties", 0,
		"number of counterparties to generate")
	initCmd.Flags().IntVar(&initInstruments, "instruments", 0,
		"number of instruments to generate")
	initCmd.Flags().IntVar(&initTrades, "trades", 0,
		"number of trades to generate")
	initCmd.Flags().BoolVar(&initDropExisting, "drop-existing", false,
		"drop existing tables before initializing")
}

func runInit(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if initBooks > 0 {
		cfg.Init.Books = initBooks
	}
	if initCounterparties > 0 {
		cfg.Init.Counterparties = initCounterparties
	}
	if initInstruments > 0 {
		cfg.Init.Instruments = initInstruments
	}
	if initTrades > 0 {
		cfg.Init.Trades = initTrades
	}
	if initDropExisting {
		cfg.Init.DropExisting = true
	}

	// Validate configuration
	if err := cfg.ValidateInit(); err != nil {
		return err
	}

	ctx := context.Background()
	st, err := store.ConnectClickHouse(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}
	defer st.Close()

	if cfg.Init.DropExisting {
		logging.Info().Msg("Dropping existing tables")
		if err := st.DropSchema(ctx); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
	}

	logging.Info().Msg("Creating schema")
	if err := st.CreateSchema(ctx); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := refdata.NewGenerator().Seed(ctx, st,
		cfg.Init.Books, cfg.Init.Counterparties, cfg.Init.Instruments); err != nil {
		return err
	}

	if err := trades.NewGenerator().Seed(ctx, st, cfg.Init.Trades); err != nil {
		return err
	}

	logging.Info().
		Int("books", cfg.Init.Books).
		Int("counterparties", cfg.Init.Counterparties).
		Int("instruments", cfg.Init.Instruments).
		Int("trades", cfg.Init.Trades).
		Msg("Initialization complete")
	return nil
}
