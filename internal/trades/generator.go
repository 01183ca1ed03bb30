//-------------------------------------------------------------------------
//
// riskgen - synthetic financing risk data generator
//
// Portions copyright (c) 2025 - 2026, FO Data Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package trades generates synthetic total-return-swap trades against the
// reference universe.
package trades

import (
	"context"
	"fmt"
	"time"

	"github.com/fodata/riskgen/internal/datagen"
	"github.com/fodata/riskgen/internal/logging"
	"github.com/fodata/riskgen/internal/model"
)

var underlyingAssets = []string{"EQUITY", "BOND", "INDEX", "LOAN"}

var collateralTypes = []string{"ABS", "CLO", "GOVS", "LOAN", "CDO", "CDS", "MBS"}

var currencies = []string{"USD", "EUR", "GBP", "JPY"}

// Pools holds the reference identifiers trades are drawn against.
type Pools struct {
	Books          []string
	Counterparties []string
	Instruments    []string
}

// Store is the subset of the persistence interface the seeder needs.
type Store interface {
	Books(ctx context.Context) ([]model.Book, error)
	CounterpartyIDs(ctx context.Context) ([]string, error)
	InstrumentIDs(ctx context.Context) ([]string, error)
	InsertTrades(ctx context.Context, trades []model.Trade) error
}

// Generator produces synthetic trades.
type Generator struct {
	faker *datagen.Faker
}

// NewGenerator creates a trade generator with a random seed.
func NewGenerator() *Generator {
	return &Generator{faker: datagen.NewFaker()}
}

// NewGeneratorWithSeed creates a reproducible trade generator.
func NewGeneratorWithSeed(seed uint64) *Generator {
	return &Generator{faker: datagen.NewFakerWithSeed(seed)}
}

// Generate produces n trades drawn from the given reference pools.
func (g *Generator) Generate(n int, pools Pools) ([]model.Trade, error) {
	if len(pools.Books) == 0 || len(pools.Counterparties) == 0 || len(pools.Instruments) == 0 {
		return nil, fmt.Errorf("reference pools are empty; run init first")
	}

	now := time.Now()
	out := make([]model.Trade, 0, n)
	for i := 0; i < n; i++ {
		tradeDate := g.faker.PastDate()
		out = append(out, model.Trade{
			ID:              g.faker.UUID(),
			Counterparty:    datagen.Choose(g.faker, pools.Counterparties),
			Instrument:      datagen.Choose(g.faker, pools.Instruments),
			Book:            datagen.Choose(g.faker, pools.Books),
			TradeDate:       tradeDate,
			MaturityDate:    tradeDate.AddDate(0, g.faker.Int(3, 60), 0),
			UnderlyingAsset: datagen.Choose(g.faker, underlyingAssets),
			NotionalAmount:  g.faker.Decimal(1_000_000, 100_000_000, 2),
			Currency:        datagen.Choose(g.faker, currencies),
			FinancingSpread: g.faker.Decimal(0.0001, 0.05, 4),
			InitialPrice:    g.faker.Decimal(50, 150, 6),
			CollateralType:  datagen.Choose(g.faker, collateralTypes),
			EventID:         uint64(g.faker.Int64(1, 1_000_000_000)),
			UpdatedAt:       now,
		})
	}
	return out, nil
}

// Seed loads the reference pools from the store, generates n trades, and
// persists them.
func (g *Generator) Seed(ctx context.Context, st Store, n int) error {
	books, err := st.Books(ctx)
	if err != nil {
		return fmt.Errorf("failed to load books: %w", err)
	}
	bookCodes := make([]string, 0, len(books))
	for _, b := range books {
		bookCodes = append(bookCodes, b.Book)
	}

	counterparties, err := st.CounterpartyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to load counterparties: %w", err)
	}
	instruments, err := st.InstrumentIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to load instruments: %w", err)
	}

	logging.Info().Int("count", n).Msg("Generating trades")
	generated, err := g.Generate(n, Pools{
		Books:          bookCodes,
		Counterparties: counterparties,
		Instruments:    instruments,
	})
	if err != nil {
		return err
	}
	if err := st.InsertTrades(ctx, generated); err != nil {
		return fmt.Errorf("failed to insert trades: %w", err)
	}
	return nil
}
