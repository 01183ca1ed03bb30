//-------------------------------------------------------------------------
//
// riskgen - synthetic financing risk data generator
//
// Portions copyright (c) 2025 - 2026, FO Data Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package risk derives risk records from trades. Economic fields follow the
// trade deterministically; market noise fields are randomized per run.
package risk

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fodata/riskgen/internal/datagen"
	"github.com/fodata/riskgen/internal/model"
)

var sides = []string{"BUY", "SELL"}

var tenors = []string{"1M", "3M", "6M", "1Y", "2Y", "5Y"}

var models = []string{"STANDARD", "INTERNAL", "VENDOR"}

// Day-count and exposure constants for the derived fields.
var (
	daysInYear    = decimal.NewFromInt(365)
	pastDays      = decimal.NewFromInt(90)
	projectedDays = decimal.NewFromInt(150)
	eadFactor     = decimal.RequireFromString("0.4")
)

// Generator derives risk records from trades.
type Generator struct {
	faker *datagen.Faker
	now   func() time.Time
}

// NewGenerator creates a risk generator with a random seed.
func NewGenerator() *Generator {
	return &Generator{faker: datagen.NewFaker(), now: time.Now}
}

// NewGeneratorWithSeed creates a reproducible risk generator.
func NewGeneratorWithSeed(seed uint64) *Generator {
	return &Generator{faker: datagen.NewFakerWithSeed(seed), now: time.Now}
}

// Generate derives one risk record per trade, stamped with the given
// snapshot identity. It is all-or-nothing: a bad trade fails the whole
// batch and no partial slice is returned.
func (g *Generator) Generate(_ context.Context, batch []model.Trade, snapshotID string, version uint64) ([]model.RiskRecord, error) {
	now := g.now().UTC()
	asOfDate := now.Truncate(24 * time.Hour)

	records := make([]model.RiskRecord, 0, len(batch))
	for i, t := range batch {
		if t.ID == "" {
			return nil, fmt.Errorf("trade %d has no id", i)
		}
		if t.NotionalAmount.IsNegative() {
			return nil, fmt.Errorf("trade %s has negative notional %s", t.ID, t.NotionalAmount)
		}

		fxSpot := g.faker.Decimal(0.5, 2.0, 6)
		notional := t.NotionalAmount
		spread := t.FinancingSpread
		spreadNotional := spread.Mul(notional)

		marginOis := g.faker.Decimal(0, 50_000, 2)
		marginFixed := g.faker.Decimal(0, 50_000, 2)
		marginFloat := g.faker.Decimal(0, 50_000, 2)

		dtm := int64(time.Until(t.MaturityDate).Hours() / 24)
		if dtm < 0 {
			dtm = 0
		}

		records = append(records, model.RiskRecord{
			ID:              t.ID,
			SnapshotID:      snapshotID,
			SnapshotVersion: version,

			Status:       "LIVE",
			Book:         t.Book,
			Counterparty: t.Counterparty,
			InstrumentID: t.Instrument,
			Ccy:          t.Currency,
			Side:         datagen.Choose(g.faker, sides),
			Tenor:        datagen.Choose(g.faker, tenors),
			Model:        datagen.Choose(g.faker, models),
			DTM:          dtm,

			NotionalAmount:   notional,
			NotionalCcy:      notional,
			NotionalFunding:  notional.Mul(fxSpot).Round(2),
			CashOut:          g.faker.Decimal(0, notional.InexactFloat64(), 2),
			Spread:           spread,
			AccrualDaily:     spreadNotional.Div(daysInYear).Round(6),
			AccrualProjected: spreadNotional.Mul(projectedDays).Div(daysInYear).Round(6),
			AccrualPast:      spreadNotional.Mul(pastDays).Div(daysInYear).Round(6),
			EAD:              notional.Mul(eadFactor),
			FxSpot:           fxSpot,
			Haircut:          g.faker.Decimal(0, 0.15, 4).Mul(notional).Round(2),
			Margin:           marginOis.Add(marginFixed).Add(marginFloat),
			MarginOis:        marginOis,
			MarginFixed:      marginFixed,
			MarginFloat:      marginFloat,
			Mid:              g.faker.Decimal(90, 110, 2),

			CalculatedAt: now,
			AsOfDate:     asOfDate,
		})
	}
	return records, nil
}
