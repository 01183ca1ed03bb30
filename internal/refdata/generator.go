//-------------------------------------------------------------------------
//
// riskgen - synthetic financing risk data generator
//
// Portions copyright (c) 2025 - 2026, FO Data Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package refdata generates the synthetic reference universe: HMS books,
// counterparties, and instruments.
package refdata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fodata/riskgen/internal/datagen"
	"github.com/fodata/riskgen/internal/logging"
	"github.com/fodata/riskgen/internal/model"
)

// Reference pools.
var traders = []string{
	"John Smith", "Emma Johnson", "Michael Brown", "Sarah Davis", "Robert Wilson",
}

var desks = []string{
	"Flow Credit", "Structured Index", "Prime Broker", "Private Credit", "Commodities",
}

var sites = []string{"LDN", "NYC", "HKG", "SGP", "FRA"}

var cbSectors = []string{
	"Banks", "Hedge Fund", "Insurance", "Pension Fund", "Asset Manager", "Corporate",
}

var ratingBuckets = []string{"Aaa", "Aa2", "A1", "Baa2", "Ba3", "B1", "Caa1"}

var gdpRatings = []string{"AAA", "AA", "A+", "A", "BBB", "BB-", "B", "CCC"}

var regions = []string{"North America", "Europe", "Asia", "Latin America", "Africa"}

var sectors = []string{"Technology", "Finance", "Healthcare", "Energy", "Consumer Goods"}

var industries = []string{"Software", "Banks", "Pharmaceuticals", "Oil & Gas", "Retail"}

var couponFrequencies = []string{"Annual", "Semi-Annual", "Quarterly"}

var currencies = []string{"USD", "EUR", "GBP", "JPY"}

// Store is the subset of the persistence interface the seeder needs.
type Store interface {
	InsertBooks(ctx context.Context, books []model.Book) error
	InsertCounterparties(ctx context.Context, cps []model.Counterparty) error
	InsertInstruments(ctx context.Context, instruments []model.Instrument) error
}

// Generator produces synthetic reference data.
type Generator struct {
	faker *datagen.Faker
}

// NewGenerator creates a reference data generator with a random seed.
func NewGenerator() *Generator {
	return &Generator{faker: datagen.NewFaker()}
}

// NewGeneratorWithSeed creates a reproducible reference data generator.
func NewGeneratorWithSeed(seed uint64) *Generator {
	return &Generator{faker: datagen.NewFakerWithSeed(seed)}
}

// Books generates n HMS book rows.
func (g *Generator) Books(n int) []model.Book {
	now := time.Now()
	books := make([]model.Book, 0, n)
	for i := 0; i < n; i++ {
		books = append(books, model.Book{
			ID:        g.faker.UUID(),
			Book:      g.faker.BookCode(),
			Trader:    datagen.Choose(g.faker, traders),
			Desk:      datagen.Choose(g.faker, desks),
			UpdatedAt: now,
		})
	}
	return books
}

// Counterparties generates n counterparty rows.
func (g *Generator) Counterparties(n int) []model.Counterparty {
	cps := make([]model.Counterparty, 0, n)
	for i := 0; i < n; i++ {
		treat4 := strings.ToUpper(g.faker.LetterN(4))
		cps = append(cps, model.Counterparty{
			ID:                        g.faker.UUID(),
			Site:                      datagen.Choose(g.faker, sites),
			Treat4Parent:              treat4,
			Treat7:                    treat4 + strings.ToUpper(g.faker.LetterN(3)),
			CountryOfIncorporation:    g.faker.CountryAbr(),
			CountryOfPrimaryOperation: g.faker.CountryAbr(),
			CustomerName:              g.faker.Company(),
			LEI:                       strings.ToUpper(g.faker.LetterN(4)) + g.faker.DigitN(14) + g.faker.DigitN(2),
			RiskRatingCRR:             fmt.Sprintf("%d.%d", g.faker.Int(1, 6), g.faker.Int(0, 9)),
			RiskRatingBucket:          datagen.Choose(g.faker, ratingBuckets),
			MasterGroup:               g.faker.Company(),
			CbSector:                  datagen.Choose(g.faker, cbSectors),
		})
	}
	return cps
}

// Instruments generates n instrument rows.
func (g *Generator) Instruments(n int) []model.Instrument {
	now := time.Now()
	instruments := make([]model.Instrument, 0, n)
	for i := 0; i < n; i++ {
		instruments = append(instruments, model.Instrument{
			ID:              g.faker.UUID(),
			ISIN:            g.faker.CountryAbr() + g.faker.DigitN(10),
			CUSIP:           strings.ToUpper(g.faker.LetterN(3)) + g.faker.DigitN(6),
			SEDOL:           g.faker.DigitN(7),
			Name:            g.faker.Company() + " " + datagen.Choose(g.faker, couponFrequencies) + " Note",
			Issuer:          g.faker.Company(),
			Region:          datagen.Choose(g.faker, regions),
			Country:         g.faker.CountryAbr(),
			Sector:          datagen.Choose(g.faker, sectors),
			Industry:        datagen.Choose(g.faker, industries),
			Currency:        datagen.Choose(g.faker, currencies),
			IssueDate:       g.faker.PastDate(),
			MaturityDate:    g.faker.FutureDate(),
			Coupon:          g.faker.Decimal(0.5, 9.5, 2),
			CouponFrequency: datagen.Choose(g.faker, couponFrequencies),
			YieldToMaturity: g.faker.Decimal(0.5, 12, 2),
			Price:           g.faker.Decimal(50, 150, 2),
			FaceValue:       g.faker.Decimal(100, 10000, 2),
			Rating:          datagen.Choose(g.faker, gdpRatings),
			IsCallable:      g.faker.Bool(),
			IsPuttable:      g.faker.Bool(),
			IsConvertible:   g.faker.Bool(),
			UpdatedAt:       now,
		})
	}
	return instruments
}

// Seed generates and persists the full reference universe.
func (g *Generator) Seed(ctx context.Context, st Store, books, counterparties, instruments int) error {
	logging.Info().Int("count", books).Msg("Generating HMS books")
	if err := st.InsertBooks(ctx, g.Books(books)); err != nil {
		return fmt.Errorf("failed to insert books: %w", err)
	}

	logging.Info().Int("count", counterparties).Msg("Generating counterparties")
	if err := st.InsertCounterparties(ctx, g.Counterparties(counterparties)); err != nil {
		return fmt.Errorf("failed to insert counterparties: %w", err)
	}

	logging.Info().Int("count", instruments).Msg("Generating instruments")
	if err := st.InsertInstruments(ctx, g.Instruments(instruments)); err != nil {
		return fmt.Errorf("failed to insert instruments: %w", err)
	}

	return nil
}
