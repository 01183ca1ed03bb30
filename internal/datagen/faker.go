//-------------------------------------------------------------------------
//
// riskgen - synthetic financing risk data generator
//
// Portions copyright (c) 2025 - 2026, FO Data Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package datagen provides fake data generation utilities.
package datagen

import (
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

// Faker provides fake data generation using gofakeit.
type Faker struct {
	faker *gofakeit.Faker
}

// NewFaker creates a new Faker with a random seed.
func NewFaker() *Faker {
	return &Faker{
		faker: gofakeit.New(uint64(time.Now().UnixNano())),
	}
}

// NewFakerWithSeed creates a new Faker with a specific seed for reproducibility.
func NewFakerWithSeed(seed uint64) *Faker {
	return &Faker{
		faker: gofakeit.New(seed),
	}
}

// Company generates a random company name.
func (f *Faker) Company() string {
	return f.faker.Company()
}

// Name generates a random full name.
func (f *Faker) Name() string {
	return f.faker.Name()
}

// CountryAbr generates a random 2-letter ISO country code.
func (f *Faker) CountryAbr() string {
	return f.faker.CountryAbr()
}

// UUID generates a random UUID.
func (f *Faker) UUID() string {
	return f.faker.UUID()
}

// Int generates a random integer between min and max (inclusive).
func (f *Faker) Int(min, max int) int {
	return f.faker.IntRange(min, max)
}

// Int64 generates a random int64 between min and max (inclusive).
func (f *Faker) Int64(min, max int64) int64 {
	return int64(f.faker.IntRange(int(min), int(max)))
}

// Float64 generates a random float64 between min and max.
func (f *Faker) Float64(min, max float64) float64 {
	return f.faker.Float64Range(min, max)
}

// Bool generates a random boolean.
func (f *Faker) Bool() bool {
	return f.faker.Bool()
}

// Date generates a random date within a range.
func (f *Faker) Date(start, end time.Time) time.Time {
	return f.faker.DateRange(start, end)
}

// PastDate generates a random date within the last year.
func (f *Faker) PastDate() time.Time {
	return f.faker.DateRange(time.Now().AddDate(-1, 0, 0), time.Now())
}

// FutureDate generates a random date up to five years out.
func (f *Faker) FutureDate() time.Time {
	return f.faker.DateRange(time.Now(), time.Now().AddDate(5, 0, 0))
}

// LetterN generates a random string of letters of length n.
func (f *Faker) LetterN(n int) string {
	return f.faker.LetterN(uint(n))
}

// DigitN generates a random string of digits of length n.
func (f *Faker) DigitN(n int) string {
	return f.faker.DigitN(uint(n))
}

// Lexify replaces '?' runes in the pattern with random letters.
func (f *Faker) Lexify(pattern string) string {
	return f.faker.Lexify(pattern)
}

// Numerify replaces '#' runes in the pattern with random digits.
func (f *Faker) Numerify(pattern string) string {
	return f.faker.Numerify(pattern)
}

// Decimal generates a random decimal between min and max rounded to the
// given scale. Used for monetary noise fields so generated values carry
// fixed-point precision from the start.
func (f *Faker) Decimal(min, max float64, scale int32) decimal.Decimal {
	return decimal.NewFromFloat(f.faker.Float64Range(min, max)).Round(scale)
}

// BookCode generates a synthetic trading book code like "XQRT042".
func (f *Faker) BookCode() string {
	return strings.ToUpper(f.faker.Lexify("????")) + f.faker.Numerify("###")
}

// Choose returns a random element from the given slice.
func Choose[T any](f *Faker, items []T) T {
	if len(items) == 0 {
		var zero T
		return zero
	}
	return items[f.Int(0, len(items)-1)]
}
