package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RiskRecord is one risk computation for a trade within a snapshot run.
// Identity is (ID, SnapshotID); successive runs supersede earlier records
// by writing a higher SnapshotVersion, never by updating in place.
type RiskRecord struct {
	ID              string // equals the source trade id
	SnapshotID      string
	SnapshotVersion uint64

	Status       string
	Book         string
	Counterparty string
	InstrumentID string
	Ccy          string
	Side         string
	Tenor        string
	Model        string
	DTM          int64 // days to maturity

	NotionalAmount   decimal.Decimal
	NotionalCcy      decimal.Decimal
	NotionalFunding  decimal.Decimal
	CashOut          decimal.Decimal
	Spread           decimal.Decimal
	AccrualDaily     decimal.Decimal
	AccrualProjected decimal.Decimal
	AccrualPast      decimal.Decimal
	EAD              decimal.Decimal
	FxSpot           decimal.Decimal
	Haircut          decimal.Decimal
	Margin           decimal.Decimal
	MarginOis        decimal.Decimal
	MarginFixed      decimal.Decimal
	MarginFloat      decimal.Decimal
	Mid              decimal.Decimal

	CalculatedAt time.Time
	AsOfDate     time.Time
}

// Key identifies a risk record across versions.
type RiskKey struct {
	ID         string
	SnapshotID string
}

// Key returns the version-independent identity of the record.
func (r *RiskRecord) Key() RiskKey {
	return RiskKey{ID: r.ID, SnapshotID: r.SnapshotID}
}
