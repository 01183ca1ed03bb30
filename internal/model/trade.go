package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is a financing trade (total return swap) the pipeline computes risk
// against. Trades are produced by the reference/trade generators and are
// read-only to the risk pipeline.
type Trade struct {
	ID              string
	Counterparty    string
	Instrument      string
	Book            string
	TradeDate       time.Time
	MaturityDate    time.Time
	UnderlyingAsset string
	NotionalAmount  decimal.Decimal
	Currency        string
	FinancingSpread decimal.Decimal
	InitialPrice    decimal.Decimal
	CollateralType  string
	EventID         uint64
	UpdatedAt       time.Time
}
