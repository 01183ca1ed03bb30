package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AggregateRow is one rollup bucket of the risk table: the summed totals for
// a (desk, trader, book, as-of date) group, computed over the latest version
// of each risk record only. Version carries the highest contributing
// snapshot version so stale rollups are superseded the same way risk rows are.
type AggregateRow struct {
	Desk     string
	Trader   string
	Book     string
	AsOfDate time.Time

	TotalNotionalAmount   decimal.Decimal
	TotalDailyAccrual     decimal.Decimal
	TotalCashout          decimal.Decimal
	TotalEad              decimal.Decimal
	TotalProjectedAccrual decimal.Decimal
	TotalPastAccrual      decimal.Decimal

	Version uint64
}
