//-------------------------------------------------------------------------
//
// riskgen - synthetic financing risk data generator
//
// Portions copyright (c) 2025 - 2026, FO Data Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package aggregate computes the book/desk/date rollup of the risk table.
// It is the explicit, in-process equivalent of the ClickHouse materialized
// view: records are first deduplicated to the latest snapshot version per
// (id, snapId) identity, then summed per group, so superseded versions are
// never double-counted.
package aggregate

import (
	"sort"
	"time"

	"github.com/fodata/riskgen/internal/model"
)

type groupKey struct {
	desk     string
	trader   string
	book     string
	asOfDate time.Time
}

// Latest reduces records to the highest-version record per (id, snapId).
func Latest(records []model.RiskRecord) []model.RiskRecord {
	latest := make(map[model.RiskKey]model.RiskRecord, len(records))
	for _, r := range records {
		if cur, ok := latest[r.Key()]; !ok || r.SnapshotVersion > cur.SnapshotVersion {
			latest[r.Key()] = r
		}
	}
	out := make([]model.RiskRecord, 0, len(latest))
	for _, r := range latest {
		out = append(out, r)
	}
	return out
}

// Rollup aggregates risk records per (desk, trader, book, asOfDate), joined
// against the HMS book directory. Records whose book has no HMS entry are
// dropped, matching the inner join in the materialized view. Only the
// latest version per record identity contributes to the sums.
func Rollup(records []model.RiskRecord, books []model.Book) []model.AggregateRow {
	byBook := make(map[string]model.Book, len(books))
	for _, b := range books {
		byBook[b.Book] = b
	}

	groups := make(map[groupKey]*model.AggregateRow)
	for _, r := range Latest(records) {
		hms, ok := byBook[r.Book]
		if !ok {
			continue
		}
		key := groupKey{
			desk:     hms.Desk,
			trader:   hms.Trader,
			book:     r.Book,
			asOfDate: r.AsOfDate.Truncate(24 * time.Hour),
		}
		row, ok := groups[key]
		if !ok {
			row = &model.AggregateRow{
				Desk:     key.desk,
				Trader:   key.trader,
				Book:     key.book,
				AsOfDate: key.asOfDate,
			}
			groups[key] = row
		}
		row.TotalNotionalAmount = row.TotalNotionalAmount.Add(r.NotionalAmount)
		row.TotalDailyAccrual = row.TotalDailyAccrual.Add(r.AccrualDaily)
		row.TotalCashout = row.TotalCashout.Add(r.CashOut)
		row.TotalEad = row.TotalEad.Add(r.EAD)
		row.TotalProjectedAccrual = row.TotalProjectedAccrual.Add(r.AccrualProjected)
		row.TotalPastAccrual = row.TotalPastAccrual.Add(r.AccrualPast)
		if r.SnapshotVersion > row.Version {
			row.Version = r.SnapshotVersion
		}
	}

	out := make([]model.AggregateRow, 0, len(groups))
	for _, row := range groups {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Desk != b.Desk {
			return a.Desk < b.Desk
		}
		if a.Trader != b.Trader {
			return a.Trader < b.Trader
		}
		if a.Book != b.Book {
			return a.Book < b.Book
		}
		return a.AsOfDate.Before(b.AsOfDate)
	})
	return out
}
