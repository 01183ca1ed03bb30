package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/fodata/riskgen/internal/logging"
	"github.com/fodata/riskgen/internal/model"
)

// ClickHouseStore implements Store on top of the ClickHouse native protocol.
type ClickHouseStore struct {
	conn driver.Conn
}

var _ Store = (*ClickHouseStore)(nil)

// ConnectClickHouse opens a ClickHouse connection from a DSN
// (e.g. "clickhouse://default@localhost:9000/default") and verifies it.
func ConnectClickHouse(ctx context.Context, dsn string) (*ClickHouseStore, error) {
	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 10 * time.Second
	}
	opts.Compression = &clickhouse.Compression{Method: clickhouse.CompressionLZ4}

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}

	logging.Info().
		Strs("addr", opts.Addr).
		Str("database", opts.Auth.Database).
		Msg("Connected to ClickHouse")

	return &ClickHouseStore{conn: conn}, nil
}

// Close releases the underlying connection.
func (s *ClickHouseStore) Close() error {
	return s.conn.Close()
}

// CreateSchema creates all tables and materialized views.
func (s *ClickHouseStore) CreateSchema(ctx context.Context) error {
	for _, ddl := range schemaDDL {
		if err := s.conn.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("failed to execute schema DDL: %w", err)
		}
	}
	return nil
}

// DropSchema drops all tables and materialized views.
func (s *ClickHouseStore) DropSchema(ctx context.Context) error {
	for _, ddl := range dropDDL {
		if err := s.conn.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("failed to execute drop DDL: %w", err)
		}
	}
	return nil
}

// MaxSnapshotVersion returns the highest snapshot version for a snapshot id.
func (s *ClickHouseStore) MaxSnapshotVersion(ctx context.Context, snapshotID string) (uint64, bool, error) {
	var count, max uint64
	row := s.conn.QueryRow(ctx,
		`SELECT count(), max(snapVersion) FROM jobs WHERE snapId = ?`, snapshotID)
	if err := row.Scan(&count, &max); err != nil {
		return 0, false, fmt.Errorf("failed to query max snapshot version: %w", err)
	}
	if count == 0 {
		return 0, false, nil
	}
	return max, true, nil
}

// InsertJob appends a job row; the jobs table replaces by (snapId, snapVersion).
func (s *ClickHouseStore) InsertJob(ctx context.Context, job model.Job) error {
	return s.conn.Exec(ctx,
		`INSERT INTO jobs (id, jobType, snapId, snapVersion, status, createdAt, completedAt)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.JobType, job.SnapshotID, job.SnapshotVersion,
		job.Status.String(), job.CreatedAt, job.CompletedAt)
}

// Jobs returns the latest write per version for a snapshot id.
func (s *ClickHouseStore) Jobs(ctx context.Context, snapshotID string) ([]model.Job, error) {
	rows, err := s.conn.Query(ctx,
		`SELECT id, jobType, snapId, snapVersion, status, createdAt, completedAt
         FROM jobs FINAL WHERE snapId = ? ORDER BY snapVersion`, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		var j model.Job
		var status string
		if err := rows.Scan(&j.ID, &j.JobType, &j.SnapshotID, &j.SnapshotVersion,
			&status, &j.CreatedAt, &j.CompletedAt); err != nil {
			return nil, err
		}
		j.Status, err = model.ParseJobStatus(status)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// InsertBooks batch-inserts HMS book rows.
func (s *ClickHouseStore) InsertBooks(ctx context.Context, books []model.Book) error {
	if len(books) == 0 {
		return nil
	}
	batch, err := s.conn.PrepareBatch(ctx,
		`INSERT INTO ref_hms (id, book, trader, desk, updatedAt)`)
	if err != nil {
		return err
	}
	for _, b := range books {
		if err := batch.Append(b.ID, b.Book, b.Trader, b.Desk, b.UpdatedAt); err != nil {
			return err
		}
	}
	return batch.Send()
}

// InsertCounterparties batch-inserts counterparty rows.
func (s *ClickHouseStore) InsertCounterparties(ctx context.Context, cps []model.Counterparty) error {
	if len(cps) == 0 {
		return nil
	}
	batch, err := s.conn.PrepareBatch(ctx,
		`INSERT INTO ref_counterparties (id, site, treat4Parent, treat7,
         countryOfIncorporation, countryOfPrimaryOperation, customerName, lei,
         riskRatingCrr, riskRatingBucket, masterGroup, cbSector)`)
	if err != nil {
		return err
	}
	for _, cp := range cps {
		if err := batch.Append(cp.ID, cp.Site, cp.Treat4Parent, cp.Treat7,
			cp.CountryOfIncorporation, cp.CountryOfPrimaryOperation,
			cp.CustomerName, cp.LEI, cp.RiskRatingCRR, cp.RiskRatingBucket,
			cp.MasterGroup, cp.CbSector); err != nil {
			return err
		}
	}
	return batch.Send()
}

// InsertInstruments batch-inserts instrument rows.
func (s *ClickHouseStore) InsertInstruments(ctx context.Context, instruments []model.Instrument) error {
	if len(instruments) == 0 {
		return nil
	}
	batch, err := s.conn.PrepareBatch(ctx,
		`INSERT INTO ref_instruments (id, isin, cusip, sedol, name, issuer,
         region, country, sector, industry, currency, issueDate, maturityDate,
         coupon, couponFrequency, yieldToMaturity, price, faceValue, rating,
         isCallable, isPuttable, isConvertible, updatedAt)`)
	if err != nil {
		return err
	}
	for _, in := range instruments {
		if err := batch.Append(in.ID, in.ISIN, in.CUSIP, in.SEDOL, in.Name,
			in.Issuer, in.Region, in.Country, in.Sector, in.Industry,
			in.Currency, in.IssueDate, in.MaturityDate, in.Coupon,
			in.CouponFrequency, in.YieldToMaturity, in.Price, in.FaceValue,
			in.Rating, in.IsCallable, in.IsPuttable, in.IsConvertible,
			in.UpdatedAt); err != nil {
			return err
		}
	}
	return batch.Send()
}

// Books returns the HMS book directory.
func (s *ClickHouseStore) Books(ctx context.Context) ([]model.Book, error) {
	rows, err := s.conn.Query(ctx,
		`SELECT id, book, trader, desk, updatedAt FROM ref_hms FINAL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Book, &b.Trader, &b.Desk, &b.UpdatedAt); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// CounterpartyIDs returns the ids of all reference counterparties.
func (s *ClickHouseStore) CounterpartyIDs(ctx context.Context) ([]string, error) {
	return s.stringColumn(ctx, `SELECT DISTINCT id FROM ref_counterparties`)
}

// InstrumentIDs returns the ids of all reference instruments.
func (s *ClickHouseStore) InstrumentIDs(ctx context.Context) ([]string, error) {
	return s.stringColumn(ctx, `SELECT DISTINCT id FROM ref_instruments`)
}

func (s *ClickHouseStore) stringColumn(ctx context.Context, query string) ([]string, error) {
	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// InsertTrades batch-inserts trade rows.
func (s *ClickHouseStore) InsertTrades(ctx context.Context, trades []model.Trade) error {
	if len(trades) == 0 {
		return nil
	}
	batch, err := s.conn.PrepareBatch(ctx,
		`INSERT INTO trades_trs (id, counterparty, instrument, book, tradeDate,
         maturityDate, underlyingAsset, notionalAmount, currency,
         financingSpread, initialPrice, collateralType, eventId, updatedAt)`)
	if err != nil {
		return err
	}
	for _, t := range trades {
		if err := batch.Append(t.ID, t.Counterparty, t.Instrument, t.Book,
			t.TradeDate, t.MaturityDate, t.UnderlyingAsset, t.NotionalAmount,
			t.Currency, t.FinancingSpread, t.InitialPrice, t.CollateralType,
			t.EventID, t.UpdatedAt); err != nil {
			return err
		}
	}
	return batch.Send()
}

// FetchTrades returns the full current trade set.
func (s *ClickHouseStore) FetchTrades(ctx context.Context) ([]model.Trade, error) {
	rows, err := s.conn.Query(ctx,
		`SELECT id, counterparty, instrument, book, tradeDate, maturityDate,
         underlyingAsset, notionalAmount, currency, financingSpread,
         initialPrice, collateralType, eventId, updatedAt
         FROM trades_trs FINAL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []model.Trade
	for rows.Next() {
		var t model.Trade
		if err := rows.Scan(&t.ID, &t.Counterparty, &t.Instrument, &t.Book,
			&t.TradeDate, &t.MaturityDate, &t.UnderlyingAsset,
			&t.NotionalAmount, &t.Currency, &t.FinancingSpread,
			&t.InitialPrice, &t.CollateralType, &t.EventID, &t.UpdatedAt); err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

const riskColumns = `id, snapId, version, status, book, counterparty,
    instrumentId, ccy, side, tenor, model, dtm, notionalAmount, notionalCcy,
    notionalFunding, cashOut, spread, accrualDaily, accrualProjected,
    accrualPast, ead, fxSpot, haircut, margin, marginOis, marginFixed,
    marginFloat, mid, calculatedAt, asOfDate`

// InsertRiskRecords writes all records in one batch.
func (s *ClickHouseStore) InsertRiskRecords(ctx context.Context, records []model.RiskRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch, err := s.conn.PrepareBatch(ctx, `INSERT INTO risk_f (`+riskColumns+`)`)
	if err != nil {
		return err
	}
	for _, r := range records {
		if err := batch.Append(r.ID, r.SnapshotID, r.SnapshotVersion, r.Status,
			r.Book, r.Counterparty, r.InstrumentID, r.Ccy, r.Side, r.Tenor,
			r.Model, r.DTM, r.NotionalAmount, r.NotionalCcy, r.NotionalFunding,
			r.CashOut, r.Spread, r.AccrualDaily, r.AccrualProjected,
			r.AccrualPast, r.EAD, r.FxSpot, r.Haircut, r.Margin, r.MarginOis,
			r.MarginFixed, r.MarginFloat, r.Mid, r.CalculatedAt, r.AsOfDate); err != nil {
			return err
		}
	}
	return batch.Send()
}

// RiskRecords returns every stored version of every record for a snapshot id.
func (s *ClickHouseStore) RiskRecords(ctx context.Context, snapshotID string) ([]model.RiskRecord, error) {
	rows, err := s.conn.Query(ctx,
		`SELECT `+riskColumns+` FROM risk_f WHERE snapId = ?`, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.RiskRecord
	for rows.Next() {
		var r model.RiskRecord
		if err := rows.Scan(&r.ID, &r.SnapshotID, &r.SnapshotVersion, &r.Status,
			&r.Book, &r.Counterparty, &r.InstrumentID, &r.Ccy, &r.Side,
			&r.Tenor, &r.Model, &r.DTM, &r.NotionalAmount, &r.NotionalCcy,
			&r.NotionalFunding, &r.CashOut, &r.Spread, &r.AccrualDaily,
			&r.AccrualProjected, &r.AccrualPast, &r.EAD, &r.FxSpot, &r.Haircut,
			&r.Margin, &r.MarginOis, &r.MarginFixed, &r.MarginFloat, &r.Mid,
			&r.CalculatedAt, &r.AsOfDate); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// AggregateRows returns the materialized rollup, latest version per group.
func (s *ClickHouseStore) AggregateRows(ctx context.Context) ([]model.AggregateRow, error) {
	rows, err := s.conn.Query(ctx,
		`SELECT hmsDesk, hmsTrader, book, asOfDate, totalNotionalAmount,
         totalDailyAccrual, totalCashout, totalEad, totalProjectedAccrual,
         totalPastAccrual, version
         FROM risk_agg FINAL
         ORDER BY hmsDesk, hmsTrader, book, asOfDate`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AggregateRow
	for rows.Next() {
		var a model.AggregateRow
		if err := rows.Scan(&a.Desk, &a.Trader, &a.Book, &a.AsOfDate,
			&a.TotalNotionalAmount, &a.TotalDailyAccrual, &a.TotalCashout,
			&a.TotalEad, &a.TotalProjectedAccrual, &a.TotalPastAccrual,
			&a.Version); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
