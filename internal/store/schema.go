//-------------------------------------------------------------------------
//
// riskgen - synthetic financing risk data generator
//
// Portions copyright (c) 2025 - 2026, FO Data Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package store

// Table names used by the pipeline.
const (
	TableBooks          = "ref_hms"
	TableCounterparties = "ref_counterparties"
	TableInstruments    = "ref_instruments"
	TableTrades         = "trades_trs"
	TableRisk           = "risk_f"
	TableJobs           = "jobs"
	TableOverrides      = "overrides"
	TableRiskView       = "risk_view"
	TableRiskViewMV     = "risk_view_mv"
	TableRiskAgg        = "risk_agg"
	TableRiskAggMV      = "risk_agg_mv"
)

// Schema DDL. Risk rows are versioned, never updated: risk_f keeps every
// (id, snapId, version) row and downstream consumers resolve the latest
// version per identity. The jobs table replaces by (snapId, snapVersion) so
// a status re-append supersedes the RUNNING row.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS ref_hms (
        id String,
        book LowCardinality(String),
        trader LowCardinality(String),
        desk LowCardinality(String),
        updatedAt DateTime
    ) ENGINE = ReplacingMergeTree()
    ORDER BY (id, book, updatedAt)`,

	`CREATE TABLE IF NOT EXISTS ref_counterparties (
        id String,
        site String,
        treat4Parent String,
        treat7 String,
        countryOfIncorporation String,
        countryOfPrimaryOperation String,
        customerName String,
        lei String,
        riskRatingCrr String,
        riskRatingBucket String,
        masterGroup String,
        cbSector LowCardinality(String)
    ) ENGINE = ReplacingMergeTree()
    ORDER BY id`,

	`CREATE TABLE IF NOT EXISTS ref_instruments (
        id String,
        isin String,
        cusip String,
        sedol String,
        name String,
        issuer String,
        region LowCardinality(String),
        country LowCardinality(String),
        sector LowCardinality(String),
        industry LowCardinality(String),
        currency LowCardinality(String),
        issueDate Date,
        maturityDate Date,
        coupon Decimal(5,2),
        couponFrequency LowCardinality(String),
        yieldToMaturity Decimal(5,2),
        price Decimal(10,2),
        faceValue Decimal(10,2),
        rating LowCardinality(String),
        isCallable Bool,
        isPuttable Bool,
        isConvertible Bool,
        updatedAt DateTime
    ) ENGINE = ReplacingMergeTree()
    ORDER BY (id, updatedAt)`,

	`CREATE TABLE IF NOT EXISTS trades_trs (
        id String,
        counterparty LowCardinality(String),
        instrument LowCardinality(String),
        book LowCardinality(String),
        tradeDate Date,
        maturityDate Date,
        underlyingAsset LowCardinality(String),
        notionalAmount Decimal(18,2),
        currency LowCardinality(String),
        financingSpread Decimal(7,4),
        initialPrice Decimal(18,6),
        collateralType LowCardinality(String),
        eventId UInt64,
        updatedAt DateTime
    ) ENGINE = ReplacingMergeTree()
    ORDER BY (id, updatedAt)`,

	`CREATE TABLE IF NOT EXISTS risk_f (
        id String,
        snapId String,
        version UInt64,
        status LowCardinality(String),
        book LowCardinality(String),
        counterparty LowCardinality(String),
        instrumentId String,
        ccy LowCardinality(String),
        side LowCardinality(String),
        tenor LowCardinality(String),
        model LowCardinality(String),
        dtm Int64,
        notionalAmount Decimal(18,2),
        notionalCcy Decimal(18,2),
        notionalFunding Decimal(18,2),
        cashOut Decimal(18,2),
        spread Decimal(18,6),
        accrualDaily Decimal(18,6),
        accrualProjected Decimal(18,6),
        accrualPast Decimal(18,6),
        ead Decimal(18,2),
        fxSpot Decimal(18,6),
        haircut Decimal(18,2),
        margin Decimal(18,2),
        marginOis Decimal(18,2),
        marginFixed Decimal(18,2),
        marginFloat Decimal(18,2),
        mid Decimal(18,2),
        calculatedAt DateTime,
        asOfDate Date
    ) ENGINE = ReplacingMergeTree(version)
    ORDER BY (id, snapId, version)
    SETTINGS index_granularity = 8192`,

	`CREATE TABLE IF NOT EXISTS jobs (
        id String,
        jobType LowCardinality(String),
        snapId String,
        snapVersion UInt64,
        status LowCardinality(String),
        createdAt DateTime,
        completedAt Nullable(DateTime)
    ) ENGINE = ReplacingMergeTree()
    ORDER BY (snapId, snapVersion)`,

	// Manual adjustment audit trail. Rows are written by operators, not the
	// pipeline; bootstrap owns the table so adjustments survive re-runs.
	`CREATE TABLE IF NOT EXISTS overrides (
        id String,
        type LowCardinality(String),
        newValue String,
        previousValue String,
        updatedAt DateTime,
        updatedBy String,
        comments String,
        isActive Bool DEFAULT 1
    ) ENGINE = MergeTree()
    ORDER BY (type, updatedAt, id)`,

	`CREATE TABLE IF NOT EXISTS risk_view (
        id String,
        snapId String,
        version UInt64,
        book LowCardinality(String),
        hmsTrader LowCardinality(String),
        hmsDesk LowCardinality(String),
        cpSector LowCardinality(String),
        cpRating LowCardinality(String),
        instrumentName String,
        instrumentCurrency LowCardinality(String),
        instrumentCountry LowCardinality(String),
        instrumentSector LowCardinality(String),
        asOfDate Date,
        notionalAmount Decimal(18,2),
        accrualDaily Decimal(18,6),
        accrualProjected Decimal(18,6),
        accrualPast Decimal(18,6),
        cashOut Decimal(18,2),
        ead Decimal(18,2),
        spread Decimal(18,6),
        fxSpot Decimal(18,6)
    ) ENGINE = ReplacingMergeTree(version)
    ORDER BY (id, snapId, version)`,

	`CREATE MATERIALIZED VIEW IF NOT EXISTS risk_view_mv TO risk_view
    AS SELECT
        r.id AS id,
        r.snapId AS snapId,
        r.version AS version,
        r.book AS book,
        h.trader AS hmsTrader,
        h.desk AS hmsDesk,
        cp.cbSector AS cpSector,
        cp.riskRatingCrr AS cpRating,
        inst.name AS instrumentName,
        inst.currency AS instrumentCurrency,
        inst.country AS instrumentCountry,
        inst.sector AS instrumentSector,
        r.asOfDate AS asOfDate,
        r.notionalAmount AS notionalAmount,
        r.accrualDaily AS accrualDaily,
        r.accrualProjected AS accrualProjected,
        r.accrualPast AS accrualPast,
        r.cashOut AS cashOut,
        r.ead AS ead,
        r.spread AS spread,
        r.fxSpot AS fxSpot
    FROM risk_f r
    INNER JOIN ref_counterparties cp ON r.counterparty = cp.id
    INNER JOIN ref_hms h ON r.book = h.book
    INNER JOIN ref_instruments inst ON r.instrumentId = inst.id`,

	`CREATE TABLE IF NOT EXISTS risk_agg (
        hmsDesk LowCardinality(String),
        hmsTrader LowCardinality(String),
        book LowCardinality(String),
        asOfDate Date,
        totalNotionalAmount Decimal(38,2),
        totalDailyAccrual Decimal(38,6),
        totalCashout Decimal(38,2),
        totalEad Decimal(38,2),
        totalProjectedAccrual Decimal(38,6),
        totalPastAccrual Decimal(38,6),
        version UInt64
    ) ENGINE = ReplacingMergeTree(version)
    ORDER BY (hmsDesk, hmsTrader, book, asOfDate)`,

	// Each pipeline run inserts one full record set under a single version,
	// so each insert block aggregates to per-group totals for that version
	// and ReplacingMergeTree(version) keeps the highest one per group.
	`CREATE MATERIALIZED VIEW IF NOT EXISTS risk_agg_mv TO risk_agg
    AS SELECT
        hmsDesk,
        hmsTrader,
        book,
        asOfDate,
        sum(notionalAmount) AS totalNotionalAmount,
        sum(accrualDaily) AS totalDailyAccrual,
        sum(cashOut) AS totalCashout,
        sum(ead) AS totalEad,
        sum(accrualProjected) AS totalProjectedAccrual,
        sum(accrualPast) AS totalPastAccrual,
        max(version) AS version
    FROM risk_view
    GROUP BY hmsDesk, hmsTrader, book, asOfDate`,
}

// dropDDL removes everything init creates. Views first, then tables.
var dropDDL = []string{
	`DROP VIEW IF EXISTS ` + TableRiskAggMV,
	`DROP VIEW IF EXISTS ` + TableRiskViewMV,
	`DROP TABLE IF EXISTS ` + TableRiskAgg,
	`DROP TABLE IF EXISTS ` + TableRiskView,
	`DROP TABLE IF EXISTS ` + TableOverrides,
	`DROP TABLE IF EXISTS ` + TableJobs,
	`DROP TABLE IF EXISTS ` + TableRisk,
	`DROP TABLE IF EXISTS ` + TableTrades,
	`DROP TABLE IF EXISTS ` + TableInstruments,
	`DROP TABLE IF EXISTS ` + TableCounterparties,
	`DROP TABLE IF EXISTS ` + TableBooks,
}
