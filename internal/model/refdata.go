package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book is an HMS book: the mapping from a trading book to its trader and desk.
type Book struct {
	ID        string
	Book      string
	Trader    string
	Desk      string
	UpdatedAt time.Time
}

// Counterparty is a trading counterparty from the reference universe.
type Counterparty struct {
	ID                        string
	Site                      string
	Treat4Parent              string
	Treat7                    string
	CountryOfIncorporation    string
	CountryOfPrimaryOperation string
	CustomerName              string
	LEI                       string
	RiskRatingCRR             string
	RiskRatingBucket          string
	MasterGroup               string
	CbSector                  string
}

// Instrument is a reference bond/security a trade can finance.
type Instrument struct {
	ID              string
	ISIN            string
	CUSIP           string
	SEDOL           string
	Name            string
	Issuer          string
	Region          string
	Country         string
	Sector          string
	Industry        string
	Currency        string
	IssueDate       time.Time
	MaturityDate    time.Time
	Coupon          decimal.Decimal
	CouponFrequency string
	YieldToMaturity decimal.Decimal
	Price           decimal.Decimal
	FaceValue       decimal.Decimal
	Rating          string
	IsCallable      bool
	IsPuttable      bool
	IsConvertible   bool
	UpdatedAt       time.Time
}
