package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the latest traded price and volume for one symbol.
type Quote struct {
	Symbol string
	Price  decimal.Decimal
	// PriceText is the upstream price with non-ASCII characters removed, kept for display.
	PriceText string
	Volume    int64
}

// PricePair holds the two most recent daily closes, newest last.
// Previous is always > 0 once returned by a fetcher.
type PricePair struct {
	Previous     decimal.Decimal
	Current      decimal.Decimal
	PreviousDate string
	CurrentDate  string
}

// Snapshot is everything acquired for a single symbol lookup.
type Snapshot struct {
	Quote         Quote
	Closes        PricePair
	ChangePercent float64
	FetchedAt     time.Time
}
