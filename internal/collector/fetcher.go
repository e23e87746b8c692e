package collector

import (
	"context"

	"StockTracker/internal/model"
)

// Fetcher defines the interface for fetching quote data.
type Fetcher interface {
	FetchQuote(ctx context.Context, symbol string) (*model.Quote, error)
	FetchRecentCloses(ctx context.Context, symbol string) (*model.PricePair, error)
	Name() string
}
