package collector

import (
	"context"
	"fmt"
	"time"

	"StockTracker/internal/calculator"
	"StockTracker/internal/model"
	"StockTracker/internal/trace"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Quote    *model.Quote
	Closes   *model.PricePair
	QuoteErr error
	CloseErr error
	// Delay slows down FetchRecentCloses.
	Delay time.Duration

	QuoteCalls int
	CloseCalls int
	QuoteTimes []time.Time
	CloseEnds  []time.Time
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchQuote(_ context.Context, symbol string) (*model.Quote, error) {
	m.QuoteCalls++
	m.QuoteTimes = append(m.QuoteTimes, time.Now())
	if m.QuoteErr != nil {
		return nil, m.QuoteErr
	}
	q := *m.Quote
	q.Symbol = symbol
	return &q, nil
}

func (m *MockFetcher) FetchRecentCloses(_ context.Context, _ string) (*model.PricePair, error) {
	m.CloseCalls++
	if m.Delay > 0 {
		time.Sleep(m.Delay)
	}
	defer func() { m.CloseEnds = append(m.CloseEnds, time.Now()) }()
	if m.CloseErr != nil {
		return nil, m.CloseErr
	}
	p := *m.Closes
	return &p, nil
}

// Collector runs the per-symbol acquisition: quote first, then history.
type Collector struct {
	Fetcher Fetcher
	Now     func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher, Now: time.Now}
}

// Collect fetches the quote and recent closes for symbol and derives the change percentage.
func (c *Collector) Collect(ctx context.Context, symbol string) (*model.Snapshot, error) {
	quote, err := c.Fetcher.FetchQuote(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch quote: %w", err)
	}
	closes, err := c.Fetcher.FetchRecentCloses(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}

	pct, err := calculator.ChangePercent(closes.Current, closes.Previous)
	if err != nil {
		return nil, fmt.Errorf("change percent: %w", err)
	}

	trace.Logger(ctx).Info().
		Str("symbol", symbol).
		Str("source", c.Fetcher.Name()).
		Str("price", quote.Price.String()).
		Int64("volume", quote.Volume).
		Float64("change_pct", pct).
		Msg("collected")

	return &model.Snapshot{
		Quote:         *quote,
		Closes:        *closes,
		ChangePercent: pct,
		FetchedAt:     c.Now(),
	}, nil
}
