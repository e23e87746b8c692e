package scheduler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"StockTracker/internal/collector"
	"StockTracker/internal/model"
	"StockTracker/internal/notifier"
)

func newTestScheduler(f collector.Fetcher) (*Scheduler, *bytes.Buffer) {
	var out bytes.Buffer
	return NewScheduler(collector.NewCollector(f), notifier.NewConsoleNotifier(&out), NewThrottle(0)), &out
}

func TestRun_EndToEndAgainstHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("function") {
		case "GLOBAL_QUOTE":
			w.Write([]byte(`{"Global Quote":{"05. price":"150.00","06. volume":"1200000"}}`))
		case "TIME_SERIES_DAILY":
			w.Write([]byte(`{"Time Series (Daily)":{"2024-05-03":{"4. close":"150.00"},"2024-05-02":{"4. close":"140.00"}}}`))
		}
	}))
	defer srv.Close()

	f := collector.NewAlphaVantageFetcher(srv.URL, "k", collector.NewHTTPClient(5*time.Second, ""))
	s, out := newTestScheduler(f)
	if err := s.Run(context.Background(), strings.NewReader("aapl\nquit\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Stock Price Tracker with Recommendations",
		"Current price of AAPL: 150.00\n",
		"Today: " + strings.Repeat("█", 15) + " $150.00",
		"Prev:  " + strings.Repeat("█", 14) + " $140.00 (+7.1%)",
		"Price Change: ▲ 7.14%",
		"Volume: 1.2M",
		"Action: STRONG BUY (High upward momentum)",
		"Thank you for using Stock Price Tracker!",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
}

func TestRun_UpstreamErrorDoesNotEndSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Error Message":"Invalid API call"}`))
	}))
	defer srv.Close()

	f := collector.NewAlphaVantageFetcher(srv.URL, "k", collector.NewHTTPClient(5*time.Second, ""))
	s, out := newTestScheduler(f)
	if err := s.Run(context.Background(), strings.NewReader("bad$\nworse\nQUIT\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.String()
	if n := strings.Count(got, "Error: Invalid API call\n"); n != 2 {
		t.Errorf("expected 2 error reports, got %d\n%s", n, got)
	}
	if !strings.Contains(got, notifier.SymbolHint) {
		t.Errorf("expected symbol hint in output")
	}
	if !strings.Contains(got, notifier.Farewell) {
		t.Errorf("expected farewell after errors")
	}
}

func TestRun_HistoryErrorAfterQuoteDoesNotEndSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("function") {
		case "GLOBAL_QUOTE":
			w.Write([]byte(`{"Global Quote":{"05. price":"150.00","06. volume":"1200000"}}`))
		case "TIME_SERIES_DAILY":
			w.Write([]byte(`{"Error Message":"Invalid API call"}`))
		}
	}))
	defer srv.Close()

	f := collector.NewAlphaVantageFetcher(srv.URL, "k", collector.NewHTTPClient(5*time.Second, ""))
	s, out := newTestScheduler(f)
	if err := s.Run(context.Background(), strings.NewReader("aapl\nmsft\nquit\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.String()
	if n := strings.Count(got, "Error: Invalid API call\n"); n != 2 {
		t.Errorf("expected 2 error reports, got %d\n%s", n, got)
	}
	if strings.Contains(got, "Current price of") {
		t.Errorf("no report should print when history fails:\n%s", got)
	}
	if !strings.Contains(got, notifier.Farewell) {
		t.Errorf("expected farewell after errors")
	}
}

func TestRun_CancelledPrintsFarewellOnce(t *testing.T) {
	s, out := newTestScheduler(&collector.MockFetcher{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Run(ctx, strings.NewReader("aapl\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := strings.Count(out.String(), notifier.Farewell); n != 1 {
		t.Errorf("expected farewell once, got %d\n%s", n, out.String())
	}
}

func TestHandleCommand(t *testing.T) {
	m := &collector.MockFetcher{
		Quote:  &model.Quote{Price: decimal.NewFromInt(20), Volume: 10},
		Closes: &model.PricePair{Previous: decimal.NewFromInt(20), Current: decimal.NewFromInt(20)},
	}
	s, out := newTestScheduler(m)
	ctx := context.Background()

	if !s.HandleCommand(ctx, "  QuIt ") {
		t.Error("expected quit to end the session")
	}
	if s.HandleCommand(ctx, "   ") || m.QuoteCalls != 0 {
		t.Errorf("expected blank line to be ignored, quote calls %d", m.QuoteCalls)
	}
	if s.HandleCommand(ctx, " msft ") {
		t.Error("expected lookup to keep the session open")
	}
	if !strings.Contains(out.String(), "Current price of MSFT: 20\n") {
		t.Errorf("expected uppercased symbol in output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Action: HOLD (Neutral movement)") {
		t.Errorf("expected HOLD for flat prices:\n%s", out.String())
	}
}

func TestRunLookup_ReportsTypedErrorMessage(t *testing.T) {
	m := &collector.MockFetcher{
		Quote:    &model.Quote{Price: decimal.NewFromInt(20), Volume: 10},
		CloseErr: &collector.InsufficientDataError{Symbol: "IPO", Have: 1},
	}
	s, out := newTestScheduler(m)
	s.RunLookup(context.Background(), "IPO")
	want := "Error: not enough history for IPO: need 2 trading days, got 1\n"
	if !strings.HasPrefix(out.String(), want) {
		t.Errorf("expected %q, got %q", want, out.String())
	}
}

func TestRunLookup_CancelledWhileThrottled(t *testing.T) {
	m := &collector.MockFetcher{
		Quote:  &model.Quote{Price: decimal.NewFromInt(20), Volume: 10},
		Closes: &model.PricePair{Previous: decimal.NewFromInt(20), Current: decimal.NewFromInt(20)},
	}
	s, _ := newTestScheduler(m)
	s.Throttle = NewThrottle(time.Hour)

	s.RunLookup(context.Background(), "AAPL")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.RunLookup(ctx, "AAPL")
	if m.QuoteCalls != 1 {
		t.Errorf("expected only the first lookup to reach the fetcher, got %d calls", m.QuoteCalls)
	}
}

func TestRunLookup_PauseStartsAfterSlowLookup(t *testing.T) {
	interval := 100 * time.Millisecond
	m := &collector.MockFetcher{
		Quote:  &model.Quote{Price: decimal.NewFromInt(20), Volume: 10},
		Closes: &model.PricePair{Previous: decimal.NewFromInt(20), Current: decimal.NewFromInt(20)},
		Delay:  150 * time.Millisecond,
	}
	s, _ := newTestScheduler(m)
	s.Throttle = NewThrottle(interval)

	s.RunLookup(context.Background(), "AAPL")
	s.RunLookup(context.Background(), "MSFT")
	if len(m.QuoteTimes) != 2 || len(m.CloseEnds) != 2 {
		t.Fatalf("expected two complete lookups, got %d quotes and %d histories", len(m.QuoteTimes), len(m.CloseEnds))
	}
	if gap := m.QuoteTimes[1].Sub(m.CloseEnds[0]); gap < interval-10*time.Millisecond {
		t.Errorf("second lookup started %s after the first ended, expected at least %s", gap, interval)
	}
}
