package collector

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"StockTracker/internal/model"
	"StockTracker/internal/trace"
)

const (
	functionGlobalQuote = "GLOBAL_QUOTE"
	functionDaily       = "TIME_SERIES_DAILY"
	outputSizeCompact   = "compact"

	sectionQuote  = "Global Quote"
	sectionDaily  = "Time Series (Daily)"
	fieldPrice    = `05\. price`
	fieldVolume   = `06\. volume`
	fieldClose    = `4\. close`
	userAgentHTTP = "StockTracker/1.0"
)

// upstreamErrorKeys are top-level keys the service uses instead of data:
// invalid calls, rate-limit notes and premium-endpoint notices.
var upstreamErrorKeys = []string{"Error Message", "Note", "Information"}

// NewHTTPClient builds the resty client shared by the Alpha Vantage calls.
func NewHTTPClient(timeout time.Duration, proxyURL string) *resty.Client {
	client := resty.New().
		SetTimeout(timeout).
		SetHeaders(map[string]string{
			"Accept":         "application/json",
			"Accept-Charset": "UTF-8",
			"User-Agent":     userAgentHTTP,
		})
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return client
}

// AlphaVantageFetcher implements Fetcher against the Alpha Vantage query API.
type AlphaVantageFetcher struct {
	BaseURL string
	APIKey  string
	Client  *resty.Client
}

// NewAlphaVantageFetcher creates a fetcher using the given HTTP client.
func NewAlphaVantageFetcher(baseURL, apiKey string, client *resty.Client) *AlphaVantageFetcher {
	return &AlphaVantageFetcher{BaseURL: baseURL, APIKey: apiKey, Client: client}
}

func (f *AlphaVantageFetcher) Name() string { return "alphavantage" }

// FetchQuote returns the current price and volume for symbol.
func (f *AlphaVantageFetcher) FetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	res, err := f.query(ctx, symbol, map[string]string{"function": functionGlobalQuote})
	if err != nil {
		return nil, err
	}

	gq := res.Get(sectionQuote)
	if !gq.IsObject() || len(gq.Map()) == 0 {
		return nil, &NotFoundError{Symbol: symbol, Section: sectionQuote}
	}

	rawPrice := gq.Get(fieldPrice).String()
	priceText := strings.TrimSpace(StripNonASCII(rawPrice))
	price, err := decimal.NewFromString(priceText)
	if err != nil {
		return nil, &ParseError{Symbol: symbol, Field: "05. price", Value: rawPrice, Err: err}
	}

	rawVolume := gq.Get(fieldVolume).String()
	volume, err := strconv.ParseInt(strings.TrimSpace(rawVolume), 10, 64)
	if err != nil {
		return nil, &ParseError{Symbol: symbol, Field: "06. volume", Value: rawVolume, Err: err}
	}
	if volume < 0 {
		return nil, &ParseError{Symbol: symbol, Field: "06. volume", Value: rawVolume, Err: fmt.Errorf("negative volume")}
	}

	return &model.Quote{Symbol: symbol, Price: price, PriceText: priceText, Volume: volume}, nil
}

// FetchRecentCloses returns the two most recent daily closes. The series is
// taken in the order the service returns it, newest first.
func (f *AlphaVantageFetcher) FetchRecentCloses(ctx context.Context, symbol string) (*model.PricePair, error) {
	res, err := f.query(ctx, symbol, map[string]string{
		"function":   functionDaily,
		"outputsize": outputSizeCompact,
	})
	if err != nil {
		return nil, err
	}

	series := res.Get(sectionDaily)
	if !series.IsObject() {
		return nil, &NotFoundError{Symbol: symbol, Section: sectionDaily}
	}

	var dates []string
	var days []gjson.Result
	series.ForEach(func(key, value gjson.Result) bool {
		dates = append(dates, key.String())
		days = append(days, value)
		return len(days) < 2
	})
	if len(days) < 2 {
		return nil, &InsufficientDataError{Symbol: symbol, Have: len(days)}
	}

	current, err := parseClose(symbol, days[0])
	if err != nil {
		return nil, err
	}
	previous, err := parseClose(symbol, days[1])
	if err != nil {
		return nil, err
	}
	if !previous.IsPositive() {
		return nil, &ParseError{Symbol: symbol, Field: "4. close", Value: previous.String(), Err: ErrZeroPrevious}
	}

	trace.Logger(ctx).Debug().
		Str("symbol", symbol).
		Str("current_date", dates[0]).
		Str("previous_date", dates[1]).
		Msg("recent closes")

	return &model.PricePair{
		Previous:     previous,
		Current:      current,
		PreviousDate: dates[1],
		CurrentDate:  dates[0],
	}, nil
}

func parseClose(symbol string, day gjson.Result) (decimal.Decimal, error) {
	raw := day.Get(fieldClose).String()
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, &ParseError{Symbol: symbol, Field: "4. close", Value: raw, Err: err}
	}
	if v.IsNegative() {
		return decimal.Zero, &ParseError{Symbol: symbol, Field: "4. close", Value: raw, Err: fmt.Errorf("negative close")}
	}
	return v, nil
}

// query performs one GET and returns the parsed body after checking for
// transport failures and explicit upstream error payloads.
func (f *AlphaVantageFetcher) query(ctx context.Context, symbol string, params map[string]string) (gjson.Result, error) {
	logger := trace.Logger(ctx)

	resp, err := f.Client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetQueryParam("symbol", symbol).
		SetQueryParam("apikey", f.APIKey).
		Get(f.BaseURL)
	if err != nil {
		logger.Warn().Err(err).Str("symbol", symbol).Str("function", params["function"]).Msg("request failed")
		return gjson.Result{}, &TransportError{Symbol: symbol, Err: err}
	}

	body := resp.Body()
	logger.Debug().
		Str("symbol", symbol).
		Str("function", params["function"]).
		Int("status", resp.StatusCode()).
		Int("bytes", len(body)).
		Dur("latency", resp.Time()).
		Msg("response")

	if !resp.IsSuccess() {
		return gjson.Result{}, &TransportError{Symbol: symbol, Err: fmt.Errorf("http status %d", resp.StatusCode())}
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, &NotFoundError{Symbol: symbol, Section: "body"}
	}

	res := gjson.ParseBytes(body)
	for _, key := range upstreamErrorKeys {
		if msg := res.Get(key); msg.Exists() {
			return gjson.Result{}, &UpstreamError{Symbol: symbol, Message: msg.String()}
		}
	}
	return res, nil
}

// StripNonASCII removes any rune outside the 7-bit ASCII range.
func StripNonASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 127 {
			return -1
		}
		return r
	}, s)
}
