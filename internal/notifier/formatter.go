package notifier

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"StockTracker/internal/model"
)

const (
	barGlyph  = "█"
	rule      = "──────────────────────────────────────"
	upArrow   = "▲"
	downArrow = "▼"
)

// Banner is printed once at session start.
func Banner() string {
	return "Stock Price Tracker with Recommendations\n---------------------------------------\n"
}

// Prompt asks for the next symbol.
const Prompt = "Enter stock symbol (e.g., AAPL, MSFT, RELIANCE.BSE) or 'quit' to exit: "

// Farewell is printed when the session ends.
const Farewell = "Thank you for using Stock Price Tracker!\n"

// SymbolHint is shown after every failed lookup.
const SymbolHint = "Note: For Indian stocks, use format like RELIANCE.BSE or TATASTEEL.NS"

// FormatError renders a failed lookup.
func FormatError(msg string) string {
	return fmt.Sprintf("Error: %s\n%s\n", msg, SymbolHint)
}

// FormatReport renders every block for one successful lookup.
func FormatReport(sig *model.Signal) string {
	var b strings.Builder
	b.WriteString(FormatPrice(&sig.Snapshot.Quote))
	b.WriteString(FormatTrend(&sig.Snapshot.Closes, sig.Trend))
	b.WriteString(FormatRecommendation(sig))
	b.WriteString(FormatSentiment(sig.Sentiment))
	return b.String()
}

// FormatPrice prints the cleaned upstream price at full precision.
func FormatPrice(q *model.Quote) string {
	text := q.PriceText
	if text == "" {
		text = q.Price.String()
	}
	return fmt.Sprintf("\nCurrent price of %s: %s\n", q.Symbol, text)
}

// FormatTrend renders the two-day bar graph, one glyph per $10.
func FormatTrend(closes *model.PricePair, trend model.TrendView) string {
	var b strings.Builder
	b.WriteString("\nPrice Trend Graph\n")
	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("Today: %s $%s\n", bars(trend.CurrentBars), closes.Current.StringFixed(2)))
	b.WriteString(fmt.Sprintf("Prev:  %s $%s (%s)\n", bars(trend.PreviousBars), closes.Previous.StringFixed(2), trend.ChangeLabel))
	return b.String()
}

func FormatRecommendation(sig *model.Signal) string {
	pct := sig.Snapshot.ChangePercent
	arrow := upArrow
	if pct < 0 {
		arrow = downArrow
	}
	var b strings.Builder
	b.WriteString("\n=== Trading Recommendation ===\n")
	b.WriteString(fmt.Sprintf("Price Change: %s %.2f%%\n", arrow, math.Abs(pct)))
	b.WriteString(fmt.Sprintf("Volume: %s\n", FormatVolume(sig.Snapshot.Quote.Volume)))
	b.WriteString(fmt.Sprintf("Action: %s\n", sig.Recommendation))
	return b.String()
}

// FormatSentiment renders the buy/hold/sell pressure rows. A negative width
// draws no bar but still prints its percentage.
func FormatSentiment(s model.SentimentBars) string {
	var b strings.Builder
	b.WriteString("\nMarket Sentiment Analysis\n")
	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("Buy Pressure:  %s %d%%\n", bars(s.Buy), s.BuyPercent()))
	b.WriteString(fmt.Sprintf("Hold Position: %s %d%%\n", bars(s.Hold), s.HoldPercent()))
	b.WriteString(fmt.Sprintf("Sell Pressure: %s %d%%\n", bars(s.Sell), s.SellPercent()))
	return b.String()
}

// FormatVolume abbreviates volume as 1.2M / 3.4K.
func FormatVolume(volume int64) string {
	switch {
	case volume >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(volume)/1_000_000)
	case volume >= 1_000:
		return fmt.Sprintf("%.1fK", float64(volume)/1_000)
	default:
		return strconv.FormatInt(volume, 10)
	}
}

func bars(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(barGlyph, n)
}
