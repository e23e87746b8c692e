package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"StockTracker/internal/model"
)

// DollarsPerBar is the fixed scale of the trend graph.
const DollarsPerBar = 10

// ErrZeroDivisor is returned when the previous close is zero.
var ErrZeroDivisor = errors.New("previous close must be non-zero")

var hundred = decimal.NewFromInt(100)

// ChangePercent returns (current - previous) / previous * 100.
func ChangePercent(current, previous decimal.Decimal) (float64, error) {
	if previous.IsZero() {
		return 0, ErrZeroDivisor
	}
	pct, _ := current.Sub(previous).Mul(hundred).DivRound(previous, 16).Float64()
	return pct, nil
}

// Bars returns the number of trend glyphs for a price, truncated toward zero.
func Bars(price decimal.Decimal) int {
	return int(price.Div(decimal.NewFromInt(DollarsPerBar)).IntPart())
}

// FormatChange renders a change percentage with one decimal and an explicit sign.
func FormatChange(pct float64) string {
	if pct >= 0 {
		return fmt.Sprintf("+%.1f%%", pct)
	}
	return fmt.Sprintf("%.1f%%", pct)
}

// RenderTrend computes the two-day trend view.
func RenderTrend(current, previous decimal.Decimal) (model.TrendView, error) {
	pct, err := ChangePercent(current, previous)
	if err != nil {
		return model.TrendView{}, err
	}
	return model.TrendView{
		CurrentBars:   Bars(current),
		PreviousBars:  Bars(previous),
		ChangePercent: pct,
		ChangeLabel:   FormatChange(pct),
	}, nil
}
