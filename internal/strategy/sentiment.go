package strategy

import (
	"math"

	"StockTracker/internal/model"
)

const (
	sentimentScale    = 10
	sentimentSpread   = 20.0
	minWidth          = 1
	maxWidth          = 9
	amplifyVolume     = 2_000_000
	amplifyMultiplier = 1.2
)

// Visualize derives buy/hold/sell pressure widths from change% and volume.
// Hold is taken from the clamped buy/sell widths and is not recomputed after
// volume amplification, so the widths need not sum to 10.
func Visualize(changePct float64, volume int64) model.SentimentBars {
	buy := clampWidth(sentimentScale * (1 + changePct/sentimentSpread))
	sell := clampWidth(sentimentScale * (1 - changePct/sentimentSpread))
	hold := sentimentScale - buy - sell

	if volume > amplifyVolume {
		buy = int(float64(buy) * amplifyMultiplier)
		sell = int(float64(sell) * amplifyMultiplier)
	}
	return model.SentimentBars{Buy: buy, Hold: hold, Sell: sell}
}

// clampWidth rounds and clamps in float space so extreme inputs cannot overflow int.
func clampWidth(w float64) int {
	r := math.Round(w)
	if r < minWidth {
		return minWidth
	}
	if r > maxWidth {
		return maxWidth
	}
	return int(r)
}
