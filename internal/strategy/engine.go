package strategy

import (
	"fmt"

	"StockTracker/internal/calculator"
	"StockTracker/internal/model"
)

// HighVolume is the volume above which the ±5% tiers upgrade to STRONG.
const HighVolume = 1_000_000

// Rules is evaluated top to bottom; the first match wins.
var Rules = []struct {
	Match          func(changePct float64, volume int64) bool
	Recommendation model.Recommendation
}{
	{
		Match:          func(c float64, v int64) bool { return c > 5 && v > HighVolume },
		Recommendation: model.Recommendation{Action: model.ActionStrongBuy, Rationale: "High upward momentum"},
	},
	{
		Match:          func(c float64, _ int64) bool { return c > 2 },
		Recommendation: model.Recommendation{Action: model.ActionBuy, Rationale: "Positive trend"},
	},
	{
		Match:          func(c float64, v int64) bool { return c < -5 && v > HighVolume },
		Recommendation: model.Recommendation{Action: model.ActionStrongSell, Rationale: "Heavy selling"},
	},
	{
		Match:          func(c float64, _ int64) bool { return c < -2 },
		Recommendation: model.Recommendation{Action: model.ActionSell, Rationale: "Downward trend"},
	},
}

// DefaultRecommendation applies when no rule matches.
var DefaultRecommendation = model.Recommendation{Action: model.ActionHold, Rationale: "Neutral movement"}

// Classify maps a change percentage and volume to a recommendation.
func Classify(changePct float64, volume int64) model.Recommendation {
	for _, r := range Rules {
		if r.Match(changePct, volume) {
			return r.Recommendation
		}
	}
	return DefaultRecommendation
}

// Evaluate computes the full trade signal from a snapshot.
func Evaluate(snap *model.Snapshot) (*model.Signal, error) {
	trend, err := calculator.RenderTrend(snap.Closes.Current, snap.Closes.Previous)
	if err != nil {
		return nil, fmt.Errorf("render trend: %w", err)
	}
	return &model.Signal{
		Snapshot:       snap,
		Recommendation: Classify(snap.ChangePercent, snap.Quote.Volume),
		Sentiment:      Visualize(snap.ChangePercent, snap.Quote.Volume),
		Trend:          trend,
	}, nil
}
