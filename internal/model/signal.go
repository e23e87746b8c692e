package model

// Action is the discrete recommendation category.
type Action string

const (
	ActionStrongBuy  Action = "STRONG_BUY"
	ActionBuy        Action = "BUY"
	ActionHold       Action = "HOLD"
	ActionSell       Action = "SELL"
	ActionStrongSell Action = "STRONG_SELL"
)

// Label returns the human-readable form, e.g. "STRONG BUY".
func (a Action) Label() string {
	switch a {
	case ActionStrongBuy:
		return "STRONG BUY"
	case ActionStrongSell:
		return "STRONG SELL"
	default:
		return string(a)
	}
}

// Recommendation pairs an action with its rationale.
type Recommendation struct {
	Action    Action
	Rationale string
}

func (r Recommendation) String() string {
	return r.Action.Label() + " (" + r.Rationale + ")"
}

// SentimentBars are bar widths in tenths of 100%.
// Buy and Sell are in [1,9] before volume amplification; Hold is whatever is left.
type SentimentBars struct {
	Buy  int
	Hold int
	Sell int
}

func (s SentimentBars) BuyPercent() int  { return s.Buy * 10 }
func (s SentimentBars) HoldPercent() int { return s.Hold * 10 }
func (s SentimentBars) SellPercent() int { return s.Sell * 10 }

// TrendView is the two-day price trend, one bar per $10.
type TrendView struct {
	CurrentBars   int
	PreviousBars  int
	ChangePercent float64
	ChangeLabel   string
}

// Signal is the final output of the strategy engine for one lookup.
type Signal struct {
	Snapshot       *Snapshot
	Recommendation Recommendation
	Sentiment      SentimentBars
	Trend          TrendView
}
