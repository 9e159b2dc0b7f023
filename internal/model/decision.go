package model

import "time"

// Regime labels the current market condition.
type Regime string

const (
	RegimeTrend          Regime = "trend"
	RegimeRange          Regime = "range"
	RegimeHighVolatility Regime = "high-volatility"
	RegimeNeutral        Regime = "neutral"
)

// Action is the recommendation emitted for a tick.
type Action string

const (
	ActionHold           Action = "hold"
	ActionNoTrade        Action = "no-trade"
	ActionStopLoss       Action = "stop-loss"
	ActionTakeProfit1    Action = "take-profit-1"
	ActionTakeProfit2    Action = "take-profit-2"
	ActionTrailingStop   Action = "trailing-stop"
	ActionTrendWeakening Action = "trend-weakening"
)

// Advice returns the human readable instruction for the action.
func (a Action) Advice() string {
	switch a {
	case ActionNoTrade:
		return "no-trade window"
	case ActionStopLoss:
		return "stop-loss: sell all"
	case ActionTakeProfit1:
		return "take-profit-1: sell half"
	case ActionTakeProfit2:
		return "take-profit-2: sell remainder"
	case ActionTrailingStop:
		return "trailing-stop: sell remainder"
	case ActionTrendWeakening:
		return "trend-weakening: reduce position"
	default:
		return "hold"
	}
}

// IsSell reports whether the action recommends selling.
func (a Action) IsSell() bool {
	switch a {
	case ActionStopLoss, ActionTakeProfit1, ActionTakeProfit2, ActionTrailingStop, ActionTrendWeakening:
		return true
	}
	return false
}

// Sold levels.
const (
	SoldNone = 0
	SoldHalf = 1
	SoldAll  = 2
)

// LevelSet holds the exit thresholds derived for a tick.
type LevelSet struct {
	Stop        float64 `json:"stop"`
	TakeProfit1 float64 `json:"take_profit_1"`
	TakeProfit2 float64 `json:"take_profit_2"`
	Volatility  float64 `json:"volatility"`
}

// DecisionState is the session-scoped sell progress.
type DecisionState struct {
	SoldLevel     int
	Peak          *float64
	LastProcessed time.Time
}

// Decision is the per-tick output of the decision engine.
type Decision struct {
	Time      time.Time         `json:"time"`
	Price     float64           `json:"price"`
	Aux       string            `json:"aux,omitempty"`
	Regime    Regime            `json:"regime"`
	Snapshot  IndicatorSnapshot `json:"snapshot"`
	Levels    LevelSet          `json:"levels"`
	Action    Action            `json:"action"`
	SoldLevel int               `json:"sold_level"`
	Peak      *float64          `json:"peak"`
	PnL       *float64          `json:"pnl"`
}
