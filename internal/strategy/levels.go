package strategy

import (
	"math"

	"GoldSentinel/internal/model"
)

// Multipliers scales volatility into exit thresholds.
type Multipliers struct {
	Stop         float64 `yaml:"stop"`
	TakeProfit1  float64 `yaml:"take_profit_1"`
	TakeProfit2  float64 `yaml:"take_profit_2"`
	TrailingStop float64 `yaml:"trailing_stop"`
}

// DefaultMultipliers returns stop 3×, TP1 2×, TP2 3.5× and trailing 2×.
func DefaultMultipliers() Multipliers {
	return Multipliers{Stop: 3, TakeProfit1: 2, TakeProfit2: 3.5, TrailingStop: 2}
}

// ComputeLevels derives stop and take-profit prices.
//
// The baseline is the cost basis when known, else MA20, else the current
// price. Volatility falls back to the distance between price and baseline,
// and to 1 when that is zero too.
func ComputeLevels(price float64, costBasis *float64, snap model.IndicatorSnapshot, m Multipliers) model.LevelSet {
	baseline := price
	switch {
	case costBasis != nil:
		baseline = *costBasis
	case snap.MA20 != nil:
		baseline = *snap.MA20
	}

	var vol float64
	switch {
	case snap.Vol14 != nil:
		vol = *snap.Vol14
	case math.Abs(price-baseline) != 0:
		vol = math.Abs(price - baseline)
	default:
		vol = 1
	}

	return model.LevelSet{
		Stop:        baseline - m.Stop*vol,
		TakeProfit1: baseline + m.TakeProfit1*vol,
		TakeProfit2: baseline + m.TakeProfit2*vol,
		Volatility:  vol,
	}
}
