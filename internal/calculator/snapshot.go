package calculator

import "GoldSentinel/internal/model"

// Params configures indicator windows.
type Params struct {
	MAShort     int
	MALong      int
	RSIPeriod   int
	VolShort    int
	VolLong     int
	TrendPeriod int
	BandPeriod  int
	BandK       float64
}

// DefaultParams returns the standard windows: MA 5/20, RSI/vol/trend 14,
// long vol 50 and bands 20×2.
func DefaultParams() Params {
	return Params{
		MAShort:     5,
		MALong:      20,
		RSIPeriod:   14,
		VolShort:    14,
		VolLong:     50,
		TrendPeriod: 14,
		BandPeriod:  20,
		BandK:       2,
	}
}

// Compute recomputes every indicator from the full price series.
func Compute(prices []float64, p Params) model.IndicatorSnapshot {
	snap := model.IndicatorSnapshot{
		MAShort: optional(MovingAverage(prices, p.MAShort)),
		MALong:  optional(MovingAverage(prices, p.MALong)),
		MA20:    optional(MovingAverage(prices, 20)),
		RSI14:   optional(RelativeStrength(prices, p.RSIPeriod)),
		Vol14:   optional(Volatility(prices, p.VolShort)),
		Vol50:   optional(Volatility(prices, p.VolLong)),
		Trend14: optional(TrendStrength(prices, p.TrendPeriod)),
	}
	if b, ok := BollingerBands(prices, p.BandPeriod, p.BandK); ok {
		snap.Bands = &b
	}
	return snap
}

func optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}
