package strategy

import "GoldSentinel/internal/model"

// Regime thresholds.
const (
	TrendThreshold    = 25.0
	RangeWidthRatio   = 0.01
	HighVolMultiplier = 1.3
)

// ClassifyRegime labels the market from an indicator snapshot.
// Rules are checked in order; an undefined input disqualifies its rule.
func ClassifyRegime(snap model.IndicatorSnapshot) model.Regime {
	if snap.Trend14 != nil && *snap.Trend14 > TrendThreshold &&
		snap.MAShort != nil && snap.MALong != nil {
		return model.RegimeTrend
	}
	if snap.Bands != nil {
		if w, ok := snap.Bands.Width(); ok && w < RangeWidthRatio {
			return model.RegimeRange
		}
	}
	if snap.Vol14 != nil && snap.Vol50 != nil && *snap.Vol14 > HighVolMultiplier*(*snap.Vol50) {
		return model.RegimeHighVolatility
	}
	return model.RegimeNeutral
}
