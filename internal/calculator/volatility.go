package calculator

import "math"

// Volatility is the mean absolute price change over the last period changes.
// It stands in for ATR since ticks carry no high/low.
func Volatility(prices []float64, period int) (float64, bool) {
	if !hasDiffWindow(prices, period) {
		return 0, false
	}
	sum := 0.0
	for _, d := range lastDiffs(prices, period) {
		sum += math.Abs(d)
	}
	return sum / float64(period), true
}

// TrendStrength measures directional dominance (0~100) over the last period
// changes, an ADX approximation built from close-to-close moves.
func TrendStrength(prices []float64, period int) (float64, bool) {
	if !hasDiffWindow(prices, period) {
		return 0, false
	}

	var up, down, tr float64
	for _, d := range lastDiffs(prices, period) {
		if d > 0 {
			up += d
		} else {
			down -= d
		}
		tr += math.Abs(d)
	}
	if tr == 0 {
		return 0, true
	}

	dip := 100 * up / tr
	dim := 100 * down / tr
	if dip+dim == 0 {
		return 0, true
	}
	return 100 * math.Abs(dip-dim) / (dip + dim), true
}
