package calculator

// RelativeStrength computes a simple (non-smoothed) RSI from the last period
// price changes. Requires period+1 prices.
func RelativeStrength(prices []float64, period int) (float64, bool) {
	if !hasDiffWindow(prices, period) {
		return 0, false
	}

	var gain, loss float64
	for _, d := range lastDiffs(prices, period) {
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}

	if loss == 0 {
		return 100.0, true
	}
	rs := gain / loss
	return 100.0 - 100.0/(1.0+rs), true
}
