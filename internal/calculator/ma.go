package calculator

// MovingAverage computes the simple moving average of the last period prices.
// ok is false when fewer than period prices are available.
func MovingAverage(prices []float64, period int) (float64, bool) {
	if period <= 0 || len(prices) < period {
		return 0, false
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), true
}

// lastDiffs returns the last n consecutive differences of prices.
// Callers must ensure len(prices) >= n+1.
func lastDiffs(prices []float64, n int) []float64 {
	diffs := make([]float64, n)
	start := len(prices) - n
	for i := range diffs {
		diffs[i] = prices[start+i] - prices[start+i-1]
	}
	return diffs
}

// hasDiffWindow reports whether n differences can be taken from prices.
func hasDiffWindow(prices []float64, period int) bool {
	return period > 0 && len(prices) >= period+1
}
