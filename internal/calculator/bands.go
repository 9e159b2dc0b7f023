package calculator

import (
	"math"

	"GoldSentinel/internal/model"
)

// BollingerBands computes mean ± k population standard deviations over the
// last period prices.
func BollingerBands(prices []float64, period int, k float64) (model.Bands, bool) {
	mean, ok := MovingAverage(prices, period)
	if !ok {
		return model.Bands{}, false
	}
	variance := 0.0
	for _, p := range prices[len(prices)-period:] {
		variance += (p - mean) * (p - mean)
	}
	sd := math.Sqrt(variance / float64(period))
	return model.Bands{Mid: mean, Upper: mean + k*sd, Lower: mean - k*sd}, true
}
