package model

import "time"

// PriceObservation is a single recorded gold quote.
type PriceObservation struct {
	Time  time.Time
	Price float64 // CNY per gram
	Aux   string  // secondary quote as logged, e.g. "2650.1 USD/oz"
}

// PriceHistory is the chronological series of observations for one session.
type PriceHistory []PriceObservation

// Prices extracts the CNY/g series.
func (h PriceHistory) Prices() []float64 {
	prices := make([]float64, len(h))
	for i, o := range h {
		prices[i] = o.Price
	}
	return prices
}

// Last returns the newest observation.
func (h PriceHistory) Last() (PriceObservation, bool) {
	if len(h) == 0 {
		return PriceObservation{}, false
	}
	return h[len(h)-1], true
}
