package model

// Bands holds a Bollinger band triple.
type Bands struct {
	Mid   float64 `json:"mid"`
	Upper float64 `json:"upper"`
	Lower float64 `json:"lower"`
}

// Width returns (upper-lower)/mid. ok is false when mid is zero.
func (b Bands) Width() (float64, bool) {
	if b.Mid == 0 {
		return 0, false
	}
	return (b.Upper - b.Lower) / b.Mid, true
}

// IndicatorSnapshot holds all indicators computed for one tick.
// A nil field means the history was shorter than the indicator's window.
type IndicatorSnapshot struct {
	MAShort *float64 `json:"ma_short"`
	MALong  *float64 `json:"ma_long"`
	MA20    *float64 `json:"ma20"`
	RSI14   *float64 `json:"rsi14"`
	Vol14   *float64 `json:"vol14"`
	Vol50   *float64 `json:"vol50"`
	Trend14 *float64 `json:"trend14"`
	Bands   *Bands   `json:"bands"`
}
