package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linear(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

func TestMovingAverage_Window(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5}

	_, ok := MovingAverage(prices, 6)
	assert.False(t, ok, "window longer than history must be undefined")

	_, ok = MovingAverage(nil, 1)
	assert.False(t, ok)

	_, ok = MovingAverage(prices, 0)
	assert.False(t, ok)

	ma, ok := MovingAverage(prices, 5)
	require.True(t, ok)
	assert.InDelta(t, 3.0, ma, 1e-9)

	ma, ok = MovingAverage(prices, 2)
	require.True(t, ok)
	assert.InDelta(t, 4.5, ma, 1e-9)
}

func TestRelativeStrength(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		want   float64
		ok     bool
	}{
		{"too short", linear(100, 1, 14), 0, false},
		{"only gains", linear(100, 1, 15), 100, true},
		{"flat", linear(100, 0, 15), 100, true},
		{"only losses", linear(100, -1, 15), 0, true},
		{"balanced", []float64{10, 11, 10}, 50, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period := 14
			if len(tt.prices) == 3 {
				period = 2
			}
			got, ok := RelativeStrength(tt.prices, period)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestRelativeStrength_UsesOnlyLastWindow(t *testing.T) {
	// An early crash outside the window must not affect the value.
	prices := append([]float64{500, 100}, linear(100, 2, 15)...)
	got, ok := RelativeStrength(prices, 14)
	require.True(t, ok)
	assert.Equal(t, 100.0, got)
}

func TestVolatility(t *testing.T) {
	_, ok := Volatility(linear(1000, 5, 14), 14)
	assert.False(t, ok)

	v, ok := Volatility(linear(1000, 5, 21), 14)
	require.True(t, ok)
	assert.InDelta(t, 5.0, v, 1e-9)

	v, ok = Volatility([]float64{10, 12, 9}, 2)
	require.True(t, ok)
	assert.InDelta(t, 2.5, v, 1e-9)
}

func TestTrendStrength(t *testing.T) {
	_, ok := TrendStrength(linear(1, 1, 14), 14)
	assert.False(t, ok)

	v, ok := TrendStrength(linear(1, 0, 15), 14)
	require.True(t, ok)
	assert.Equal(t, 0.0, v, "flat window has no directional movement")

	v, ok = TrendStrength(linear(1, 1, 15), 14)
	require.True(t, ok)
	assert.InDelta(t, 100.0, v, 1e-9)

	v, ok = TrendStrength([]float64{10, 11, 10, 11, 10}, 4)
	require.True(t, ok)
	assert.InDelta(t, 0.0, v, 1e-9)

	v, ok = TrendStrength([]float64{10, 13, 12}, 2)
	require.True(t, ok)
	// up=3 down=1 tr=4 -> dip=75 dim=25 -> 100*50/100
	assert.InDelta(t, 50.0, v, 1e-9)
}

func TestBollingerBands(t *testing.T) {
	_, ok := BollingerBands(linear(1, 1, 19), 20, 2)
	assert.False(t, ok)

	b, ok := BollingerBands([]float64{2, 4, 4, 4, 5, 5, 7, 9}, 8, 2)
	require.True(t, ok)
	assert.InDelta(t, 5.0, b.Mid, 1e-9)
	assert.InDelta(t, 9.0, b.Upper, 1e-9)
	assert.InDelta(t, 1.0, b.Lower, 1e-9)

	series := [][]float64{
		linear(1000, 5, 25),
		linear(1000, 0, 20),
		{1, 100, 3, 50, 2, 80, 7, 9, 1000, 4, 5, 6, 1, 2, 3, 4, 5, 6, 7, 8},
	}
	for _, s := range series {
		for _, k := range []float64{0, 1, 2, 3.5} {
			b, ok := BollingerBands(s, 20, k)
			require.True(t, ok)
			assert.LessOrEqual(t, b.Lower, b.Mid)
			assert.LessOrEqual(t, b.Mid, b.Upper)
		}
	}
}

func TestCompute_UndefinedIffWindowExceedsHistory(t *testing.T) {
	p := DefaultParams()

	empty := Compute(nil, p)
	assert.Nil(t, empty.MAShort)
	assert.Nil(t, empty.MALong)
	assert.Nil(t, empty.MA20)
	assert.Nil(t, empty.RSI14)
	assert.Nil(t, empty.Vol14)
	assert.Nil(t, empty.Vol50)
	assert.Nil(t, empty.Trend14)
	assert.Nil(t, empty.Bands)

	snap := Compute(linear(1000, 5, 21), p)
	require.NotNil(t, snap.MAShort)
	require.NotNil(t, snap.MALong)
	require.NotNil(t, snap.MA20)
	require.NotNil(t, snap.Vol14)
	require.NotNil(t, snap.Trend14)
	require.NotNil(t, snap.Bands)
	assert.Nil(t, snap.Vol50)

	assert.InDelta(t, 1090.0, *snap.MAShort, 1e-9)
	assert.InDelta(t, 1052.5, *snap.MALong, 1e-9)
	assert.InDelta(t, 5.0, *snap.Vol14, 1e-9)
	assert.InDelta(t, 100.0, *snap.RSI14, 1e-9)
}
