package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"GoldSentinel/internal/model"
)

// GramsPerOunce is the troy ounce in grams.
const GramsPerOunce = "31.1035"

// AlignInterval is the slot observations are stamped to.
const AlignInterval = 5 * time.Minute

var gramsPerOunce = decimal.RequireFromString(GramsPerOunce)

// MockFetcher returns a controllable fixed price for development and testing.
type MockFetcher struct {
	Price float64
	Err   error
	Calls int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchUSDPerOunce(_ context.Context) (float64, error) {
	m.Calls++
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Price, nil
}

// StaticRate is a RateProvider with a fixed rate.
type StaticRate float64

func (r StaticRate) USDToCNY(_ context.Context) (float64, error) { return float64(r), nil }

// Collector fetches a gold quote and converts it into an observation.
type Collector struct {
	Fetcher Fetcher
	Rates   RateProvider
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, rates RateProvider) *Collector {
	return &Collector{Fetcher: fetcher, Rates: rates}
}

// Collect fetches the USD/oz spot price and returns it as a CNY/g
// observation stamped at the 5-minute slot containing now.
func (c *Collector) Collect(ctx context.Context, now time.Time) (model.PriceObservation, error) {
	usd, err := c.Fetcher.FetchUSDPerOunce(ctx)
	if err != nil {
		return model.PriceObservation{}, fmt.Errorf("fetch gold price: %w", err)
	}
	rate, err := c.Rates.USDToCNY(ctx)
	if err != nil {
		return model.PriceObservation{}, fmt.Errorf("fetch exchange rate: %w", err)
	}

	usdD := decimal.NewFromFloat(usd).Round(2)
	return model.PriceObservation{
		Time:  AlignTime(now),
		Price: ConvertToCNYPerGram(usd, rate),
		Aux:   usdD.String() + " USD/oz",
	}, nil
}

// ConvertToCNYPerGram converts USD per troy ounce into CNY per gram,
// rounded to 2 decimals.
func ConvertToCNYPerGram(usdPerOunce, usdToCNY float64) float64 {
	v, _ := decimal.NewFromFloat(usdPerOunce).
		Div(gramsPerOunce).
		Mul(decimal.NewFromFloat(usdToCNY)).
		Round(2).
		Float64()
	return v
}

// AlignTime floors t to the 5-minute slot, dropping seconds.
func AlignTime(t time.Time) time.Time {
	slot := int(AlignInterval / time.Minute)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute()/slot*slot, 0, 0, t.Location())
}
