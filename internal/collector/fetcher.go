package collector

import "context"

// Fetcher fetches the gold spot price in USD per troy ounce.
type Fetcher interface {
	FetchUSDPerOunce(ctx context.Context) (float64, error)
	Name() string
}

// RateProvider returns the USD→CNY exchange rate.
type RateProvider interface {
	USDToCNY(ctx context.Context) (float64, error)
}
