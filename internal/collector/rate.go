package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ExchangeRateFetcher implements RateProvider with exchangerate-api.com.
type ExchangeRateFetcher struct {
	httpSource
	BaseURL string
}

// NewExchangeRateFetcher creates a rate fetcher with optional proxy support.
func NewExchangeRateFetcher(baseURL, proxyURL string) *ExchangeRateFetcher {
	return &ExchangeRateFetcher{
		httpSource: newHTTPSource(proxyURL),
		BaseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (f *ExchangeRateFetcher) USDToCNY(ctx context.Context) (float64, error) {
	body, err := f.get(ctx, f.BaseURL+"/v4/latest/USD", nil)
	if err != nil {
		return 0, fmt.Errorf("fetch rate: %w", err)
	}
	var result struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, fmt.Errorf("decode rate: %w", err)
	}
	cny, ok := result.Rates["CNY"]
	if !ok || cny <= 0 {
		return 0, fmt.Errorf("no CNY rate in response")
	}
	return cny, nil
}

// CachedRateProvider caches an upstream rate for TTL. When a refresh fails
// it serves the last good value, and the fallback rate when there is none.
type CachedRateProvider struct {
	Upstream RateProvider
	TTL      time.Duration
	Fallback float64
	Now      func() time.Time

	mu        sync.Mutex
	value     float64
	fetchedAt time.Time
}

// NewCachedRateProvider wraps upstream with a TTL cache.
func NewCachedRateProvider(upstream RateProvider, ttl time.Duration, fallback float64) *CachedRateProvider {
	return &CachedRateProvider{Upstream: upstream, TTL: ttl, Fallback: fallback, Now: time.Now}
}

// Expired reports whether the cached value must be refreshed at t.
func (c *CachedRateProvider) Expired(t time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expired(t)
}

func (c *CachedRateProvider) expired(t time.Time) bool {
	return c.value == 0 || t.Sub(c.fetchedAt) >= c.TTL
}

func (c *CachedRateProvider) USDToCNY(ctx context.Context) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.Now()
	if !c.expired(now) {
		return c.value, nil
	}
	v, err := c.Upstream.USDToCNY(ctx)
	if err != nil {
		if c.value != 0 {
			log.Warn().Err(err).Float64("rate", c.value).Msg("rate refresh failed, using cached rate")
			return c.value, nil
		}
		log.Warn().Err(err).Float64("rate", c.Fallback).Msg("rate fetch failed, using fallback rate")
		return c.Fallback, nil
	}
	c.value = v
	c.fetchedAt = now
	return v, nil
}
