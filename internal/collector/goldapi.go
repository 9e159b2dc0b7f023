package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// GoldAPIFetcher implements Fetcher using the gold-api.com XAU endpoint.
type GoldAPIFetcher struct {
	httpSource
	BaseURL string
	Token   string
}

// NewGoldAPIFetcher creates a fetcher with optional proxy support.
func NewGoldAPIFetcher(baseURL, token, proxyURL string) *GoldAPIFetcher {
	return &GoldAPIFetcher{
		httpSource: newHTTPSource(proxyURL),
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
	}
}

func (f *GoldAPIFetcher) Name() string { return "gold-api" }

func (f *GoldAPIFetcher) FetchUSDPerOunce(ctx context.Context) (float64, error) {
	header := http.Header{}
	if f.Token != "" {
		header.Set("x-access-token", f.Token)
	}
	body, err := f.get(ctx, f.BaseURL+"/price/XAU", header)
	if err != nil {
		return 0, fmt.Errorf("gold-api fetch: %w", err)
	}
	var result struct {
		Price *float64 `json:"price"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, fmt.Errorf("gold-api decode: %w", err)
	}
	if result.Price == nil || *result.Price <= 0 {
		return 0, fmt.Errorf("gold-api: no price in response")
	}
	return *result.Price, nil
}
