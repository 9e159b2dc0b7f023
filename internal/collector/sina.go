package collector

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// SinaFetcher implements Fetcher using the Sina Finance COMEX gold quote.
// The quote body looks like: var hf_GC="2650.10,2651.00,...";
type SinaFetcher struct {
	httpSource
	BaseURL string
}

// NewSinaFetcher creates a Sina fetcher with optional proxy support.
func NewSinaFetcher(baseURL, proxyURL string) *SinaFetcher {
	return &SinaFetcher{
		httpSource: newHTTPSource(proxyURL),
		BaseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (f *SinaFetcher) Name() string { return "sina" }

func (f *SinaFetcher) FetchUSDPerOunce(ctx context.Context) (float64, error) {
	header := http.Header{}
	header.Set("Referer", "https://finance.sina.com.cn/")
	body, err := f.get(ctx, f.BaseURL+"/list=hf_GC", header)
	if err != nil {
		return 0, fmt.Errorf("sina fetch: %w", err)
	}
	price, err := parseSinaQuote(string(body))
	if err != nil {
		return 0, fmt.Errorf("sina: %w", err)
	}
	return price, nil
}

func parseSinaQuote(body string) (float64, error) {
	if !strings.Contains(body, "hf_GC") {
		return 0, fmt.Errorf("unexpected quote body")
	}
	_, quoted, found := strings.Cut(strings.TrimSpace(body), "=")
	if !found {
		return 0, fmt.Errorf("malformed quote body")
	}
	fields := strings.Split(strings.Trim(quoted, "\";\r\n "), ",")
	price, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return 0, fmt.Errorf("parse price: %w", err)
	}
	if price <= 0 {
		return 0, fmt.Errorf("non-positive price %v", price)
	}
	return price, nil
}
