package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// httpSource is the shared HTTP plumbing of the remote sources: a proxied
// client with a timeout and a per-source request rate limit.
type httpSource struct {
	Client  *http.Client
	Limiter *rate.Limiter
}

func newHTTPSource(proxyURL string) httpSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return httpSource{
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
		Limiter: rate.NewLimiter(rate.Every(time.Second), 2),
	}
}

// get performs a rate-limited GET and returns the body of a 200 response.
func (s httpSource) get(ctx context.Context, endpoint string, header http.Header) ([]byte, error) {
	if err := s.Limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
