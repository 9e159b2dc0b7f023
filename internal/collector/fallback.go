package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"GoldSentinel/internal/metrics"
)

// FallbackFetcher tries each source in order and returns the first price.
// Every source sits behind its own circuit breaker so a dead endpoint is
// skipped until its cool-down elapses.
type FallbackFetcher struct {
	sources  []Fetcher
	breakers []*gobreaker.CircuitBreaker
}

// NewFallbackFetcher wraps sources in priority order.
func NewFallbackFetcher(sources ...Fetcher) *FallbackFetcher {
	f := &FallbackFetcher{sources: sources}
	for _, s := range sources {
		f.breakers = append(f.breakers, newBreaker(s.Name()))
	}
	return f
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:     name,
		Interval: 10 * time.Minute,
		Timeout:  5 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("source", name).Str("from", from.String()).Str("to", to.String()).
				Msg("price source breaker state changed")
		},
	})
}

func (f *FallbackFetcher) Name() string { return "fallback" }

func (f *FallbackFetcher) FetchUSDPerOunce(ctx context.Context) (float64, error) {
	var errs []error
	for i, src := range f.sources {
		v, err := f.breakers[i].Execute(func() (interface{}, error) {
			return src.FetchUSDPerOunce(ctx)
		})
		if err != nil {
			metrics.FetchErrors.WithLabelValues(src.Name()).Inc()
			log.Warn().Err(err).Str("source", src.Name()).Msg("price source failed")
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		return v.(float64), nil
	}
	if len(errs) == 0 {
		return 0, errors.New("no price source configured")
	}
	return 0, fmt.Errorf("all price sources failed: %w", errors.Join(errs...))
}
