package balance

import (
	"context"

	"go.uber.org/zap"
)

// Source yields the balance snapshot the validator reads. Implementations
// must always return a usable snapshot; fetch failures fall back silently.
type Source interface {
	Snapshot(ctx context.Context) []Balance
}

// Fetcher is the upstream read this source depends on.
type Fetcher interface {
	Balances(ctx context.Context) ([]Balance, error)
}

type httpSource struct {
	fetcher  Fetcher
	fallback []Balance
	logger   *zap.Logger
}

// NewHTTPSource builds a fetch-or-default source: upstream first, fallback
// snapshot when the fetch fails or returns nothing.
func NewHTTPSource(fetcher Fetcher, fallback []Balance, logger ...*zap.Logger) Source {
	l := zap.L().Named("balance.source")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.source")
	}
	return &httpSource{fetcher: fetcher, fallback: fallback, logger: l}
}

func (s *httpSource) Snapshot(ctx context.Context) []Balance {
	balances, err := s.fetcher.Balances(ctx)
	if err != nil {
		s.logger.Debug("balance fetch failed, using fallback snapshot", zap.Error(err))
		return s.fallback
	}
	if len(balances) == 0 {
		return s.fallback
	}
	return balances
}

type staticSource struct {
	balances []Balance
}

// NewStaticSource wraps a fixed snapshot. Used for tests and offline mode.
func NewStaticSource(balances []Balance) Source {
	return &staticSource{balances: balances}
}

func (s *staticSource) Snapshot(context.Context) []Balance {
	return s.balances
}
