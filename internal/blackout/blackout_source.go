package blackout

import (
	"context"

	"go.uber.org/zap"
)

// Source yields the blackout registry snapshot the validator reads.
type Source interface {
	Snapshot(ctx context.Context) []Period
}

// Fetcher is the upstream read this source depends on.
type Fetcher interface {
	BlackoutPeriods(ctx context.Context) ([]Period, error)
}

type httpSource struct {
	fetcher  Fetcher
	fallback []Period
	logger   *zap.Logger
}

// NewHTTPSource builds a fetch-or-default source over the upstream
// blackout-periods endpoint.
func NewHTTPSource(fetcher Fetcher, fallback []Period, logger ...*zap.Logger) Source {
	l := zap.L().Named("blackout.source")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("blackout.source")
	}
	return &httpSource{fetcher: fetcher, fallback: fallback, logger: l}
}

func (s *httpSource) Snapshot(ctx context.Context) []Period {
	periods, err := s.fetcher.BlackoutPeriods(ctx)
	if err != nil {
		s.logger.Debug("blackout fetch failed, using fallback registry", zap.Error(err))
		return s.fallback
	}
	if len(periods) == 0 {
		return s.fallback
	}
	return periods
}

type staticSource struct {
	periods []Period
}

// NewStaticSource wraps a fixed registry. Used for tests and offline mode.
func NewStaticSource(periods []Period) Source {
	return &staticSource{periods: periods}
}

func (s *staticSource) Snapshot(context.Context) []Period {
	return s.periods
}
