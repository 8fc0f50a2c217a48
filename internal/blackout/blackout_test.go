package blackout_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/renzojacob/IntelliHRTrack/internal/blackout"

	"github.com/stretchr/testify/assert"
)

func date(v string) time.Time {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		panic(err)
	}
	return t
}

func TestPeriod_Overlaps(t *testing.T) {
	period := blackout.Period{
		Name:      "Year-End Closing",
		StartDate: "2023-12-25",
		EndDate:   "2024-01-02",
	}

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"fully before", "2023-12-01", "2023-12-24", false},
		{"fully after", "2024-01-03", "2024-01-10", false},
		{"touching the start boundary", "2023-12-20", "2023-12-25", true},
		{"touching the end boundary", "2024-01-02", "2024-01-05", true},
		{"straddling the start", "2023-12-24", "2023-12-26", true},
		{"inside the period", "2023-12-27", "2023-12-28", true},
		{"surrounding the period", "2023-12-20", "2024-01-10", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := period.Overlaps(date(tt.start), date(tt.end))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriod_OverlapsUnparseableDates(t *testing.T) {
	period := blackout.Period{Name: "Broken", StartDate: "soon", EndDate: "later"}
	assert.False(t, period.Overlaps(date("2024-01-01"), date("2024-12-31")))
}

type fakeFetcher struct {
	periodsFn func(ctx context.Context) ([]blackout.Period, error)
}

func (f *fakeFetcher) BlackoutPeriods(ctx context.Context) ([]blackout.Period, error) {
	return f.periodsFn(ctx)
}

func TestHTTPSource_Snapshot(t *testing.T) {
	ctx := context.Background()
	fallback := blackout.Defaults()

	t.Run("upstream registry wins when the fetch succeeds", func(t *testing.T) {
		upstreamData := []blackout.Period{{ID: "9", Name: "Inventory Week", StartDate: "2024-06-01", EndDate: "2024-06-07"}}
		src := blackout.NewHTTPSource(&fakeFetcher{
			periodsFn: func(ctx context.Context) ([]blackout.Period, error) { return upstreamData, nil },
		}, fallback)

		assert.Equal(t, upstreamData, src.Snapshot(ctx))
	})

	t.Run("fetch failure falls back silently", func(t *testing.T) {
		src := blackout.NewHTTPSource(&fakeFetcher{
			periodsFn: func(ctx context.Context) ([]blackout.Period, error) {
				return nil, errors.New("connection refused")
			},
		}, fallback)

		assert.Equal(t, fallback, src.Snapshot(ctx))
	})
}
