// Package aggregation reduces raw vital readings to calendar-bucketed
// statistical rollups.
package aggregation

import (
	"sort"
	"time"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics"
)

// Level selects the calendar bucket size of a rollup.
type Level string

// Supported rollup levels.
const (
	LevelHourly Level = "hourly"
	LevelDaily  Level = "daily"
)

// SignalStats holds the per-bucket statistics of one signal. Std is nil when
// the bucket holds fewer than two samples, since spread is undefined there.
type SignalStats struct {
	Mean  float64  `json:"mean"`
	Min   float64  `json:"min"`
	Max   float64  `json:"max"`
	Std   *float64 `json:"std,omitempty"`
	Count int      `json:"count"`
}

// Bucket is one populated calendar bucket. Buckets with no samples are never
// emitted, so a sparse day yields a sparse rollup.
type Bucket struct {
	Start   time.Time              `json:"start"`
	Signals map[string]SignalStats `json:"signals"`
}

// Rollup aggregates per-signal series into calendar buckets at the given
// level. The output is ordered by bucket start time and contains only
// buckets where at least one signal had a sample.
func Rollup(series map[string]analytics.VitalSeries, level Level) []Bucket {
	buckets := make(map[time.Time]map[string][]float64)
	for signal, points := range series {
		for _, p := range points {
			start := truncate(p.Time, level)
			if buckets[start] == nil {
				buckets[start] = make(map[string][]float64)
			}
			buckets[start][signal] = append(buckets[start][signal], p.Value)
		}
	}

	starts := make([]time.Time, 0, len(buckets))
	for start := range buckets {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	out := make([]Bucket, 0, len(starts))
	for _, start := range starts {
		stats := make(map[string]SignalStats, len(buckets[start]))
		for signal, values := range buckets[start] {
			stats[signal] = summarize(values)
		}
		out = append(out, Bucket{Start: start, Signals: stats})
	}
	return out
}

func truncate(t time.Time, level Level) time.Time {
	t = t.UTC()
	switch level {
	case LevelDaily:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, time.UTC)
	}
}

func summarize(values []float64) SignalStats {
	min, max := analytics.MinMax(values)
	stats := SignalStats{
		Mean:  analytics.Mean(values),
		Min:   min,
		Max:   max,
		Count: len(values),
	}
	if len(values) >= 2 {
		std := analytics.StdDev(values)
		stats.Std = &std
	}
	return stats
}

// WindowEnd returns the exclusive end of a query window beginning at the
// start of day: the start of the following day.
func WindowEnd(day time.Time) time.Time {
	day = day.UTC()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return start.AddDate(0, 0, 1)
}
