package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/aggregation"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics/trend"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/models"
)

// Summary composes the long-window trend characterization with a short-
// window hourly rollup.
func (p *Pipeline) Summary(ctx context.Context, subjectID int, trendReadings, rollupReadings []models.Reading) (*models.SummaryResponse, error) {
	resp := &models.SummaryResponse{
		SubjectID:        subjectID,
		AnalysisPeriod:   fmt.Sprintf("%dd", p.cfg.SummaryTrendDays),
		Trends:           make(map[string]models.SignalTrend),
		HourlyDataPoints: len(rollupReadings),
		LastUpdated:      formatTime(time.Now()),
	}

	for signal, series := range seriesBySignal(trendReadings) {
		summary := p.trends.Analyze(signal, series)
		min, max := analytics.MinMax(series.Values())
		resp.Trends[signal] = models.SignalTrend{
			Signal:     signal,
			Mean:       series.Mean(),
			Std:        series.StdDev(),
			Min:        min,
			Max:        max,
			Direction:  summary.Direction,
			Volatility: summary.Volatility,
			DataPoints: summary.SampleSize,
			Changes:    toTrendChanges(summary.Changes),
		}
	}

	buckets := aggregation.Rollup(seriesBySignal(rollupReadings), aggregation.LevelHourly)
	resp.HourlyRollups = toRollupRows(buckets)

	return resp, ctx.Err()
}

func toTrendChanges(changes []trend.Change) []models.TrendChange {
	if len(changes) == 0 {
		return nil
	}
	out := make([]models.TrendChange, len(changes))
	for i, change := range changes {
		out[i] = models.TrendChange{
			Position:    change.Position,
			Timestamp:   formatTime(change.Timestamp),
			Magnitude:   change.Magnitude,
			BeforeValue: change.BeforeValue,
			AfterValue:  change.AfterValue,
		}
	}
	return out
}

func toRollupRows(buckets []aggregation.Bucket) []models.HourlyRollupRow {
	if len(buckets) == 0 {
		return nil
	}
	rows := make([]models.HourlyRollupRow, len(buckets))
	for i, bucket := range buckets {
		signals := make(map[string]models.RollupSignalStats, len(bucket.Signals))
		for signal, stats := range bucket.Signals {
			signals[signal] = models.RollupSignalStats{
				Mean:  stats.Mean,
				Min:   stats.Min,
				Max:   stats.Max,
				Std:   stats.Std,
				Count: stats.Count,
			}
		}
		rows[i] = models.HourlyRollupRow{
			Hour:    formatTime(bucket.Start),
			Signals: signals,
		}
	}
	return rows
}
