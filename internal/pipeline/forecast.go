package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics/anomaly"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics/forecast"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/models"
)

// Forecast trains per-signal models and screens each signal's history for
// anomalies. Signals run concurrently; a signal that cannot be forecast is
// simply absent from the result, it never fails the whole call.
func (p *Pipeline) Forecast(ctx context.Context, subjectID int, readings []models.Reading, horizonHours int) (*models.ForecastResponse, error) {
	if horizonHours <= 0 {
		horizonHours = p.cfg.ForecastHorizon
	}

	resp := &models.ForecastResponse{
		SubjectID:     subjectID,
		ForecastHours: horizonHours,
		Forecasts:     make(map[string]models.SignalForecast),
		Anomalies:     make(map[string]models.SignalAnomalies),
		GeneratedAt:   formatTime(time.Now()),
	}

	series := seriesBySignal(readings)
	if len(series) == 0 {
		return resp, nil
	}

	fcfg := forecast.DefaultConfig()
	fcfg.Horizon = horizonHours
	fcfg.MinDataPoints = p.cfg.ForecastMinPoints

	acfg := anomaly.DefaultConfig()
	acfg.Contamination = p.cfg.Contamination
	acfg.MinSamples = p.cfg.ForecastMinPoints

	var wg sync.WaitGroup
	var mu sync.Mutex
	for signal, points := range series {
		wg.Add(1)
		go func(signal string, points analytics.VitalSeries) {
			defer wg.Done()

			signalForecast, ok := p.forecastSignal(subjectID, signal, points, fcfg)
			report, anomalyErr := anomaly.Detect(p.cfg.AnomalyAlgorithm, signal, points, acfg)

			mu.Lock()
			defer mu.Unlock()
			if ok {
				resp.Forecasts[signal] = signalForecast
			}
			if anomalyErr != nil {
				p.log.Warn("Anomaly detection failed",
					"subject_id", subjectID,
					"signal", signal,
					"error", anomalyErr)
				return
			}
			resp.Anomalies[signal] = models.SignalAnomalies{
				Signal:            signal,
				AnomalyCount:      report.AnomalyCount,
				AnomalyPercentage: report.AnomalyPercentage,
				AnomalyValues:     report.AnomalyValues,
				AnomalyTimestamps: formatTimes(report.AnomalyTimestamps),
			}
		}(signal, points)
	}
	wg.Wait()

	return resp, ctx.Err()
}

// forecastSignal fits the seasonal model and caches it; irregular series
// that the decomposition rejects fall back to exponential smoothing.
func (p *Pipeline) forecastSignal(subjectID int, signal string, series analytics.VitalSeries, fcfg forecast.Config) (models.SignalForecast, bool) {
	if series.Len() < fcfg.MinDataPoints {
		return models.SignalForecast{}, false
	}

	model, err := forecast.Fit(series, fcfg)
	if err == nil {
		p.models.Put(subjectID, signal, model)
		return models.SignalForecast{
			Signal:      signal,
			Predictions: toBandPoints(model.Predict(fcfg.Horizon, fcfg.Confidence)),
			Accuracy:    toAccuracy(model.Accuracy()),
		}, true
	}

	forecaster, regErr := forecast.GetForecaster("exponential")
	if regErr != nil {
		return models.SignalForecast{}, false
	}
	result, err := forecaster.Forecast(series, fcfg)
	if err != nil || result.Empty() {
		return models.SignalForecast{}, false
	}
	return models.SignalForecast{
		Signal:      signal,
		Predictions: toBandPoints(result.Predictions),
		Accuracy:    toAccuracy(result.Accuracy),
	}, true
}

func toBandPoints(points []forecast.ForecastPoint) []models.ForecastBandPoint {
	out := make([]models.ForecastBandPoint, len(points))
	for i, point := range points {
		out[i] = models.ForecastBandPoint{
			Time:       formatTime(point.Time),
			Value:      point.Value,
			LowerBound: point.LowerBound,
			UpperBound: point.UpperBound,
		}
	}
	return out
}

func toAccuracy(a forecast.Accuracy) models.ForecastAccuracy {
	return models.ForecastAccuracy{MAE: a.MAE, MAPE: a.MAPE, SampleSize: a.SampleSize}
}

func formatTimes(times []time.Time) []string {
	if len(times) == 0 {
		return nil
	}
	out := make([]string, len(times))
	for i, t := range times {
		out[i] = formatTime(t)
	}
	return out
}
