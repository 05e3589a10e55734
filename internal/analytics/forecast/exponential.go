package forecast

import (
	"math"
	"time"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics"
)

func init() {
	RegisterForecaster("exponential", &ExponentialForecaster{})
}

// ExponentialForecaster implements simple exponential smoothing. It carries
// no seasonal structure and serves as the fallback when histories are too
// short or too irregular for the seasonal decomposition.
type ExponentialForecaster struct{}

// Name returns the forecaster identifier.
func (f *ExponentialForecaster) Name() string {
	return "exponential"
}

// Forecast produces a flat-level forecast from the smoothed series.
func (f *ExponentialForecaster) Forecast(series analytics.VitalSeries, cfg Config) (*Result, error) {
	result := &Result{Algorithm: f.Name()}
	if len(series) < cfg.MinDataPoints {
		return result, nil
	}

	alpha := cfg.Alpha
	if alpha <= 0 || alpha >= 1 {
		alpha = 0.3
	}

	fitted := make([]float64, len(series))
	level := series[0].Value
	fitted[0] = level
	for i := 1; i < len(series); i++ {
		fitted[i] = level
		level = alpha*series[i].Value + (1-alpha)*level
	}

	actual := make([]float64, len(series))
	for i, p := range series {
		actual[i] = p.Value
	}

	// Residual spread drives the band width.
	var sumSq float64
	for i := range actual {
		d := actual[i] - fitted[i]
		sumSq += d * d
	}
	stdError := math.Sqrt(sumSq / float64(len(actual)))

	interval := inferInterval(series, cfg.Interval)
	last := series[len(series)-1].Time
	predictions := make([]ForecastPoint, 0, cfg.Horizon)
	for k := 1; k <= cfg.Horizon; k++ {
		margin := stdError * math.Sqrt(float64(k))
		lower, upper := predictionInterval(level, margin, cfg.Confidence)
		predictions = append(predictions, ForecastPoint{
			Time:       last.Add(time.Duration(k) * interval),
			Value:      level,
			LowerBound: lower,
			UpperBound: upper,
		})
	}

	result.Predictions = predictions
	result.Fitted = fitted
	result.Accuracy = Accuracy{
		MAE:        MAE(actual, fitted),
		MAPE:       MAPE(actual, fitted),
		SampleSize: len(actual),
	}
	return result, nil
}
