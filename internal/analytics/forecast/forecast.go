// Package forecast fits per-signal time-series models and produces
// short-horizon predictions with uncertainty bands and in-sample accuracy
// metrics.
package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics"
)

// ForecastPoint is a single predicted value with its uncertainty band.
type ForecastPoint struct {
	Time       time.Time `json:"time"`
	Value      float64   `json:"value"`
	LowerBound float64   `json:"lower_bound"`
	UpperBound float64   `json:"upper_bound"`
}

// Accuracy reports how well the fitted values matched the training actuals.
type Accuracy struct {
	MAE        float64 `json:"mae"`
	MAPE       float64 `json:"mape"`
	SampleSize int     `json:"sample_size"`
}

// Result is the outcome of one train-and-forecast call for one signal.
// A nil/empty Predictions slice is the valid "no forecast" terminal state
// for series below the minimum sample count; callers branch on emptiness.
type Result struct {
	Signal      string          `json:"signal"`
	Algorithm   string          `json:"algorithm"`
	Predictions []ForecastPoint `json:"predictions"`
	Fitted      []float64       `json:"fitted,omitempty"`
	Accuracy    Accuracy        `json:"accuracy"`
}

// Empty reports whether the call produced no forecast.
func (r *Result) Empty() bool {
	return len(r.Predictions) == 0
}

// Config holds forecasting parameters.
type Config struct {
	Horizon       int           // number of future points to produce
	MinDataPoints int           // below this, return an empty result
	Confidence    float64       // prediction interval confidence (0-1)
	Interval      time.Duration // cadence override; inferred when zero

	// SeasonalPeriods are the component lengths, in points, of the
	// decomposition: intra-hour, daily and weekly rhythms by default.
	// A period is only fit when the history covers it at least twice.
	SeasonalPeriods []int

	// Alpha is the smoothing factor of the exponential fallback.
	Alpha float64
}

// DefaultConfig returns default forecast configuration tuned for sub-daily
// physiological rhythms at an hourly cadence.
func DefaultConfig() Config {
	return Config{
		Horizon:         24,
		MinDataPoints:   10,
		Confidence:      0.95,
		SeasonalPeriods: []int{4, 24, 168},
		Alpha:           0.3,
	}
}

// Forecaster is implemented by all forecasting algorithms.
type Forecaster interface {
	Name() string
	Forecast(series analytics.VitalSeries, cfg Config) (*Result, error)
}

var forecasterRegistry = make(map[string]Forecaster)

// RegisterForecaster adds a forecaster to the registry.
func RegisterForecaster(name string, forecaster Forecaster) {
	forecasterRegistry[name] = forecaster
}

// GetForecaster returns a forecaster by name.
func GetForecaster(name string) (Forecaster, error) {
	if forecaster, ok := forecasterRegistry[name]; ok {
		return forecaster, nil
	}
	return nil, fmt.Errorf("unknown forecaster: %s", name)
}

// ListForecasters returns the available forecaster names.
func ListForecasters() []string {
	names := make([]string, 0, len(forecasterRegistry))
	for name := range forecasterRegistry {
		names = append(names, name)
	}
	return names
}

// MAE is the mean absolute error between actuals and fitted values.
func MAE(actual, fitted []float64) float64 {
	if len(actual) != len(fitted) || len(actual) == 0 {
		return 0
	}
	sum := 0.0
	for i := range actual {
		sum += math.Abs(actual[i] - fitted[i])
	}
	return sum / float64(len(actual))
}

// MAPE is the mean absolute percentage error. Points where the actual is
// exactly zero are excluded from the mean instead of propagating Inf/NaN.
func MAPE(actual, fitted []float64) float64 {
	if len(actual) != len(fitted) || len(actual) == 0 {
		return 0
	}
	sum, count := 0.0, 0
	for i := range actual {
		if actual[i] == 0 {
			continue
		}
		sum += math.Abs((actual[i] - fitted[i]) / actual[i])
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count) * 100
}

// predictionInterval returns bounds at the given confidence using a normal
// approximation.
func predictionInterval(value, stdError, confidence float64) (lower, upper float64) {
	var z float64
	switch {
	case confidence >= 0.99:
		z = 2.576
	case confidence >= 0.95:
		z = 1.96
	case confidence >= 0.90:
		z = 1.645
	default:
		z = 1.96
	}
	margin := z * stdError
	return value - margin, value + margin
}

// inferInterval derives the native sampling cadence from the history.
func inferInterval(series analytics.VitalSeries, override time.Duration) time.Duration {
	if override > 0 {
		return override
	}
	if len(series) >= 2 {
		if d := series[1].Time.Sub(series[0].Time); d > 0 {
			return d
		}
	}
	return time.Hour
}
