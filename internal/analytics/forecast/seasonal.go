package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics"
)

func init() {
	RegisterForecaster("seasonal_decomposition", &SeasonalForecaster{})
}

// SeasonalForecaster fits a linear trend plus additive seasonal indices at a
// handful of fixed periods. Each period is only fit when the history covers
// it at least twice; components that cannot be fit are skipped, so short
// histories degrade gracefully to a plain trend fit.
type SeasonalForecaster struct{}

// Name returns the forecaster identifier.
func (f *SeasonalForecaster) Name() string {
	return "seasonal_decomposition"
}

// Model is a fitted seasonal decomposition. Models are immutable after Fit
// and safe for concurrent Predict calls.
type Model struct {
	intercept   float64
	slope       float64
	periods     []int
	seasonal    map[int][]float64
	residualStd float64
	n           int
	lastTime    time.Time
	interval    time.Duration
	fitted      []float64
	accuracy    Accuracy
}

// Accuracy returns the in-sample fit metrics.
func (m *Model) Accuracy() Accuracy {
	return m.accuracy
}

// Fitted returns the in-sample fitted values, aligned with the training
// series.
func (m *Model) Fitted() []float64 {
	return m.fitted
}

// Fit trains a seasonal decomposition model on the series. The series must
// hold at least cfg.MinDataPoints observations; callers below that threshold
// should treat the signal as unforecastable rather than call Fit.
func Fit(series analytics.VitalSeries, cfg Config) (*Model, error) {
	n := len(series)
	if n < 2 {
		return nil, fmt.Errorf("seasonal fit needs at least 2 points, got %d", n)
	}

	values := make([]float64, n)
	for i, p := range series {
		values[i] = p.Value
	}

	// Least squares linear trend over the sample index.
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	slope := 0.0
	if denom != 0 {
		slope = (fn*sumXY - sumX*sumY) / denom
	}
	intercept := (sumY - slope*sumX) / fn

	resid := make([]float64, n)
	for i, v := range values {
		resid[i] = v - (intercept + slope*float64(i))
	}

	// Peel off each seasonal component in turn from what the previous
	// components left behind.
	seasonal := make(map[int][]float64)
	var periods []int
	for _, period := range cfg.SeasonalPeriods {
		if period < 2 || n < 2*period {
			continue
		}
		idx := make([]float64, period)
		counts := make([]int, period)
		for i, r := range resid {
			phase := i % period
			idx[phase] += r
			counts[phase]++
		}
		for phase := range idx {
			if counts[phase] > 0 {
				idx[phase] /= float64(counts[phase])
			}
		}
		for i := range resid {
			resid[i] -= idx[i%period]
		}
		seasonal[period] = idx
		periods = append(periods, period)
	}

	var sumSq float64
	for _, r := range resid {
		sumSq += r * r
	}
	residualStd := 0.0
	if n > 1 {
		residualStd = math.Sqrt(sumSq / float64(n-1))
	}

	fitted := make([]float64, n)
	for i, v := range values {
		fitted[i] = v - resid[i]
	}

	m := &Model{
		intercept:   intercept,
		slope:       slope,
		periods:     periods,
		seasonal:    seasonal,
		residualStd: residualStd,
		n:           n,
		lastTime:    series[n-1].Time,
		interval:    inferInterval(series, cfg.Interval),
		fitted:      fitted,
	}
	m.accuracy = Accuracy{
		MAE:        MAE(values, fitted),
		MAPE:       MAPE(values, fitted),
		SampleSize: n,
	}
	return m, nil
}

// Predict produces horizon future points. Bands widen with the forecast
// distance since uncertainty compounds over the horizon.
func (m *Model) Predict(horizon int, confidence float64) []ForecastPoint {
	if horizon <= 0 {
		return nil
	}
	points := make([]ForecastPoint, 0, horizon)
	for k := 1; k <= horizon; k++ {
		i := m.n - 1 + k
		value := m.intercept + m.slope*float64(i)
		for _, period := range m.periods {
			value += m.seasonal[period][i%period]
		}
		stdError := m.residualStd * math.Sqrt(float64(k))
		lower, upper := predictionInterval(value, stdError, confidence)
		points = append(points, ForecastPoint{
			Time:       m.lastTime.Add(time.Duration(k) * m.interval),
			Value:      value,
			LowerBound: lower,
			UpperBound: upper,
		})
	}
	return points
}

// Forecast implements the Forecaster interface: fit then predict, returning
// an empty result when the history is below the minimum.
func (f *SeasonalForecaster) Forecast(series analytics.VitalSeries, cfg Config) (*Result, error) {
	result := &Result{Algorithm: f.Name()}
	if len(series) < cfg.MinDataPoints {
		return result, nil
	}
	model, err := Fit(series, cfg)
	if err != nil {
		return nil, err
	}
	result.Predictions = model.Predict(cfg.Horizon, cfg.Confidence)
	result.Fitted = model.Fitted()
	result.Accuracy = model.Accuracy()
	return result, nil
}
