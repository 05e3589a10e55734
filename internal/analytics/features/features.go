// Package features derives rolling, clinical and time-based feature columns
// from a frame of raw vital-sign readings.
package features

import (
	"fmt"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics"
)

// Config holds feature engineering parameters.
type Config struct {
	// RollingWindows are the moving-average window sizes applied to every
	// present signal.
	RollingWindows []int

	// HRVWindow is the rolling window for the heart-rate variability proxy.
	HRVWindow int

	// TrendWindows are the extra rolling-mean windows for heart rate and
	// temperature.
	TrendWindows []int
}

// DefaultConfig returns the default feature configuration.
func DefaultConfig() Config {
	return Config{
		RollingWindows: []int{5, 10},
		HRVWindow:      5,
		TrendWindows:   []int{5, 15},
	}
}

// FeatureSet maps derived-feature names to per-row values, 1:1 aligned with
// the input frame. Numeric cells use the Undefined sentinel for rows without
// enough history; categorical cells use the empty string.
type FeatureSet struct {
	Rows        int
	Numeric     map[string][]float64
	Categorical map[string][]string
}

func newFeatureSet(rows int) *FeatureSet {
	return &FeatureSet{
		Rows:        rows,
		Numeric:     make(map[string][]float64),
		Categorical: make(map[string][]string),
	}
}

// Engine computes derived feature columns over a signal frame.
type Engine struct {
	cfg Config
}

// NewEngine creates a feature engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	if len(cfg.RollingWindows) == 0 {
		cfg.RollingWindows = DefaultConfig().RollingWindows
	}
	if cfg.HRVWindow <= 0 {
		cfg.HRVWindow = DefaultConfig().HRVWindow
	}
	if len(cfg.TrendWindows) == 0 {
		cfg.TrendWindows = DefaultConfig().TrendWindows
	}
	return &Engine{cfg: cfg}
}

// Compute derives all configured feature columns from the frame. Signals
// absent from the frame are silently skipped; unusable timestamps skip the
// whole time-feature block. The output always has one row per input row.
func (e *Engine) Compute(frame *Frame) *FeatureSet {
	fs := newFeatureSet(frame.Len())
	if frame.Len() == 0 {
		return fs
	}

	// Raw signal columns are carried through so downstream scoring can read
	// source values and derived columns from one place.
	for _, name := range analytics.Signals() {
		if col, ok := frame.Column(name); ok {
			copied := make([]float64, len(col))
			copy(copied, col)
			fs.Numeric[name] = copied
		}
	}

	e.computeRolling(frame, fs)
	e.computeClinical(frame, fs)
	e.computeTimeFeatures(frame, fs)

	return fs
}

// computeRolling adds the per-signal moving averages and the HRV proxy.
func (e *Engine) computeRolling(frame *Frame, fs *FeatureSet) {
	for _, name := range analytics.Signals() {
		col, ok := frame.Column(name)
		if !ok {
			continue
		}
		for _, w := range e.cfg.RollingWindows {
			fs.Numeric[fmt.Sprintf("%s_rolling_%d", name, w)] = rollingMean(col, w)
		}
	}

	if hr, ok := frame.Column(analytics.SignalHeartRate); ok {
		fs.Numeric["hrv"] = rollingStd(hr, e.cfg.HRVWindow)
	}
}

// rollingMean computes a simple moving average with min_periods=1: each row
// averages the values available in its trailing window, skipping missing
// cells. A window with no values yields Undefined.
func rollingMean(col []float64, window int) []float64 {
	out := make([]float64, len(col))
	for i := range col {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		sum, count := 0.0, 0
		for j := start; j <= i; j++ {
			if !IsUndefined(col[j]) {
				sum += col[j]
				count++
			}
		}
		if count == 0 {
			out[i] = Undefined
		} else {
			out[i] = sum / float64(count)
		}
	}
	return out
}

// rollingStd computes the sample standard deviation over a trailing window.
// Rows with fewer than 2 available samples are Undefined, never zero: an
// undefined variability must stay distinguishable from a flat signal.
func rollingStd(col []float64, window int) []float64 {
	out := make([]float64, len(col))
	for i := range col {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		values := make([]float64, 0, window)
		for j := start; j <= i; j++ {
			if !IsUndefined(col[j]) {
				values = append(values, col[j])
			}
		}
		if len(values) < 2 {
			out[i] = Undefined
		} else {
			out[i] = analytics.StdDev(values)
		}
	}
	return out
}

// lag shifts a column down by one row; the first row is Undefined.
func lag(col []float64) []float64 {
	out := make([]float64, len(col))
	if len(col) == 0 {
		return out
	}
	out[0] = Undefined
	for i := 1; i < len(col); i++ {
		out[i] = col[i-1]
	}
	return out
}

// diff returns col minus its lag; rows where either side is missing are
// Undefined.
func diff(col, lagged []float64) []float64 {
	out := make([]float64, len(col))
	for i := range col {
		if IsUndefined(col[i]) || IsUndefined(lagged[i]) {
			out[i] = Undefined
		} else {
			out[i] = col[i] - lagged[i]
		}
	}
	return out
}
