package features

import (
	"math"
	"sort"
	"time"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/models"
)

// Undefined is the sentinel for "no value" in numeric columns. It is NaN so
// that it can never be confused with a measured zero.
var Undefined = math.NaN()

// IsUndefined reports whether a numeric cell holds no value.
func IsUndefined(v float64) bool {
	return math.IsNaN(v)
}

// Frame is an ordered snapshot of readings for one subject, indexed by
// timestamp with one column per signal. It is owned by a single pipeline
// invocation and is never shared across calls.
type Frame struct {
	Times   []time.Time
	columns map[string][]float64

	// timesValid is false when any reading carried an unusable timestamp.
	// Time-based features are then skipped for the whole frame.
	timesValid bool
}

// NewFrame builds a frame from raw readings, sorted ascending by timestamp.
// The readings themselves are copied into columns and never mutated.
func NewFrame(readings []models.Reading) *Frame {
	sorted := make([]models.Reading, len(readings))
	copy(sorted, readings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	f := &Frame{
		Times:      make([]time.Time, len(sorted)),
		columns:    make(map[string][]float64),
		timesValid: true,
	}

	for _, name := range analytics.Signals() {
		col := make([]float64, len(sorted))
		present := false
		for i, r := range sorted {
			if v, ok := r.Signal(name); ok {
				col[i] = v
				present = true
			} else {
				col[i] = Undefined
			}
		}
		if present {
			f.columns[name] = col
		}
	}

	for i, r := range sorted {
		f.Times[i] = r.Timestamp
		if r.Timestamp.IsZero() {
			f.timesValid = false
		}
	}

	return f
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.Times)
}

// Column returns the values for a signal and whether the signal is present.
func (f *Frame) Column(name string) ([]float64, bool) {
	col, ok := f.columns[name]
	return col, ok
}

// HasSignal reports whether the frame carries any measurement for the signal.
func (f *Frame) HasSignal(name string) bool {
	_, ok := f.columns[name]
	return ok
}

// Series extracts the non-missing (time, value) pairs for one signal.
func (f *Frame) Series(name string) analytics.VitalSeries {
	col, ok := f.columns[name]
	if !ok {
		return nil
	}
	series := make(analytics.VitalSeries, 0, len(col))
	for i, v := range col {
		if !IsUndefined(v) {
			series = append(series, analytics.VitalPoint{Time: f.Times[i], Value: v})
		}
	}
	return series
}
