// Package analytics provides the shared types and numeric helpers used by the
// feature, scoring, anomaly, forecast and trend packages.
package analytics

import (
	"math"
	"sort"
	"time"
)

// Signal names as stored in the vitals store. Every analytic component
// addresses physiological channels by these keys.
const (
	SignalHeartRate        = "heart_rate"
	SignalSystolic         = "systolic"
	SignalDiastolic        = "diastolic"
	SignalTemperature      = "temperature"
	SignalRespiration      = "respiration"
	SignalOxygenSaturation = "oxygen_saturation"
)

// Signals lists all known signal names in canonical order.
func Signals() []string {
	return []string{
		SignalHeartRate,
		SignalSystolic,
		SignalDiastolic,
		SignalTemperature,
		SignalRespiration,
		SignalOxygenSaturation,
	}
}

// VitalPoint is a single timestamped measurement of one signal.
type VitalPoint struct {
	Time  time.Time
	Value float64
}

// VitalSeries is an ordered collection of measurements for one subject/signal
// pair. Consumers must not assume the input is sorted; call Sort first.
type VitalSeries []VitalPoint

// Sort orders the series ascending by timestamp. Sorting is stable so
// duplicate timestamps keep their ingestion order.
func (s VitalSeries) Sort() {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Time.Before(s[j].Time) })
}

// Values extracts just the measurement values.
func (s VitalSeries) Values() []float64 {
	values := make([]float64, len(s))
	for i, p := range s {
		values[i] = p.Value
	}
	return values
}

// Times extracts just the timestamps.
func (s VitalSeries) Times() []time.Time {
	times := make([]time.Time, len(s))
	for i, p := range s {
		times[i] = p.Time
	}
	return times
}

// Len returns the number of measurements.
func (s VitalSeries) Len() int {
	return len(s)
}

// Mean returns the arithmetic mean of the series values.
func (s VitalSeries) Mean() float64 {
	return Mean(s.Values())
}

// StdDev returns the sample standard deviation of the series values.
func (s VitalSeries) StdDev() float64 {
	return StdDev(s.Values())
}

// Mean returns the arithmetic mean of the values, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the sample standard deviation (n-1 denominator).
// Slices with fewer than 2 values have no defined spread and return 0.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}

// MinMax returns the smallest and largest values, (0, 0) for an empty slice.
func MinMax(values []float64) (min, max float64) {
	if len(values) == 0 {
		return 0, 0
	}
	min, max = values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
