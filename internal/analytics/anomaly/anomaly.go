// Package anomaly provides univariate outlier detection over vital-sign
// series. Detectors are trained fresh on each call; nothing survives between
// invocations.
package anomaly

import (
	"fmt"
	"time"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics"
)

// DetectorConfig holds configuration for anomaly detection.
type DetectorConfig struct {
	// Contamination is the expected fraction of outliers in the sample.
	Contamination float64

	// MinSamples is the number of points below which detection reports
	// zero anomalies instead of running.
	MinSamples int

	// Seed makes detectors with randomized internals reproducible.
	Seed int64

	// Trees and SampleSize tune the isolation forest.
	Trees      int
	SampleSize int

	// Threshold is the z-score cutoff for the zscore detector.
	Threshold float64
}

// DefaultConfig returns default detector configuration.
func DefaultConfig() DetectorConfig {
	return DetectorConfig{
		Contamination: 0.1,
		MinSamples:    10,
		Seed:          42,
		Trees:         100,
		SampleSize:    256,
		Threshold:     3.0,
	}
}

// Detector is implemented by all outlier detection algorithms. Detect
// returns the indices of anomalous points with their scores; it never
// errors on short input, it simply finds nothing.
type Detector interface {
	Name() string
	Detect(series analytics.VitalSeries, cfg DetectorConfig) []Result
}

// Result is the detection outcome for a single point.
type Result struct {
	Index int
	Score float64
}

// Report is the per-(subject, signal, call) summary handed to callers.
// Values and timestamps of the flagged points are retained for rendering.
type Report struct {
	Signal            string      `json:"signal"`
	AnomalyCount      int         `json:"anomaly_count"`
	AnomalyPercentage float64     `json:"anomaly_percentage"`
	AnomalyValues     []float64   `json:"anomaly_values"`
	AnomalyTimestamps []time.Time `json:"anomaly_timestamps"`
}

var detectorRegistry = make(map[string]Detector)

// RegisterDetector adds a detector to the registry.
func RegisterDetector(name string, detector Detector) {
	detectorRegistry[name] = detector
}

// GetDetector returns a detector by name.
func GetDetector(name string) (Detector, error) {
	if detector, ok := detectorRegistry[name]; ok {
		return detector, nil
	}
	return nil, fmt.Errorf("unknown anomaly detector: %s", name)
}

// ListDetectors returns the available detector names.
func ListDetectors() []string {
	names := make([]string, 0, len(detectorRegistry))
	for name := range detectorRegistry {
		names = append(names, name)
	}
	return names
}

// Detect runs the named detector over a signal series and assembles the
// report. A series below the minimum sample count yields an empty report,
// not an error: callers branch on the count.
func Detect(algorithm, signal string, series analytics.VitalSeries, cfg DetectorConfig) (Report, error) {
	report := Report{
		Signal:            signal,
		AnomalyValues:     []float64{},
		AnomalyTimestamps: []time.Time{},
	}

	detector, err := GetDetector(algorithm)
	if err != nil {
		return report, err
	}

	if len(series) < cfg.MinSamples {
		return report, nil
	}

	results := detector.Detect(series, cfg)
	report.AnomalyCount = len(results)
	report.AnomalyPercentage = float64(len(results)) / float64(len(series)) * 100

	for _, r := range results {
		report.AnomalyValues = append(report.AnomalyValues, series[r.Index].Value)
		report.AnomalyTimestamps = append(report.AnomalyTimestamps, series[r.Index].Time)
	}

	return report, nil
}
