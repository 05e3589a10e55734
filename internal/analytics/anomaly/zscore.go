package anomaly

import (
	"math"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics"
)

// ZScoreDetector flags points whose distance from the sample mean exceeds a
// configured number of standard deviations. Kept as a cheap deterministic
// alternative to the isolation forest for near-normal signals.
type ZScoreDetector struct{}

func init() {
	RegisterDetector("zscore", &ZScoreDetector{})
}

// Name returns the algorithm name.
func (z *ZScoreDetector) Name() string {
	return "zscore"
}

// Detect finds points with |z| above the configured threshold.
func (z *ZScoreDetector) Detect(series analytics.VitalSeries, cfg DetectorConfig) []Result {
	if len(series) < cfg.MinSamples {
		return nil
	}

	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = 3.0
	}

	values := series.Values()
	mean := analytics.Mean(values)

	// Population std, matching the classical z-score definition.
	varianceSum := 0.0
	for _, v := range values {
		diff := v - mean
		varianceSum += diff * diff
	}
	stdDev := math.Sqrt(varianceSum / float64(len(values)))
	if stdDev == 0 {
		return nil
	}

	var results []Result
	for i, v := range values {
		score := math.Abs(v-mean) / stdDev
		if score > threshold {
			results = append(results, Result{Index: i, Score: score})
		}
	}
	return results
}
