package scoring

import (
	"time"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics/features"
)

// stabilityWindow is the trailing window used for the per-signal coefficient
// of variation behind the stability score.
const stabilityWindow = 5

// stabilityScale converts a mean coefficient of variation into score points:
// stability = 100 - stabilityScale * meanCV, clipped to [0, 100]. With the
// scale at 100, a 10% average variation across signals costs 10 points.
const stabilityScale = 100.0

// HealthScore is the per-row scoring result.
type HealthScore struct {
	Timestamp time.Time `json:"timestamp"`

	CompositeScore float64 `json:"composite_score"`
	RiskLevel      string  `json:"risk_level"`
	HealthTrend    string  `json:"health_trend"`
	StabilityScore float64 `json:"stability_score"`

	// Threshold-violation assessment, independent of the composite score.
	RiskFactorCount int    `json:"risk_factor_count"`
	AlertRisk       string `json:"alert_risk"`
	AlertPriority   string `json:"alert_priority"`

	SubScores map[string]float64 `json:"sub_scores"`
}

// Engine computes health scores from feature-engineered frames.
type Engine struct{}

// NewEngine creates a scoring engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Score produces one HealthScore per frame row. Every row always gets five
// sub-scores: signals without a measurement take the neutral 50 so missing
// data pulls the composite toward the middle instead of vanishing from the
// denominator.
func (e *Engine) Score(frame *features.Frame) []HealthScore {
	n := frame.Len()
	scores := make([]HealthScore, n)

	cell := func(name string, i int) (float64, bool) {
		col, ok := frame.Column(name)
		if !ok || features.IsUndefined(col[i]) {
			return 0, false
		}
		return col[i], true
	}

	stability := e.stabilityScores(frame)

	for i := 0; i < n; i++ {
		sub := make(map[string]float64, 5)

		if hr, ok := cell(analytics.SignalHeartRate, i); ok {
			sub["hr_score"] = HeartRateScore(hr)
		} else {
			sub["hr_score"] = NeutralScore
		}

		sys, hasSys := cell(analytics.SignalSystolic, i)
		dia, hasDia := cell(analytics.SignalDiastolic, i)
		if hasSys && hasDia {
			sub["bp_score"] = BloodPressureScore(sys, dia)
		} else {
			sub["bp_score"] = NeutralScore
		}

		if temp, ok := cell(analytics.SignalTemperature, i); ok {
			sub["temp_score"] = TemperatureScore(temp)
		} else {
			sub["temp_score"] = NeutralScore
		}

		if spo2, ok := cell(analytics.SignalOxygenSaturation, i); ok {
			sub["oxygen_score"] = OxygenScore(spo2)
		} else {
			sub["oxygen_score"] = NeutralScore
		}

		if resp, ok := cell(analytics.SignalRespiration, i); ok {
			sub["resp_score"] = RespirationScore(resp)
		} else {
			sub["resp_score"] = NeutralScore
		}

		composite := NeutralScore
		if len(sub) > 0 {
			sum := 0.0
			for _, v := range sub {
				sum += v
			}
			composite = sum / float64(len(sub))
		}

		hr, hasHR := cell(analytics.SignalHeartRate, i)
		temp, hasTemp := cell(analytics.SignalTemperature, i)
		spo2, hasSpO2 := cell(analytics.SignalOxygenSaturation, i)
		factors := RiskFactors(hr, hasHR, temp, hasTemp, spo2, hasSpO2)
		alertRisk := AlertRiskLevel(factors)

		scores[i] = HealthScore{
			Timestamp:       frame.Times[i],
			CompositeScore:  composite,
			RiskLevel:       ScoreRiskLevel(composite),
			HealthTrend:     HealthTrend(composite),
			StabilityScore:  stability[i],
			RiskFactorCount: factors,
			AlertRisk:       alertRisk,
			AlertPriority:   AlertPriority(alertRisk),
			SubScores:       sub,
		}
	}

	return scores
}

// stabilityScores computes 100 minus the scaled mean rolling coefficient of
// variation across available signals, clipped to [0, 100]. Rows without any
// computable variation score a full 100: no variability evidence yet.
func (e *Engine) stabilityScores(frame *features.Frame) []float64 {
	n := frame.Len()
	out := make([]float64, n)

	cols := make(map[string][]float64)
	for _, name := range analytics.Signals() {
		if col, ok := frame.Column(name); ok {
			cols[name] = col
		}
	}

	for i := 0; i < n; i++ {
		cvSum, cvCount := 0.0, 0
		for _, col := range cols {
			start := i - stabilityWindow + 1
			if start < 0 {
				start = 0
			}
			values := make([]float64, 0, stabilityWindow)
			for j := start; j <= i; j++ {
				if !features.IsUndefined(col[j]) {
					values = append(values, col[j])
				}
			}
			if len(values) < 2 {
				continue
			}
			mean := analytics.Mean(values)
			if mean == 0 {
				continue
			}
			cvSum += analytics.StdDev(values) / mean
			cvCount++
		}

		score := 100.0
		if cvCount > 0 {
			score = 100.0 - stabilityScale*(cvSum/float64(cvCount))
		}
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}
		out[i] = score
	}

	return out
}
