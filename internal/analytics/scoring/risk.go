package scoring

// Composite-score-based classifications. These answer "how well is the
// subject doing overall" and are deliberately kept apart from the
// threshold-violation risk below, which answers "is anything clinically
// out of bounds right now".
const (
	TrendImproving = "improving"
	TrendStable    = "stable"
	TrendDeclining = "declining"

	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"

	PriorityUrgent  = "urgent"
	PriorityWarning = "warning"
	PriorityNormal  = "normal"
)

// HealthTrend classifies a composite score into a trend label.
func HealthTrend(composite float64) string {
	switch {
	case composite >= 80:
		return TrendImproving
	case composite >= 60:
		return TrendStable
	default:
		return TrendDeclining
	}
}

// ScoreRiskLevel classifies a composite score into a risk level.
func ScoreRiskLevel(composite float64) string {
	switch {
	case composite >= 80:
		return RiskLow
	case composite >= 60:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// RiskFactors counts hard clinical threshold violations for one row. Each
// flag indicates the corresponding signal was measured; unmeasured signals
// contribute no factor.
func RiskFactors(hr float64, hasHR bool, temp float64, hasTemp bool, spo2 float64, hasSpO2 bool) int {
	factors := 0
	if hasHR && (hr < 50 || hr > 120) {
		factors++
	}
	if hasTemp && (temp < 35 || temp > 39) {
		factors++
	}
	if hasSpO2 && spo2 < 90 {
		factors++
	}
	return factors
}

// AlertRiskLevel maps a risk-factor count to the alert-stream risk level.
func AlertRiskLevel(factors int) string {
	switch {
	case factors >= 2:
		return RiskHigh
	case factors == 1:
		return RiskMedium
	default:
		return RiskLow
	}
}

// AlertPriority maps the alert-stream risk level to a notification priority.
func AlertPriority(riskLevel string) string {
	switch riskLevel {
	case RiskHigh:
		return PriorityUrgent
	case RiskMedium:
		return PriorityWarning
	default:
		return PriorityNormal
	}
}
