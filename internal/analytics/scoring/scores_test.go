package scoring

import "testing"

func TestHeartRateScore(t *testing.T) {
	tests := []struct {
		hr   float64
		want float64
	}{
		{60, 100}, {100, 100}, {55, 80}, {110, 80}, {45, 60}, {120, 60}, {130, 20}, {35, 20},
	}
	for _, tt := range tests {
		if got := HeartRateScore(tt.hr); got != tt.want {
			t.Errorf("HeartRateScore(%v) = %v, want %v", tt.hr, got, tt.want)
		}
	}
}

func TestBloodPressureScore(t *testing.T) {
	if got := BloodPressureScore(120, 80); got != 100 {
		t.Errorf("BloodPressureScore(120, 80) = %v, want 100", got)
	}
	if got := BloodPressureScore(150, 95); got != 80 {
		t.Errorf("BloodPressureScore(150, 95) = %v, want 80", got)
	}
	if got := BloodPressureScore(170, 110); got != 40 {
		t.Errorf("BloodPressureScore(170, 110) = %v, want 40", got)
	}
}

func TestTemperatureScore(t *testing.T) {
	tests := []struct {
		temp float64
		want float64
	}{
		{36.5, 100}, {38.0, 100}, {38.5, 80}, {35.2, 80}, {39.2, 30}, {34.0, 30},
	}
	for _, tt := range tests {
		if got := TemperatureScore(tt.temp); got != tt.want {
			t.Errorf("TemperatureScore(%v) = %v, want %v", tt.temp, got, tt.want)
		}
	}
}

func TestOxygenScore(t *testing.T) {
	tests := []struct {
		spo2 float64
		want float64
	}{
		{98, 100}, {95, 100}, {92, 70}, {90, 70}, {85, 30},
	}
	for _, tt := range tests {
		if got := OxygenScore(tt.spo2); got != tt.want {
			t.Errorf("OxygenScore(%v) = %v, want %v", tt.spo2, got, tt.want)
		}
	}
}

func TestRespirationScore(t *testing.T) {
	tests := []struct {
		resp float64
		want float64
	}{
		{16, 100}, {12, 100}, {20, 100}, {10, 80}, {25, 80}, {30, 40}, {5, 40},
	}
	for _, tt := range tests {
		if got := RespirationScore(tt.resp); got != tt.want {
			t.Errorf("RespirationScore(%v) = %v, want %v", tt.resp, got, tt.want)
		}
	}
}

func TestRiskClassifications(t *testing.T) {
	if got := ScoreRiskLevel(85); got != RiskLow {
		t.Errorf("ScoreRiskLevel(85) = %q, want low", got)
	}
	if got := ScoreRiskLevel(80); got != RiskLow {
		t.Errorf("ScoreRiskLevel(80) = %q, want low", got)
	}
	if got := ScoreRiskLevel(70); got != RiskMedium {
		t.Errorf("ScoreRiskLevel(70) = %q, want medium", got)
	}
	if got := ScoreRiskLevel(59.9); got != RiskHigh {
		t.Errorf("ScoreRiskLevel(59.9) = %q, want high", got)
	}

	if got := HealthTrend(80); got != TrendImproving {
		t.Errorf("HealthTrend(80) = %q, want improving", got)
	}
	if got := HealthTrend(60); got != TrendStable {
		t.Errorf("HealthTrend(60) = %q, want stable", got)
	}
	if got := HealthTrend(45); got != TrendDeclining {
		t.Errorf("HealthTrend(45) = %q, want declining", got)
	}
}

func TestRiskFactors(t *testing.T) {
	if got := RiskFactors(72, true, 36.8, true, 97, true); got != 0 {
		t.Errorf("healthy row factors = %d, want 0", got)
	}
	if got := RiskFactors(130, true, 39.5, true, 85, true); got != 3 {
		t.Errorf("all-violated factors = %d, want 3", got)
	}
	// Unmeasured signals contribute no factor.
	if got := RiskFactors(0, false, 0, false, 0, false); got != 0 {
		t.Errorf("unmeasured factors = %d, want 0", got)
	}
	if got := RiskFactors(45, true, 36.8, true, 0, false); got != 1 {
		t.Errorf("low-hr factors = %d, want 1", got)
	}
}

func TestAlertRiskAndPriority(t *testing.T) {
	if got := AlertRiskLevel(0); got != RiskLow {
		t.Errorf("AlertRiskLevel(0) = %q, want low", got)
	}
	if got := AlertRiskLevel(1); got != RiskMedium {
		t.Errorf("AlertRiskLevel(1) = %q, want medium", got)
	}
	if got := AlertRiskLevel(2); got != RiskHigh {
		t.Errorf("AlertRiskLevel(2) = %q, want high", got)
	}
	if got := AlertPriority(RiskHigh); got != PriorityUrgent {
		t.Errorf("AlertPriority(high) = %q, want urgent", got)
	}
	if got := AlertPriority(RiskMedium); got != PriorityWarning {
		t.Errorf("AlertPriority(medium) = %q, want warning", got)
	}
	if got := AlertPriority(RiskLow); got != PriorityNormal {
		t.Errorf("AlertPriority(low) = %q, want normal", got)
	}
}
