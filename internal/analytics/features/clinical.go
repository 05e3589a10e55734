package features

import (
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics"
)

// Blood pressure categories, from worst-low to worst-high.
const (
	BPLow       = "low"
	BPNormal    = "normal"
	BPElevated  = "elevated"
	BPStage1    = "stage1_hypertension"
	BPStage2    = "stage2_hypertension"
)

// Temperature statuses.
const (
	TempFever       = "fever"
	TempNormal      = "normal"
	TempHypothermia = "hypothermia"
)

// Oxygen statuses.
const (
	OxygenNormal   = "normal"
	OxygenLow      = "low"
	OxygenCritical = "critical"
)

// Respiratory statuses.
const (
	RespNormal   = "normal"
	RespAbnormal = "abnormal"
)

// ClassifyBloodPressure maps a systolic/diastolic pair to its category.
// Rules are evaluated in priority order; the first match wins.
func ClassifyBloodPressure(systolic, diastolic float64) string {
	switch {
	case systolic < 90 || diastolic < 60:
		return BPLow
	case systolic < 120 && diastolic < 80:
		return BPNormal
	case systolic < 130 && diastolic < 80:
		return BPElevated
	case systolic < 140 || diastolic < 90:
		return BPStage1
	default:
		return BPStage2
	}
}

// ClassifyTemperature maps a body temperature to fever/normal/hypothermia.
func ClassifyTemperature(temperature float64) string {
	switch {
	case temperature > 38.0:
		return TempFever
	case temperature > 36.0:
		return TempNormal
	default:
		return TempHypothermia
	}
}

// ClassifyOxygen maps an oxygen saturation to normal/low/critical.
func ClassifyOxygen(saturation float64) string {
	switch {
	case saturation >= 95:
		return OxygenNormal
	case saturation >= 90:
		return OxygenLow
	default:
		return OxygenCritical
	}
}

// ClassifyRespiration maps a respiration rate to normal/abnormal.
func ClassifyRespiration(rate float64) string {
	if rate >= 12 && rate <= 20 {
		return RespNormal
	}
	return RespAbnormal
}

// MeanArterialPressure estimates MAP as diastolic plus a third of the pulse
// pressure.
func MeanArterialPressure(systolic, diastolic float64) float64 {
	return diastolic + (systolic-diastolic)/3
}

// computeClinical adds the blood-pressure, temperature, oxygen and
// respiration derived columns. Each block requires its source signals and is
// skipped when they are absent.
func (e *Engine) computeClinical(frame *Frame, fs *FeatureSet) {
	sys, hasSys := frame.Column(analytics.SignalSystolic)
	dia, hasDia := frame.Column(analytics.SignalDiastolic)
	if hasSys && hasDia {
		mapCol := make([]float64, frame.Len())
		ppCol := make([]float64, frame.Len())
		bpCat := make([]string, frame.Len())
		for i := range mapCol {
			if IsUndefined(sys[i]) || IsUndefined(dia[i]) {
				mapCol[i] = Undefined
				ppCol[i] = Undefined
				continue
			}
			mapCol[i] = MeanArterialPressure(sys[i], dia[i])
			ppCol[i] = sys[i] - dia[i]
			bpCat[i] = ClassifyBloodPressure(sys[i], dia[i])
		}
		fs.Numeric["map"] = mapCol
		fs.Numeric["pulse_pressure"] = ppCol
		fs.Categorical["bp_category"] = bpCat
	}

	if temp, ok := frame.Column(analytics.SignalTemperature); ok {
		status := make([]string, frame.Len())
		for i, v := range temp {
			if !IsUndefined(v) {
				status[i] = ClassifyTemperature(v)
			}
		}
		fs.Categorical["fever_status"] = status
	}

	if spo2, ok := frame.Column(analytics.SignalOxygenSaturation); ok {
		status := make([]string, frame.Len())
		for i, v := range spo2 {
			if !IsUndefined(v) {
				status[i] = ClassifyOxygen(v)
			}
		}
		fs.Categorical["oxygen_status"] = status
	}

	if resp, ok := frame.Column(analytics.SignalRespiration); ok {
		status := make([]string, frame.Len())
		for i, v := range resp {
			if !IsUndefined(v) {
				status[i] = ClassifyRespiration(v)
			}
		}
		fs.Categorical["respiratory_status"] = status
	}
}
