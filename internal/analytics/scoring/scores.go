// Package scoring turns feature-engineered vital signs into per-row composite
// health scores, risk classifications and stability measures.
package scoring

// NeutralScore is assigned to any signal without a measurement. Missing data
// is treated as "unknown, assume average" and always stays in the composite
// denominator, so a row with nothing measured scores exactly 50.
const NeutralScore = 50.0

// HeartRateScore scores a measured heart rate on a 0-100 scale.
func HeartRateScore(hr float64) float64 {
	switch {
	case hr >= 60 && hr <= 100:
		return 100
	case hr >= 50 && hr <= 110:
		return 80
	case hr >= 40 && hr <= 120:
		return 60
	default:
		return 20
	}
}

// BloodPressureScore scores a measured systolic/diastolic pair.
func BloodPressureScore(systolic, diastolic float64) float64 {
	switch {
	case systolic >= 90 && systolic <= 140 && diastolic >= 60 && diastolic <= 90:
		return 100
	case systolic >= 80 && systolic <= 160 && diastolic >= 50 && diastolic <= 100:
		return 80
	default:
		return 40
	}
}

// TemperatureScore scores a measured body temperature.
func TemperatureScore(temp float64) float64 {
	switch {
	case temp >= 36 && temp <= 38:
		return 100
	case temp >= 35 && temp <= 39:
		return 80
	default:
		return 30
	}
}

// OxygenScore scores a measured oxygen saturation.
func OxygenScore(spo2 float64) float64 {
	switch {
	case spo2 >= 95:
		return 100
	case spo2 >= 90:
		return 70
	default:
		return 30
	}
}

// RespirationScore scores a measured respiration rate.
func RespirationScore(resp float64) float64 {
	switch {
	case resp >= 12 && resp <= 20:
		return 100
	case resp >= 8 && resp <= 25:
		return 80
	default:
		return 40
	}
}
