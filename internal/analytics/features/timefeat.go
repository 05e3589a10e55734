package features

import (
	"fmt"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics"
)

// Time-of-day buckets.
const (
	PeriodMorning   = "morning"
	PeriodAfternoon = "afternoon"
	PeriodEvening   = "evening"
	PeriodNight     = "night"
)

// CategorizeTimePeriod maps an hour of day to a four-way bucket.
func CategorizeTimePeriod(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return PeriodMorning
	case hour >= 12 && hour < 18:
		return PeriodAfternoon
	case hour >= 18 && hour < 22:
		return PeriodEvening
	default:
		return PeriodNight
	}
}

// computeTimeFeatures adds the timestamp-derived columns. The block is
// all-or-nothing: any unusable timestamp in the frame skips every time
// feature rather than producing partially aligned columns.
func (e *Engine) computeTimeFeatures(frame *Frame, fs *FeatureSet) {
	if !frame.timesValid {
		return
	}

	n := frame.Len()
	hour := make([]float64, n)
	dow := make([]float64, n)
	dom := make([]float64, n)
	month := make([]float64, n)
	period := make([]string, n)
	weekend := make([]float64, n)

	for i, t := range frame.Times {
		hour[i] = float64(t.Hour())
		dow[i] = float64(int(t.Weekday()))
		dom[i] = float64(t.Day())
		month[i] = float64(int(t.Month()))
		period[i] = CategorizeTimePeriod(t.Hour())
		if wd := t.Weekday(); wd == 0 || wd == 6 {
			weekend[i] = 1
		}
	}

	fs.Numeric["hour"] = hour
	fs.Numeric["day_of_week"] = dow
	fs.Numeric["day_of_month"] = dom
	fs.Numeric["month"] = month
	fs.Categorical["time_period"] = period
	fs.Numeric["is_weekend"] = weekend

	// Group averages are full-frame aggregates, not trailing windows: every
	// row in the same hour bucket shares the bucket's overall mean.
	if hr, ok := frame.Column(analytics.SignalHeartRate); ok {
		fs.Numeric["hr_hourly_avg"] = groupMean(hr, hour)
		fs.Numeric["hr_daily_avg"] = groupMean(hr, dow)
	}
	if temp, ok := frame.Column(analytics.SignalTemperature); ok {
		fs.Numeric["temp_hourly_avg"] = groupMean(temp, hour)
	}

	if hr, ok := frame.Column(analytics.SignalHeartRate); ok {
		lagged := lag(hr)
		fs.Numeric["hr_lag_1"] = lagged
		fs.Numeric["hr_diff"] = diff(hr, lagged)
		for _, w := range e.cfg.TrendWindows {
			fs.Numeric[fmt.Sprintf("hr_trend_%d", w)] = rollingMean(hr, w)
		}
	}
	if temp, ok := frame.Column(analytics.SignalTemperature); ok {
		lagged := lag(temp)
		fs.Numeric["temp_lag_1"] = lagged
		fs.Numeric["temp_diff"] = diff(temp, lagged)
		for _, w := range e.cfg.TrendWindows {
			fs.Numeric[fmt.Sprintf("temp_trend_%d", w)] = rollingMean(temp, w)
		}
	}
}

// groupMean assigns each row the mean of all rows sharing its key.
func groupMean(col, keys []float64) []float64 {
	sums := make(map[float64]float64)
	counts := make(map[float64]int)
	for i, v := range col {
		if IsUndefined(v) {
			continue
		}
		sums[keys[i]] += v
		counts[keys[i]]++
	}

	out := make([]float64, len(col))
	for i := range col {
		if counts[keys[i]] == 0 {
			out[i] = Undefined
			continue
		}
		out[i] = sums[keys[i]] / float64(counts[keys[i]])
	}
	return out
}
