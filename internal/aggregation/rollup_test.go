package aggregation

import (
	"math"
	"testing"
	"time"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics"
)

func point(t time.Time, v float64) analytics.VitalPoint {
	return analytics.VitalPoint{Time: t, Value: v}
}

func TestRollupHourlySparse(t *testing.T) {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	series := map[string]analytics.VitalSeries{
		analytics.SignalHeartRate: {
			point(base.Add(5*time.Minute), 70),
			point(base.Add(45*time.Minute), 80),
			// Hour 9 has no samples; hour 10 does.
			point(base.Add(2*time.Hour+10*time.Minute), 90),
		},
	}

	buckets := Rollup(series, LevelHourly)
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2 (empty hours are not emitted)", len(buckets))
	}
	if !buckets[0].Start.Equal(base) {
		t.Errorf("buckets[0].Start = %v, want %v", buckets[0].Start, base)
	}
	if !buckets[1].Start.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("buckets[1].Start = %v, want %v", buckets[1].Start, base.Add(2*time.Hour))
	}

	first := buckets[0].Signals[analytics.SignalHeartRate]
	if first.Mean != 75 || first.Min != 70 || first.Max != 80 || first.Count != 2 {
		t.Errorf("first bucket stats = %+v", first)
	}
	if first.Std == nil {
		t.Fatal("Std should be set for a two-sample bucket")
	}
	want := analytics.StdDev([]float64{70, 80})
	if math.Abs(*first.Std-want) > 1e-12 {
		t.Errorf("Std = %v, want %v", *first.Std, want)
	}

	second := buckets[1].Signals[analytics.SignalHeartRate]
	if second.Std != nil {
		t.Errorf("single-sample bucket Std = %v, want nil", *second.Std)
	}
	if second.Count != 1 || second.Mean != 90 {
		t.Errorf("second bucket stats = %+v", second)
	}
}

func TestRollupDaily(t *testing.T) {
	day1 := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 11, 23, 30, 0, 0, time.UTC)
	series := map[string]analytics.VitalSeries{
		analytics.SignalTemperature: {
			point(day1, 36.5),
			point(day1.Add(12*time.Hour), 37.1),
			point(day2, 36.8),
		},
	}

	buckets := Rollup(series, LevelDaily)
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}
	wantStart := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if !buckets[0].Start.Equal(wantStart) {
		t.Errorf("buckets[0].Start = %v, want midnight %v", buckets[0].Start, wantStart)
	}
	if buckets[0].Signals[analytics.SignalTemperature].Count != 2 {
		t.Errorf("day 1 count = %d, want 2", buckets[0].Signals[analytics.SignalTemperature].Count)
	}
}

func TestRollupMultipleSignalsShareBuckets(t *testing.T) {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	series := map[string]analytics.VitalSeries{
		analytics.SignalHeartRate:        {point(base, 72)},
		analytics.SignalOxygenSaturation: {point(base.Add(30*time.Minute), 97)},
	}

	buckets := Rollup(series, LevelHourly)
	if len(buckets) != 1 {
		t.Fatalf("got %d buckets, want 1", len(buckets))
	}
	if len(buckets[0].Signals) != 2 {
		t.Errorf("bucket holds %d signals, want 2", len(buckets[0].Signals))
	}
}

func TestRollupNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	local := time.Date(2025, 3, 10, 10, 15, 0, 0, loc)
	series := map[string]analytics.VitalSeries{
		analytics.SignalHeartRate: {point(local, 70)},
	}

	buckets := Rollup(series, LevelHourly)
	want := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	if !buckets[0].Start.Equal(want) {
		t.Errorf("Start = %v, want UTC hour %v", buckets[0].Start, want)
	}
}

func TestRollupEmpty(t *testing.T) {
	if buckets := Rollup(nil, LevelHourly); len(buckets) != 0 {
		t.Errorf("nil input produced %d buckets", len(buckets))
	}
}

func TestWindowEnd(t *testing.T) {
	day := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	want := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	if got := WindowEnd(day); !got.Equal(want) {
		t.Errorf("WindowEnd = %v, want %v", got, want)
	}
	// Month boundary.
	day = time.Date(2025, 3, 31, 1, 0, 0, 0, time.UTC)
	want = time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	if got := WindowEnd(day); !got.Equal(want) {
		t.Errorf("WindowEnd = %v, want %v", got, want)
	}
}
