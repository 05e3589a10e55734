package pipeline

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/config"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/models"
)

func f64(v float64) *float64 { return &v }

func testPipeline(cfg config.PipelineConfig) *Pipeline {
	return New(cfg, nil)
}

func hourlyReadings(subjectID, n int, hr func(i int) float64) []models.Reading {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	readings := make([]models.Reading, n)
	for i := range readings {
		readings[i] = models.Reading{
			SubjectID: subjectID,
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			HeartRate: f64(hr(i)),
		}
	}
	return readings
}

func TestProcessFeatures(t *testing.T) {
	p := testPipeline(config.PipelineConfig{MaxProcessedRows: 100})
	subject := models.SubjectInfo{SubjectID: 1, Name: "Alice"}
	readings := hourlyReadings(1, 6, func(i int) float64 { return 70 + float64(i) })

	resp, err := p.ProcessFeatures(context.Background(), subject, readings)
	if err != nil {
		t.Fatalf("ProcessFeatures: %v", err)
	}
	if resp.SubjectInfo.SubjectID != 1 {
		t.Errorf("SubjectInfo = %+v", resp.SubjectInfo)
	}
	if resp.FeatureSummary.TotalRecords != 6 {
		t.Errorf("TotalRecords = %d, want 6", resp.FeatureSummary.TotalRecords)
	}
	if resp.FeatureSummary.AvgHealthScore == nil {
		t.Fatal("AvgHealthScore should be set")
	}
	if resp.FeatureSummary.RiskLevel == "" {
		t.Error("RiskLevel should be set")
	}
	if len(resp.ProcessedRecords) != 6 {
		t.Fatalf("got %d records, want 6", len(resp.ProcessedRecords))
	}

	record := resp.ProcessedRecords[5]
	if _, ok := record["timestamp"]; !ok {
		t.Error("record missing timestamp")
	}
	if _, ok := record["health_score"]; !ok {
		t.Error("record missing health_score")
	}
	if hr, ok := record["heart_rate"]; !ok || hr.(float64) != 75 {
		t.Errorf("heart_rate = %v, want 75", hr)
	}
	// NaN cells never appear in rendered records.
	for name, value := range record {
		if v, ok := value.(float64); ok && math.IsNaN(v) {
			t.Errorf("record carries NaN under %q", name)
		}
	}
}

func TestProcessFeaturesSummaryAveragesStability(t *testing.T) {
	p := testPipeline(config.PipelineConfig{MaxProcessedRows: 100})
	// Volatile heart rate so per-row stability scores differ and an
	// average is distinguishable from the last row's value.
	readings := hourlyReadings(1, 12, func(i int) float64 {
		if i%2 == 0 {
			return 50
		}
		return 120
	})

	resp, err := p.ProcessFeatures(context.Background(), models.SubjectInfo{SubjectID: 1}, readings)
	if err != nil {
		t.Fatalf("ProcessFeatures: %v", err)
	}
	if resp.FeatureSummary.StabilityScore == nil {
		t.Fatal("StabilityScore should be set")
	}

	total := 0.0
	for _, record := range resp.ProcessedRecords {
		total += record["stability_score"].(float64)
	}
	want := total / float64(len(resp.ProcessedRecords))
	if math.Abs(*resp.FeatureSummary.StabilityScore-want) > 1e-9 {
		t.Errorf("StabilityScore = %v, want row average %v",
			*resp.FeatureSummary.StabilityScore, want)
	}
}

func TestProcessFeaturesRowCap(t *testing.T) {
	p := testPipeline(config.PipelineConfig{MaxProcessedRows: 10})
	readings := hourlyReadings(1, 50, func(i int) float64 { return 70 })

	resp, err := p.ProcessFeatures(context.Background(), models.SubjectInfo{SubjectID: 1}, readings)
	if err != nil {
		t.Fatalf("ProcessFeatures: %v", err)
	}
	if len(resp.ProcessedRecords) != 10 {
		t.Fatalf("got %d records, want capped 10", len(resp.ProcessedRecords))
	}
	if resp.FeatureSummary.TotalRecords != 50 {
		t.Errorf("TotalRecords = %d, want full 50", resp.FeatureSummary.TotalRecords)
	}
	// The cap keeps the newest rows.
	last := resp.ProcessedRecords[9]
	wantTS := time.Date(2025, 3, 12, 1, 0, 0, 0, time.UTC).Format(time.RFC3339)
	if last["timestamp"] != wantTS {
		t.Errorf("last timestamp = %v, want %v", last["timestamp"], wantTS)
	}
}

func TestProcessFeaturesEmpty(t *testing.T) {
	p := testPipeline(config.PipelineConfig{})
	resp, err := p.ProcessFeatures(context.Background(), models.SubjectInfo{SubjectID: 2}, nil)
	if err != nil {
		t.Fatalf("ProcessFeatures: %v", err)
	}
	if resp.FeatureSummary.TotalRecords != 0 || len(resp.ProcessedRecords) != 0 {
		t.Errorf("empty input should yield an empty response: %+v", resp)
	}
}

func TestForecast(t *testing.T) {
	p := testPipeline(config.PipelineConfig{ForecastMinPoints: 10})
	readings := hourlyReadings(3, 48, func(i int) float64 { return 70 + 5*math.Sin(float64(i)/4) })

	resp, err := p.Forecast(context.Background(), 3, readings, 12)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if resp.SubjectID != 3 || resp.ForecastHours != 12 {
		t.Errorf("resp header = %+v", resp)
	}

	hr, ok := resp.Forecasts[analytics.SignalHeartRate]
	if !ok {
		t.Fatal("heart_rate forecast missing")
	}
	if len(hr.Predictions) != 12 {
		t.Errorf("got %d predictions, want 12", len(hr.Predictions))
	}
	if hr.Accuracy.SampleSize != 48 {
		t.Errorf("SampleSize = %d, want 48", hr.Accuracy.SampleSize)
	}
	for _, point := range hr.Predictions {
		if point.LowerBound > point.Value || point.UpperBound < point.Value {
			t.Errorf("band does not contain value: %+v", point)
		}
	}

	if _, ok := resp.Anomalies[analytics.SignalHeartRate]; !ok {
		t.Error("heart_rate anomaly report missing")
	}

	// The fitted model lands in the cache.
	if _, ok := p.ModelCache().Get(3, analytics.SignalHeartRate); !ok {
		t.Error("fitted model should be cached")
	}
}

func TestForecastShortHistory(t *testing.T) {
	p := testPipeline(config.PipelineConfig{ForecastMinPoints: 10})
	readings := hourlyReadings(4, 5, func(i int) float64 { return 70 })

	resp, err := p.Forecast(context.Background(), 4, readings, 0)
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if len(resp.Forecasts) != 0 {
		t.Errorf("short history produced %d forecasts, want 0", len(resp.Forecasts))
	}
	// Horizon falls back to the configured default.
	if resp.ForecastHours != 24 {
		t.Errorf("ForecastHours = %d, want default 24", resp.ForecastHours)
	}
}

func TestSummary(t *testing.T) {
	p := testPipeline(config.PipelineConfig{SummaryTrendDays: 7, SummaryRollupHours: 24})
	trendReadings := hourlyReadings(5, 40, func(i int) float64 {
		if i < 20 {
			return 70
		}
		return 100
	})
	rollupReadings := trendReadings[:6]

	resp, err := p.Summary(context.Background(), 5, trendReadings, rollupReadings)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if resp.AnalysisPeriod != "7d" {
		t.Errorf("AnalysisPeriod = %q, want 7d", resp.AnalysisPeriod)
	}

	hr, ok := resp.Trends[analytics.SignalHeartRate]
	if !ok {
		t.Fatal("heart_rate trend missing")
	}
	if hr.Direction != "increasing" {
		t.Errorf("Direction = %q, want increasing", hr.Direction)
	}
	if hr.Min != 70 || hr.Max != 100 || hr.DataPoints != 40 {
		t.Errorf("trend stats = %+v", hr)
	}
	if len(hr.Changes) == 0 {
		t.Error("level shift should yield trend changes")
	}

	if resp.HourlyDataPoints != 6 {
		t.Errorf("HourlyDataPoints = %d, want 6", resp.HourlyDataPoints)
	}
	if len(resp.HourlyRollups) != 6 {
		t.Errorf("got %d rollup rows, want 6 hourly buckets", len(resp.HourlyRollups))
	}
}

func TestAlerts(t *testing.T) {
	p := testPipeline(config.PipelineConfig{})
	ts := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	readings := []models.Reading{
		{
			SubjectID: 6, Timestamp: ts,
			HeartRate: f64(130), Temperature: f64(39.5), OxygenSaturation: f64(97),
		},
	}

	alerts, err := p.Alerts(context.Background(), 6, readings)
	if err != nil {
		t.Fatalf("Alerts: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("got %d alerts, want 2", len(alerts))
	}

	types := map[string]bool{}
	for _, alert := range alerts {
		types[alert.AlertType] = true
		// Two conditions at once escalate every alert to high/urgent.
		if alert.Severity != "high" || alert.Priority != "urgent" {
			t.Errorf("alert %s severity/priority = %s/%s", alert.AlertType, alert.Severity, alert.Priority)
		}
	}
	if !types["heart_rate_high"] || !types["temperature_high"] {
		t.Errorf("alert types = %v", types)
	}
}

func TestAlertsLatestWins(t *testing.T) {
	p := testPipeline(config.PipelineConfig{})
	ts := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	readings := []models.Reading{
		{SubjectID: 7, Timestamp: ts, HeartRate: f64(45)},
		{SubjectID: 7, Timestamp: ts.Add(time.Hour), HeartRate: f64(72)},
	}

	alerts, err := p.Alerts(context.Background(), 7, readings)
	if err != nil {
		t.Fatalf("Alerts: %v", err)
	}
	if len(alerts) != 0 {
		t.Errorf("recovered heart rate still alerted: %+v", alerts)
	}
}

func TestAlertsEmpty(t *testing.T) {
	p := testPipeline(config.PipelineConfig{})
	alerts, err := p.Alerts(context.Background(), 8, nil)
	if err != nil || alerts != nil {
		t.Errorf("empty readings = %v, %v, want nil, nil", alerts, err)
	}
}
