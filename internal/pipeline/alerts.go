package pipeline

import (
	"context"
	"fmt"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics/scoring"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/models"
)

// Alerts evaluates the hard vital thresholds against a subject's latest
// readings. Severity and priority escalate with the number of conditions
// met at once, not per condition.
func (p *Pipeline) Alerts(ctx context.Context, subjectID int, readings []models.Reading) ([]models.AlertResponse, error) {
	if len(readings) == 0 {
		return nil, nil
	}

	// The newest observation of each signal decides, even if the signals
	// arrived in different readings.
	latest := make(map[string]analytics.VitalPoint)
	for signal, series := range seriesBySignal(readings) {
		latest[signal] = series[series.Len()-1]
	}

	hr, hasHR := latest[analytics.SignalHeartRate]
	temp, hasTemp := latest[analytics.SignalTemperature]
	spo2, hasSpO2 := latest[analytics.SignalOxygenSaturation]

	count := scoring.RiskFactors(hr.Value, hasHR, temp.Value, hasTemp, spo2.Value, hasSpO2)
	severity := scoring.AlertRiskLevel(count)
	priority := scoring.AlertPriority(severity)

	var alerts []models.AlertResponse
	add := func(alertType, message string, point analytics.VitalPoint) {
		alerts = append(alerts, models.AlertResponse{
			SubjectID: subjectID,
			AlertType: alertType,
			Severity:  severity,
			Priority:  priority,
			Message:   message,
			Timestamp: formatTime(point.Time),
		})
	}

	if hasHR {
		if hr.Value < 50 {
			add("heart_rate_low", fmt.Sprintf("Heart rate %.0f bpm below 50", hr.Value), hr)
		} else if hr.Value > 120 {
			add("heart_rate_high", fmt.Sprintf("Heart rate %.0f bpm above 120", hr.Value), hr)
		}
	}
	if hasTemp {
		if temp.Value < 35 {
			add("temperature_low", fmt.Sprintf("Temperature %.1f C below 35", temp.Value), temp)
		} else if temp.Value > 39 {
			add("temperature_high", fmt.Sprintf("Temperature %.1f C above 39", temp.Value), temp)
		}
	}
	if hasSpO2 && spo2.Value < 90 {
		add("oxygen_low", fmt.Sprintf("Oxygen saturation %.0f%% below 90", spo2.Value), spo2)
	}

	return alerts, ctx.Err()
}
