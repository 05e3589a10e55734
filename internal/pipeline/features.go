package pipeline

import (
	"context"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics/features"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics/scoring"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/models"
)

// ProcessFeatures runs feature engineering and health scoring over a
// subject's readings. The response carries the most recent rows only,
// capped by configuration.
func (p *Pipeline) ProcessFeatures(ctx context.Context, subject models.SubjectInfo, readings []models.Reading) (*models.ProcessedFeaturesResponse, error) {
	resp := &models.ProcessedFeaturesResponse{SubjectInfo: subject}
	if len(readings) == 0 {
		return resp, nil
	}

	frame := features.NewFrame(readings)
	featureSet := p.features.Compute(frame)
	scores := p.scoring.Score(frame)

	resp.FeatureSummary = p.summarize(frame, scores)
	resp.ProcessedRecords = p.recentRecords(frame, featureSet, scores)

	p.log.Debug("Processed features",
		"subject_id", subject.SubjectID,
		"records", frame.Len(),
		"returned", len(resp.ProcessedRecords))
	return resp, nil
}

func (p *Pipeline) summarize(frame *features.Frame, scores []scoring.HealthScore) models.FeatureSummary {
	summary := models.FeatureSummary{TotalRecords: frame.Len()}
	if len(frame.Times) > 0 {
		summary.DateRange = models.DateRange{
			Start: formatTime(frame.Times[0]),
			End:   formatTime(frame.Times[len(frame.Times)-1]),
		}
	}
	if len(scores) == 0 {
		return summary
	}

	total := 0.0
	stabilityTotal := 0.0
	for _, score := range scores {
		total += score.CompositeScore
		stabilityTotal += score.StabilityScore
	}
	avg := total / float64(len(scores))
	summary.AvgHealthScore = &avg
	summary.RiskLevel = scoring.ScoreRiskLevel(avg)
	stability := stabilityTotal / float64(len(scores))
	summary.StabilityScore = &stability
	return summary
}

// recentRecords renders the newest rows of the feature set as generic
// records, dropping undefined numeric cells instead of emitting NaN.
func (p *Pipeline) recentRecords(frame *features.Frame, featureSet *features.FeatureSet, scores []scoring.HealthScore) []map[string]interface{} {
	n := frame.Len()
	start := 0
	if n > p.cfg.MaxProcessedRows {
		start = n - p.cfg.MaxProcessedRows
	}

	records := make([]map[string]interface{}, 0, n-start)
	for i := start; i < n; i++ {
		record := make(map[string]interface{})
		if len(frame.Times) == n {
			record["timestamp"] = formatTime(frame.Times[i])
		}
		for name, column := range featureSet.Numeric {
			if features.IsUndefined(column[i]) {
				continue
			}
			record[name] = column[i]
		}
		for name, column := range featureSet.Categorical {
			if column[i] == "" {
				continue
			}
			record[name] = column[i]
		}
		if i < len(scores) {
			record["health_score"] = scores[i].CompositeScore
			record["risk_level"] = scores[i].RiskLevel
			record["health_trend"] = scores[i].HealthTrend
			record["stability_score"] = scores[i].StabilityScore
		}
		records = append(records, record)
	}
	return records
}
