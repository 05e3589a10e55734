package services

import (
	"context"
	"time"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/config"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/logging"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/models"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/pipeline"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/vitals"
)

// AnalyticsService runs the pipeline operations against stored readings
type AnalyticsService struct {
	logger   *logging.Logger
	cfg      config.PipelineConfig
	pipeline *pipeline.Pipeline
	vitals   vitals.Store
	subjects *SubjectService
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(
	logger *logging.Logger,
	cfg config.PipelineConfig,
	pipe *pipeline.Pipeline,
	vitalsStore vitals.Store,
	subjectService *SubjectService,
) *AnalyticsService {
	return &AnalyticsService{
		logger:   logger,
		cfg:      cfg,
		pipeline: pipe,
		vitals:   vitalsStore,
		subjects: subjectService,
	}
}

func (s *AnalyticsService) fetchDays(ctx context.Context, subjectID, days int) ([]models.Reading, error) {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)
	readings, err := s.vitals.FetchRange(ctx, subjectID, start, end)
	if err != nil {
		return nil, NewServiceErrorWithDetails("STORE_FAILED", "Failed to fetch readings",
			map[string]interface{}{"error": err.Error()})
	}
	return readings, nil
}

// ProcessFeatures runs feature engineering over the subject's trailing
// window. Unknown subjects fail before any readings are fetched.
func (s *AnalyticsService) ProcessFeatures(ctx context.Context, subjectID, days int) (*models.ProcessedFeaturesResponse, error) {
	subject, err := s.subjects.Get(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = s.cfg.SummaryTrendDays
	}

	readings, err := s.fetchDays(ctx, subjectID, days)
	if err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		return nil, NewServiceErrorWithDetails("NO_DATA", "No readings in the requested window",
			map[string]interface{}{"subject_id": subjectID, "days": days})
	}

	return s.pipeline.ProcessFeatures(ctx, subject.Info(), readings)
}

// Forecast trains models on the trailing week and predicts the requested
// horizon.
func (s *AnalyticsService) Forecast(ctx context.Context, subjectID, horizonHours int) (*models.ForecastResponse, error) {
	if _, err := s.subjects.Get(ctx, subjectID); err != nil {
		return nil, err
	}
	if horizonHours <= 0 {
		horizonHours = s.cfg.ForecastHorizon
	}
	if horizonHours > 168 {
		return nil, NewServiceError("INVALID_HORIZON", "forecast horizon must be at most 168 hours")
	}

	readings, err := s.fetchDays(ctx, subjectID, s.cfg.SummaryTrendDays)
	if err != nil {
		return nil, err
	}
	return s.pipeline.Forecast(ctx, subjectID, readings, horizonHours)
}

// Summary composes the trailing-week trend analysis with the trailing-day
// hourly rollup.
func (s *AnalyticsService) Summary(ctx context.Context, subjectID int) (*models.SummaryResponse, error) {
	if _, err := s.subjects.Get(ctx, subjectID); err != nil {
		return nil, err
	}

	trendReadings, err := s.fetchDays(ctx, subjectID, s.cfg.SummaryTrendDays)
	if err != nil {
		return nil, err
	}

	end := time.Now().UTC()
	start := end.Add(-time.Duration(s.cfg.SummaryRollupHours) * time.Hour)
	rollupReadings, err := s.vitals.FetchRange(ctx, subjectID, start, end)
	if err != nil {
		return nil, NewServiceErrorWithDetails("STORE_FAILED", "Failed to fetch readings",
			map[string]interface{}{"error": err.Error()})
	}

	return s.pipeline.Summary(ctx, subjectID, trendReadings, rollupReadings)
}

// Alerts evaluates hard thresholds against the subject's latest readings.
func (s *AnalyticsService) Alerts(ctx context.Context, subjectID int) ([]models.AlertResponse, error) {
	if _, err := s.subjects.Get(ctx, subjectID); err != nil {
		return nil, err
	}

	readings, err := s.vitals.FetchRecent(ctx, subjectID, 100)
	if err != nil {
		return nil, NewServiceErrorWithDetails("STORE_FAILED", "Failed to fetch readings",
			map[string]interface{}{"error": err.Error()})
	}
	return s.pipeline.Alerts(ctx, subjectID, readings)
}
