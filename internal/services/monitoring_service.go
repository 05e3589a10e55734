package services

import (
	"context"
	"time"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/logging"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/models"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/subjects"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/vitals"
)

// activityWindow is how far back a reading still counts as activity.
const activityWindow = 24 * time.Hour

// MonitoringService serves the operational views: which subjects are
// actively reporting and coarse system counters.
type MonitoringService struct {
	logger   *logging.Logger
	vitals   vitals.Store
	subjects subjects.Store
}

// NewMonitoringService creates a new MonitoringService
func NewMonitoringService(logger *logging.Logger, vitalsStore vitals.Store, subjectStore subjects.Store) *MonitoringService {
	return &MonitoringService{logger: logger, vitals: vitalsStore, subjects: subjectStore}
}

// ActiveSubjects lists registered subjects with at least one reading in
// the activity window.
func (s *MonitoringService) ActiveSubjects(ctx context.Context) (*models.ActiveSubjectsResponse, error) {
	registered, err := s.subjects.List(ctx, 500, 0)
	if err != nil {
		return nil, NewServiceErrorWithDetails("STORE_FAILED", "Failed to list subjects",
			map[string]interface{}{"error": err.Error()})
	}

	now := time.Now().UTC()
	start := now.Add(-activityWindow)

	resp := &models.ActiveSubjectsResponse{
		TotalSubjects: len(registered),
		Timestamp:     now.Format(time.RFC3339),
	}
	for _, subject := range registered {
		readings, err := s.vitals.FetchRange(ctx, subject.SubjectID, start, now)
		if err != nil {
			s.logger.Warn("Failed to fetch readings for activity check",
				"subject_id", subject.SubjectID,
				"error", err)
			continue
		}
		if len(readings) == 0 {
			continue
		}
		last := readings[len(readings)-1].Timestamp
		resp.ActiveSubjects = append(resp.ActiveSubjects, models.ActiveSubject{
			SubjectID:     subject.SubjectID,
			LastReading:   last.UTC().Format(time.RFC3339),
			ReadingsCount: len(readings),
		})
	}
	return resp, nil
}

// SystemStats reports coarse counters for dashboards.
func (s *MonitoringService) SystemStats(ctx context.Context) (*models.SystemStatsResponse, error) {
	total, err := s.subjects.Count(ctx)
	if err != nil {
		return nil, NewServiceErrorWithDetails("STORE_FAILED", "Failed to count subjects",
			map[string]interface{}{"error": err.Error()})
	}

	active, err := s.ActiveSubjects(ctx)
	if err != nil {
		return nil, err
	}
	recent := 0
	for _, subject := range active.ActiveSubjects {
		recent += subject.ReadingsCount
	}

	return &models.SystemStatsResponse{
		TotalSubjects:       total,
		RecentVitalReadings: recent,
		Timestamp:           time.Now().UTC().Format(time.RFC3339),
	}, nil
}
