package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/logging"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/models"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/queue"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/vitals"
)

// maxBatchSize bounds one write request.
const maxBatchSize = 1000

// VitalsService handles reading ingest and retrieval
type VitalsService struct {
	logger    *logging.Logger
	store     vitals.Store
	publisher queue.Publisher
}

// NewVitalsService creates a new VitalsService
func NewVitalsService(logger *logging.Logger, store vitals.Store, publisher queue.Publisher) *VitalsService {
	return &VitalsService{logger: logger, store: store, publisher: publisher}
}

// Write validates a batch and enqueues it for ingestion. The readings are
// durable once the transport accepts them; the ingestor persists them.
func (s *VitalsService) Write(ctx context.Context, subjectID int, req *models.WriteVitalsRequest) (*models.WriteResponse, error) {
	if len(req.Readings) == 0 {
		return nil, NewServiceError("EMPTY_BATCH", "readings must not be empty")
	}
	if len(req.Readings) > maxBatchSize {
		return nil, NewServiceErrorWithDetails("BATCH_TOO_LARGE", "too many readings in one batch",
			map[string]interface{}{"max": maxBatchSize, "got": len(req.Readings)})
	}

	for i := range req.Readings {
		req.Readings[i].SubjectID = subjectID
		if err := req.Readings[i].Validate(); err != nil {
			return nil, NewServiceErrorWithDetails("INVALID_READING", err.Error(),
				map[string]interface{}{"index": i})
		}
	}

	requestID := uuid.New().String()
	if err := queue.PublishReadings(ctx, s.publisher, requestID, req.Readings); err != nil {
		return nil, NewServiceErrorWithDetails("ENQUEUE_FAILED", "Failed to enqueue readings",
			map[string]interface{}{"error": err.Error()})
	}

	s.logger.Info("Readings enqueued",
		"subject_id", subjectID,
		"count", len(req.Readings),
		"request_id", requestID)
	return &models.WriteResponse{Accepted: len(req.Readings), RequestID: requestID}, nil
}

// Fetch returns a subject's readings from the trailing window of hours.
func (s *VitalsService) Fetch(ctx context.Context, subjectID, hours int) (*models.VitalsResponse, error) {
	if hours <= 0 {
		hours = 24
	}
	end := time.Now().UTC()
	start := end.Add(-time.Duration(hours) * time.Hour)

	readings, err := s.store.FetchRange(ctx, subjectID, start, end)
	if err != nil {
		return nil, NewServiceErrorWithDetails("STORE_FAILED", "Failed to fetch readings",
			map[string]interface{}{"error": err.Error()})
	}
	return &models.VitalsResponse{
		SubjectID: subjectID,
		Hours:     hours,
		Readings:  readings,
		Count:     len(readings),
	}, nil
}

// FetchWindow returns readings between explicit bounds, used by the
// analytics service.
func (s *VitalsService) FetchWindow(ctx context.Context, subjectID int, start, end time.Time) ([]models.Reading, error) {
	readings, err := s.store.FetchRange(ctx, subjectID, start, end)
	if err != nil {
		return nil, NewServiceErrorWithDetails("STORE_FAILED", "Failed to fetch readings",
			map[string]interface{}{"error": err.Error()})
	}
	return readings, nil
}
