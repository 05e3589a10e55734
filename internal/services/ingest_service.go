package services

import (
	"context"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/logging"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/queue"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/vitals"
)

// IngestService drains the readings topic into the vitals store. Failed
// batches are left unacknowledged so the transport redelivers them.
type IngestService struct {
	logger     *logging.Logger
	store      vitals.Store
	subscriber queue.Subscriber
}

// NewIngestService creates a new IngestService
func NewIngestService(logger *logging.Logger, store vitals.Store, subscriber queue.Subscriber) *IngestService {
	return &IngestService{logger: logger, store: store, subscriber: subscriber}
}

// Start subscribes to the readings topic.
func (s *IngestService) Start() error {
	return s.subscriber.Subscribe(queue.TopicReadings, s.handleBatch)
}

// Stop detaches from the readings topic.
func (s *IngestService) Stop() error {
	return s.subscriber.Unsubscribe(queue.TopicReadings)
}

func (s *IngestService) handleBatch(ctx context.Context, data []byte) error {
	env, err := queue.DecodeEnvelope(data)
	if err != nil {
		// Malformed payloads can never succeed; drop instead of
		// redelivering forever.
		s.logger.Error("Dropping malformed reading envelope", "error", err)
		return nil
	}

	if err := s.store.Append(ctx, env.Readings); err != nil {
		s.logger.Error("Failed to persist readings",
			"request_id", env.RequestID,
			"count", len(env.Readings),
			"error", err)
		return err
	}

	s.logger.Debug("Readings persisted",
		"request_id", env.RequestID,
		"count", len(env.Readings))
	return nil
}
