package services

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/logging"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/models"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/queue"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/vitals"
)

func testLogger() *logging.Logger {
	return logging.NewWithWriter(io.Discard, zerolog.ErrorLevel)
}

func f64(v float64) *float64 { return &v }

func serviceErrorCode(t *testing.T, err error) string {
	t.Helper()
	serviceErr, ok := err.(*ServiceError)
	if !ok {
		t.Fatalf("err = %v, want *ServiceError", err)
	}
	return serviceErr.Code
}

func TestVitalsWriteEnqueues(t *testing.T) {
	q := queue.NewMemoryQueue()
	defer q.Close()
	svc := NewVitalsService(testLogger(), vitals.NewMemoryStore(), q)

	req := &models.WriteVitalsRequest{Readings: []models.Reading{
		{Timestamp: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), HeartRate: f64(72)},
		{Timestamp: time.Date(2025, 3, 10, 8, 1, 0, 0, time.UTC), HeartRate: f64(74)},
	}}

	resp, err := svc.Write(context.Background(), 5, req)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if resp.Accepted != 2 {
		t.Errorf("Accepted = %d, want 2", resp.Accepted)
	}
	if resp.RequestID == "" {
		t.Error("RequestID should be assigned")
	}
	// The subject ID from the path wins over the body.
	if req.Readings[0].SubjectID != 5 {
		t.Errorf("SubjectID = %d, want 5", req.Readings[0].SubjectID)
	}
	if q.Pending(queue.TopicReadings) != 1 {
		t.Errorf("Pending = %d, want 1 envelope", q.Pending(queue.TopicReadings))
	}
}

func TestVitalsWriteValidation(t *testing.T) {
	q := queue.NewMemoryQueue()
	defer q.Close()
	svc := NewVitalsService(testLogger(), vitals.NewMemoryStore(), q)
	ctx := context.Background()

	_, err := svc.Write(ctx, 1, &models.WriteVitalsRequest{})
	if serviceErrorCode(t, err) != "EMPTY_BATCH" {
		t.Errorf("code = %v, want EMPTY_BATCH", err)
	}

	big := make([]models.Reading, maxBatchSize+1)
	for i := range big {
		big[i] = models.Reading{Timestamp: time.Now()}
	}
	_, err = svc.Write(ctx, 1, &models.WriteVitalsRequest{Readings: big})
	if serviceErrorCode(t, err) != "BATCH_TOO_LARGE" {
		t.Errorf("code = %v, want BATCH_TOO_LARGE", err)
	}

	// Missing timestamp fails with the offending index.
	_, err = svc.Write(ctx, 1, &models.WriteVitalsRequest{Readings: []models.Reading{
		{Timestamp: time.Now(), HeartRate: f64(70)},
		{HeartRate: f64(72)},
	}})
	if serviceErrorCode(t, err) != "INVALID_READING" {
		t.Errorf("code = %v, want INVALID_READING", err)
	}
	if idx := err.(*ServiceError).Details["index"]; idx != 1 {
		t.Errorf("index detail = %v, want 1", idx)
	}

	if q.Pending(queue.TopicReadings) != 0 {
		t.Error("rejected batches must not reach the queue")
	}
}

func TestVitalsFetchWindow(t *testing.T) {
	store := vitals.NewMemoryStore()
	q := queue.NewMemoryQueue()
	defer q.Close()
	svc := NewVitalsService(testLogger(), store, q)
	ctx := context.Background()

	now := time.Now().UTC()
	store.Append(ctx, []models.Reading{
		{SubjectID: 3, Timestamp: now.Add(-2 * time.Hour), HeartRate: f64(70)},
		{SubjectID: 3, Timestamp: now.Add(-30 * time.Hour), HeartRate: f64(75)},
	})

	resp, err := svc.Fetch(ctx, 3, 24)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if resp.Count != 1 {
		t.Errorf("Count = %d, want 1 reading inside the 24h window", resp.Count)
	}
	if resp.Hours != 24 || resp.SubjectID != 3 {
		t.Errorf("resp = %+v", resp)
	}

	// Zero hours falls back to the 24h default.
	resp, err = svc.Fetch(ctx, 3, 0)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if resp.Hours != 24 {
		t.Errorf("Hours = %d, want default 24", resp.Hours)
	}
}
