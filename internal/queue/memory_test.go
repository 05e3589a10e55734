package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/models"
)

func f64(v float64) *float64 { return &v }

func TestMemoryQueuePublishSubscribe(t *testing.T) {
	q := NewMemoryQueue()
	defer q.Close()

	var mu sync.Mutex
	var received [][]byte
	done := make(chan struct{})

	err := q.Subscribe("test.topic", func(ctx context.Context, data []byte) error {
		mu.Lock()
		received = append(received, data)
		if len(received) == 2 {
			close(done)
		}
		mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	ctx := context.Background()
	if err := q.Publish(ctx, "test.topic", []byte("one")); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := q.Publish(ctx, "test.topic", []byte("two")); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for deliveries")
	}

	mu.Lock()
	defer mu.Unlock()
	if string(received[0]) != "one" || string(received[1]) != "two" {
		t.Errorf("received %q, want [one two]", received)
	}
}

func TestMemoryQueuePublishCopiesPayload(t *testing.T) {
	q := NewMemoryQueue()
	defer q.Close()

	payload := []byte("original")
	if err := q.Publish(context.Background(), "copy.topic", payload); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	payload[0] = 'X'

	if q.Pending("copy.topic") != 1 {
		t.Fatalf("Pending = %d, want 1", q.Pending("copy.topic"))
	}
}

func TestMemoryQueuePublishBatch(t *testing.T) {
	q := NewMemoryQueue()
	defer q.Close()

	payloads := [][]byte{[]byte("a"), []byte("b"), []byte("c")}
	accepted, err := q.PublishBatch(context.Background(), "batch.topic", payloads)
	if err != nil {
		t.Fatalf("PublishBatch: %v", err)
	}
	if accepted != 3 {
		t.Errorf("accepted = %d, want 3", accepted)
	}
	if q.Pending("batch.topic") != 3 {
		t.Errorf("Pending = %d, want 3", q.Pending("batch.topic"))
	}
}

func TestMemoryQueueDoubleSubscribe(t *testing.T) {
	q := NewMemoryQueue()
	defer q.Close()

	handler := func(ctx context.Context, data []byte) error { return nil }
	if err := q.Subscribe("dup.topic", handler); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if err := q.Subscribe("dup.topic", handler); err == nil {
		t.Error("second Subscribe on the same topic should error")
	}
	if err := q.Unsubscribe("dup.topic"); err != nil {
		t.Errorf("Unsubscribe: %v", err)
	}
	if err := q.Unsubscribe("dup.topic"); err == nil {
		t.Error("Unsubscribe without a subscription should error")
	}
}

func TestEnvelopeRoundTrip(t *testing.T) {
	q := NewMemoryQueue()
	defer q.Close()

	readings := []models.Reading{
		{
			SubjectID: 4,
			Timestamp: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
			HeartRate: f64(72),
			SensorID:  "sim-004",
		},
	}

	decoded := make(chan *Envelope, 1)
	err := q.Subscribe(TopicReadings, func(ctx context.Context, data []byte) error {
		env, err := DecodeEnvelope(data)
		if err != nil {
			t.Errorf("DecodeEnvelope: %v", err)
			return err
		}
		decoded <- env
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if err := PublishReadings(context.Background(), q, "req-123", readings); err != nil {
		t.Fatalf("PublishReadings: %v", err)
	}

	select {
	case env := <-decoded:
		if env.RequestID != "req-123" {
			t.Errorf("RequestID = %q, want req-123", env.RequestID)
		}
		if len(env.Readings) != 1 || env.Readings[0].SubjectID != 4 {
			t.Errorf("Readings = %+v", env.Readings)
		}
		if env.Readings[0].HeartRate == nil || *env.Readings[0].HeartRate != 72 {
			t.Error("heart rate lost in transit")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for envelope")
	}
}

func TestDecodeEnvelopeMalformed(t *testing.T) {
	if _, err := DecodeEnvelope([]byte("{not json")); err == nil {
		t.Error("malformed payload should error")
	}
}
