// Package queue moves reading batches between the ingest API and the
// ingestion worker over a pluggable message transport.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/models"
)

// TopicReadings is the topic carrying accepted vital-sign readings.
const TopicReadings = "vitals.readings"

// Handler processes one delivered message. Returning an error leaves the
// message unacknowledged so the transport can redeliver it.
type Handler func(ctx context.Context, data []byte) error

// Publisher publishes messages to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, data []byte) error

	// PublishBatch publishes many messages and reports how many were
	// accepted by the transport.
	PublishBatch(ctx context.Context, topic string, payloads [][]byte) (int, error)

	Close() error
}

// Subscriber consumes messages from a topic.
type Subscriber interface {
	Subscribe(topic string, handler Handler) error
	Unsubscribe(topic string) error
	Close() error
}

// Queue combines both sides of the transport.
type Queue interface {
	Publisher
	Subscriber
}

// Envelope wraps a reading batch with its enqueue metadata.
type Envelope struct {
	RequestID string           `json:"request_id"`
	Readings  []models.Reading `json:"readings"`
}

// PublishReadings encodes a batch envelope and publishes it on the readings
// topic.
func PublishReadings(ctx context.Context, pub Publisher, requestID string, readings []models.Reading) error {
	payload, err := json.Marshal(Envelope{RequestID: requestID, Readings: readings})
	if err != nil {
		return fmt.Errorf("failed to encode reading envelope: %w", err)
	}
	return pub.Publish(ctx, TopicReadings, payload)
}

// DecodeEnvelope decodes a readings-topic payload.
func DecodeEnvelope(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode reading envelope: %w", err)
	}
	return &env, nil
}
