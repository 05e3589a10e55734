package queue

import (
	"fmt"
	"strings"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/config"
)

// NewQueue builds a Queue from configuration. The default transport is
// NATS.
func NewQueue(cfg config.QueueConfig) (Queue, error) {
	queueType := strings.ToLower(cfg.Type)
	if queueType == "" {
		queueType = "nats"
	}

	switch queueType {
	case "nats":
		return NewNATSQueue(cfg.URL)

	case "redis":
		return NewRedisQueue(RedisQueueConfig{
			URL:      cfg.URL,
			Password: cfg.Password,
			DB:       cfg.RedisDB,
			Stream:   cfg.RedisStream,
			Group:    cfg.RedisGroup,
			Consumer: cfg.RedisConsumer,
		})

	case "kafka":
		return NewKafkaQueue(KafkaQueueConfig{
			Brokers: cfg.KafkaBrokers,
			GroupID: cfg.KafkaGroupID,
		})

	case "memory":
		return NewMemoryQueue(), nil

	default:
		return nil, fmt.Errorf("unsupported queue type: %s (supported: nats, redis, kafka, memory)", queueType)
	}
}

// NewPublisher builds the publish side only.
func NewPublisher(cfg config.QueueConfig) (Publisher, error) {
	return NewQueue(cfg)
}

// NewSubscriber builds the subscribe side only.
func NewSubscriber(cfg config.QueueConfig) (Subscriber, error) {
	return NewQueue(cfg)
}
