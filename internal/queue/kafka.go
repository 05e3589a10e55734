package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaQueueConfig holds Kafka transport settings.
type KafkaQueueConfig struct {
	Brokers      []string
	GroupID      string
	BatchSize    int
	BatchTimeout time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

// KafkaQueue implements Queue on Apache Kafka with consumer-group commits.
type KafkaQueue struct {
	config        KafkaQueueConfig
	mu            sync.RWMutex
	writers       map[string]*kafka.Writer
	readers       map[string]*kafka.Reader
	subscriptions map[string]context.CancelFunc
}

// NewKafkaQueue creates a Kafka queue. Connections are established lazily
// per topic on first use.
func NewKafkaQueue(cfg KafkaQueueConfig) (*KafkaQueue, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers not configured")
	}
	if cfg.GroupID == "" {
		cfg.GroupID = "healthpipe-group"
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.BatchTimeout == 0 {
		cfg.BatchTimeout = 10 * time.Millisecond
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBackoff == 0 {
		cfg.RetryBackoff = 100 * time.Millisecond
	}
	return &KafkaQueue{
		config:        cfg,
		writers:       make(map[string]*kafka.Writer),
		readers:       make(map[string]*kafka.Reader),
		subscriptions: make(map[string]context.CancelFunc),
	}, nil
}

func (q *KafkaQueue) writer(topic string) *kafka.Writer {
	q.mu.Lock()
	defer q.mu.Unlock()
	if w, ok := q.writers[topic]; ok {
		return w
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(q.config.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    q.config.BatchSize,
		BatchTimeout: q.config.BatchTimeout,
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  q.config.MaxRetries,
	}
	q.writers[topic] = w
	return w
}

// Publish writes one message to the topic.
func (q *KafkaQueue) Publish(ctx context.Context, topic string, data []byte) error {
	err := q.writer(topic).WriteMessages(ctx, kafka.Message{Value: data, Time: time.Now()})
	if err != nil {
		return fmt.Errorf("failed to publish to kafka topic %s: %w", topic, err)
	}
	return nil
}

// PublishBatch writes all payloads in one producer call.
func (q *KafkaQueue) PublishBatch(ctx context.Context, topic string, payloads [][]byte) (int, error) {
	if len(payloads) == 0 {
		return 0, nil
	}
	msgs := make([]kafka.Message, len(payloads))
	now := time.Now()
	for i, payload := range payloads {
		msgs[i] = kafka.Message{Value: payload, Time: now}
	}
	if err := q.writer(topic).WriteMessages(ctx, msgs...); err != nil {
		return 0, fmt.Errorf("failed to publish batch: %w", err)
	}
	return len(msgs), nil
}

// Subscribe starts a consumer-group reader for the topic.
func (q *KafkaQueue) Subscribe(topic string, handler Handler) error {
	q.mu.Lock()
	if _, ok := q.subscriptions[topic]; ok {
		q.mu.Unlock()
		return fmt.Errorf("already subscribed to topic: %s", topic)
	}
	q.mu.Unlock()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  q.config.Brokers,
		GroupID:  q.config.GroupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())
	q.mu.Lock()
	q.readers[topic] = reader
	q.subscriptions[topic] = cancel
	q.mu.Unlock()

	go q.consume(ctx, reader, handler)
	return nil
}

func (q *KafkaQueue) consume(ctx context.Context, reader *kafka.Reader, handler Handler) {
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			continue
		}
		if err := handler(ctx, msg.Value); err != nil {
			// Uncommitted messages are redelivered on rebalance.
			continue
		}
		for i := 0; i < q.config.MaxRetries; i++ {
			if err := reader.CommitMessages(ctx, msg); err == nil {
				break
			}
			if ctx.Err() != nil {
				return
			}
			time.Sleep(q.config.RetryBackoff)
		}
	}
}

// Unsubscribe stops and closes the topic reader.
func (q *KafkaQueue) Unsubscribe(topic string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	cancel, ok := q.subscriptions[topic]
	if !ok {
		return fmt.Errorf("not subscribed to topic: %s", topic)
	}
	cancel()
	if reader, ok := q.readers[topic]; ok {
		_ = reader.Close()
		delete(q.readers, topic)
	}
	delete(q.subscriptions, topic)
	return nil
}

// Close closes all readers and writers.
func (q *KafkaQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	var lastErr error
	for topic, cancel := range q.subscriptions {
		cancel()
		if reader, ok := q.readers[topic]; ok {
			if err := reader.Close(); err != nil {
				lastErr = err
			}
		}
		delete(q.subscriptions, topic)
		delete(q.readers, topic)
	}
	for topic, writer := range q.writers {
		if err := writer.Close(); err != nil {
			lastErr = err
		}
		delete(q.writers, topic)
	}
	return lastErr
}
