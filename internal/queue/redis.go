package queue

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisQueueConfig holds Redis Streams transport settings.
type RedisQueueConfig struct {
	URL      string
	Password string
	DB       int
	Stream   string // stream name prefix
	Group    string // consumer group
	Consumer string // consumer name, defaults to hostname
}

// RedisQueue implements Queue on Redis Streams with a consumer group, so
// unacknowledged reading batches are redelivered.
type RedisQueue struct {
	client        *redis.Client
	config        RedisQueueConfig
	mu            sync.RWMutex
	subscriptions map[string]context.CancelFunc
}

// NewRedisQueue connects to Redis and verifies the connection.
func NewRedisQueue(cfg RedisQueueConfig) (*RedisQueue, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		opts = &redis.Options{
			Addr:     cfg.URL,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if cfg.Stream == "" {
		cfg.Stream = "healthpipe"
	}
	if cfg.Group == "" {
		cfg.Group = "healthpipe-group"
	}
	if cfg.Consumer == "" {
		hostname, _ := os.Hostname()
		if hostname == "" {
			hostname = "consumer-1"
		}
		cfg.Consumer = hostname
	}

	return &RedisQueue{
		client:        client,
		config:        cfg,
		subscriptions: make(map[string]context.CancelFunc),
	}, nil
}

func (q *RedisQueue) streamName(topic string) string {
	return fmt.Sprintf("%s:%s", q.config.Stream, topic)
}

// Publish appends the payload to the topic's stream.
func (q *RedisQueue) Publish(ctx context.Context, topic string, data []byte) error {
	stream := q.streamName(topic)
	err := q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		ID:     "*",
		Values: map[string]interface{}{"data": data},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to publish to stream %s: %w", stream, err)
	}
	return nil
}

// PublishBatch appends all payloads in one pipeline round trip.
func (q *RedisQueue) PublishBatch(ctx context.Context, topic string, payloads [][]byte) (int, error) {
	if len(payloads) == 0 {
		return 0, nil
	}
	pipe := q.client.Pipeline()
	stream := q.streamName(topic)
	for _, payload := range payloads {
		pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: stream,
			ID:     "*",
			Values: map[string]interface{}{"data": payload},
		})
	}
	cmds, err := pipe.Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to execute batch publish: %w", err)
	}
	accepted := 0
	for _, cmd := range cmds {
		if cmd.Err() == nil {
			accepted++
		}
	}
	return accepted, nil
}

// Subscribe creates the consumer group if needed and starts a background
// reader.
func (q *RedisQueue) Subscribe(topic string, handler Handler) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.subscriptions[topic]; ok {
		return fmt.Errorf("already subscribed to topic: %s", topic)
	}

	stream := q.streamName(topic)
	ctx, cancel := context.WithCancel(context.Background())

	err := q.client.XGroupCreateMkStream(ctx, stream, q.config.Group, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		cancel()
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	go q.readStream(ctx, stream, handler)
	q.subscriptions[topic] = cancel
	return nil
}

func (q *RedisQueue) readStream(ctx context.Context, stream string, handler Handler) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    q.config.Group,
			Consumer: q.config.Consumer,
			Streams:  []string{stream, ">"},
			Count:    100,
			Block:    5 * time.Second,
		}).Result()
		if err != nil {
			continue
		}

		for _, s := range streams {
			for _, msg := range s.Messages {
				data, ok := msg.Values["data"].(string)
				if !ok {
					q.client.XAck(ctx, stream, q.config.Group, msg.ID)
					continue
				}
				if err := handler(ctx, []byte(data)); err != nil {
					// Leave unacked for redelivery.
					continue
				}
				q.client.XAck(ctx, stream, q.config.Group, msg.ID)
			}
		}
	}
}

// Unsubscribe stops the topic reader.
func (q *RedisQueue) Unsubscribe(topic string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	cancel, ok := q.subscriptions[topic]
	if !ok {
		return fmt.Errorf("not subscribed to topic: %s", topic)
	}
	cancel()
	delete(q.subscriptions, topic)
	return nil
}

// Close stops all readers and closes the connection.
func (q *RedisQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for topic, cancel := range q.subscriptions {
		cancel()
		delete(q.subscriptions, topic)
	}
	return q.client.Close()
}
