package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSQueue implements Queue on NATS JetStream with durable consumers, so
// reading batches survive ingestor restarts.
type NATSQueue struct {
	conn          *nats.Conn
	js            nats.JetStreamContext
	mu            sync.RWMutex
	subscriptions map[string]*nats.Subscription
}

// NewNATSQueue connects to the NATS server and sets up a JetStream context.
func NewNATSQueue(url string) (*NATSQueue, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return newNATSQueueWithConn(conn)
}

// newNATSQueueWithConn wraps an existing connection, used by tests running
// an embedded server.
func newNATSQueueWithConn(conn *nats.Conn) (*NATSQueue, error) {
	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}
	return &NATSQueue{
		conn:          conn,
		js:            js,
		subscriptions: make(map[string]*nats.Subscription),
	}, nil
}

// Publish publishes asynchronously through JetStream.
func (q *NATSQueue) Publish(ctx context.Context, topic string, data []byte) error {
	if _, err := q.js.PublishAsync(topic, data); err != nil {
		return fmt.Errorf("failed to publish to topic %s: %w", topic, err)
	}
	return nil
}

// PublishBatch queues all payloads asynchronously then waits for the
// server's acknowledgments.
func (q *NATSQueue) PublishBatch(ctx context.Context, topic string, payloads [][]byte) (int, error) {
	if len(payloads) == 0 {
		return 0, nil
	}

	futures := make([]nats.PubAckFuture, 0, len(payloads))
	for _, payload := range payloads {
		future, err := q.js.PublishAsync(topic, payload)
		if err != nil {
			continue
		}
		futures = append(futures, future)
	}

	select {
	case <-q.js.PublishAsyncComplete():
	case <-ctx.Done():
		return 0, fmt.Errorf("timeout waiting for batch publish: %w", ctx.Err())
	}

	accepted := 0
	for _, future := range futures {
		select {
		case <-future.Ok():
			accepted++
		case <-future.Err():
		default:
			// Acked as part of PublishAsyncComplete.
			accepted++
		}
	}
	return accepted, nil
}

// Subscribe attaches a durable JetStream consumer to the topic. Failed
// handler calls NAK the message for redelivery, capped at three attempts.
func (q *NATSQueue) Subscribe(topic string, handler Handler) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.subscriptions[topic]; ok {
		return fmt.Errorf("already subscribed to topic: %s", topic)
	}

	streamName := "healthpipe-" + sanitizeName(topic)
	if _, err := q.js.StreamInfo(streamName); err != nil {
		_, err = q.js.AddStream(&nats.StreamConfig{
			Name:     streamName,
			Subjects: []string{topic},
			Storage:  nats.FileStorage,
		})
		if err != nil {
			return fmt.Errorf("failed to create stream for topic %s: %w", topic, err)
		}
	}

	durableName := "consumer-" + sanitizeName(topic)
	sub, err := q.js.Subscribe(topic, func(msg *nats.Msg) {
		if err := handler(context.Background(), msg.Data); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable(durableName),
		nats.ManualAck(),
		nats.MaxAckPending(100),
		nats.AckWait(30*time.Second),
		nats.MaxDeliver(3),
		nats.DeliverAll(),
	)
	if err != nil {
		return fmt.Errorf("failed to subscribe to topic %s: %w", topic, err)
	}

	q.subscriptions[topic] = sub
	return nil
}

// Unsubscribe detaches the topic consumer.
func (q *NATSQueue) Unsubscribe(topic string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	sub, ok := q.subscriptions[topic]
	if !ok {
		return fmt.Errorf("not subscribed to topic: %s", topic)
	}
	if err := sub.Unsubscribe(); err != nil {
		return fmt.Errorf("failed to unsubscribe from topic %s: %w", topic, err)
	}
	delete(q.subscriptions, topic)
	return nil
}

// Close detaches all consumers and closes the connection.
func (q *NATSQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for topic, sub := range q.subscriptions {
		_ = sub.Unsubscribe()
		delete(q.subscriptions, topic)
	}
	q.conn.Close()
	return nil
}

// sanitizeName replaces characters that are invalid in stream and consumer
// names (only A-Z, a-z, 0-9, dash and underscore are allowed).
func sanitizeName(topic string) string {
	out := make([]byte, 0, len(topic))
	for i := 0; i < len(topic); i++ {
		c := topic[i]
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' || c == '_' {
			out = append(out, c)
		} else {
			out = append(out, '_')
		}
	}
	return string(out)
}
