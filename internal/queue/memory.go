package queue

import (
	"context"
	"fmt"
	"sync"
)

// memoryBufferSize bounds each topic channel so a stalled consumer surfaces
// as a publish error instead of unbounded growth.
const memoryBufferSize = 10000

// MemoryQueue is a channel-backed Queue for tests and single-process
// development runs.
type MemoryQueue struct {
	mu            sync.RWMutex
	channels      map[string]chan []byte
	subscriptions map[string]context.CancelFunc
}

// NewMemoryQueue creates an empty in-memory queue.
func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{
		channels:      make(map[string]chan []byte),
		subscriptions: make(map[string]context.CancelFunc),
	}
}

func (q *MemoryQueue) channel(topic string) chan []byte {
	q.mu.Lock()
	defer q.mu.Unlock()
	if ch, ok := q.channels[topic]; ok {
		return ch
	}
	ch := make(chan []byte, memoryBufferSize)
	q.channels[topic] = ch
	return ch
}

// Publish enqueues a copy of the payload on the topic channel.
func (q *MemoryQueue) Publish(ctx context.Context, topic string, data []byte) error {
	ch := q.channel(topic)
	payload := make([]byte, len(data))
	copy(payload, data)

	select {
	case ch <- payload:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("queue full for topic: %s", topic)
	}
}

// PublishBatch enqueues each payload, counting the ones that fit.
func (q *MemoryQueue) PublishBatch(ctx context.Context, topic string, payloads [][]byte) (int, error) {
	accepted := 0
	for _, payload := range payloads {
		if err := q.Publish(ctx, topic, payload); err != nil {
			continue
		}
		accepted++
	}
	return accepted, nil
}

// Subscribe starts a background consumer for the topic.
func (q *MemoryQueue) Subscribe(topic string, handler Handler) error {
	q.mu.Lock()
	if _, ok := q.subscriptions[topic]; ok {
		q.mu.Unlock()
		return fmt.Errorf("already subscribed to topic: %s", topic)
	}
	q.mu.Unlock()

	ch := q.channel(topic)
	ctx, cancel := context.WithCancel(context.Background())

	q.mu.Lock()
	q.subscriptions[topic] = cancel
	q.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case data := <-ch:
				// No redelivery in memory: a failed message is dropped.
				_ = handler(ctx, data)
			}
		}
	}()
	return nil
}

// Unsubscribe stops the topic consumer.
func (q *MemoryQueue) Unsubscribe(topic string) error {
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

// Close stops all consumers and closes all channels.
func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for topic, cancel := range q.subscriptions {
		cancel()
		delete(q.subscriptions, topic)
	}
	for topic, ch := range q.channels {
		close(ch)
		delete(q.channels, topic)
	}
	return nil
}

// Pending returns the number of undelivered messages on a topic, used by
// tests.
func (q *MemoryQueue) Pending(topic string) int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if ch, ok := q.channels[topic]; ok {
		return len(ch)
	}
	return 0
}
