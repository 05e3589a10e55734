package vitals

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/models"
)

// RedisConfig holds Redis connection settings for the vitals store.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	KeyPrefix  string
	Retention  time.Duration
	MaxRetries int
}

// RedisStore keeps each subject's readings in a sorted set scored by the
// reading timestamp, which makes range fetches a single ZRANGEBYSCORE.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	retention time.Duration
}

// NewRedisStore connects to Redis and verifies the connection before
// returning.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "vitals"
	}

	client := redis.NewClient(&redis.Options{
		Addr:       cfg.Addr,
		Password:   cfg.Password,
		DB:         cfg.DB,
		MaxRetries: cfg.MaxRetries,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
		retention: cfg.Retention,
	}, nil
}

func (s *RedisStore) key(subjectID int) string {
	return fmt.Sprintf("%s:subject:%d", s.keyPrefix, subjectID)
}

// Append writes readings as sorted-set members scored by unix timestamp and
// trims anything past the retention window.
func (s *RedisStore) Append(ctx context.Context, readings []models.Reading) error {
	pipe := s.client.Pipeline()
	touched := make(map[int]struct{})
	for _, reading := range readings {
		payload, err := json.Marshal(reading)
		if err != nil {
			return fmt.Errorf("failed to encode reading: %w", err)
		}
		pipe.ZAdd(ctx, s.key(reading.SubjectID), redis.Z{
			Score:  float64(reading.Timestamp.UnixNano()),
			Member: payload,
		})
		touched[reading.SubjectID] = struct{}{}
	}
	if s.retention > 0 {
		cutoff := time.Now().Add(-s.retention).UnixNano()
		for subjectID := range touched {
			pipe.ZRemRangeByScore(ctx, s.key(subjectID), "-inf", strconv.FormatInt(cutoff, 10))
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append readings: %w", err)
	}
	return nil
}

// FetchRange returns readings with timestamps in [start, end).
func (s *RedisStore) FetchRange(ctx context.Context, subjectID int, start, end time.Time) ([]models.Reading, error) {
	members, err := s.client.ZRangeByScore(ctx, s.key(subjectID), &redis.ZRangeBy{
		Min: strconv.FormatInt(start.UnixNano(), 10),
		Max: "(" + strconv.FormatInt(end.UnixNano(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch readings: %w", err)
	}
	return decodeReadings(members)
}

// FetchRecent returns up to limit of the newest readings, ascending.
func (s *RedisStore) FetchRecent(ctx context.Context, subjectID int, limit int) ([]models.Reading, error) {
	if limit <= 0 {
		return nil, nil
	}
	members, err := s.client.ZRevRange(ctx, s.key(subjectID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent readings: %w", err)
	}
	readings, err := decodeReadings(members)
	if err != nil {
		return nil, err
	}
	// ZRevRange hands back newest first.
	for i, j := 0, len(readings)-1; i < j; i, j = i+1, j-1 {
		readings[i], readings[j] = readings[j], readings[i]
	}
	return readings, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func decodeReadings(members []string) ([]models.Reading, error) {
	readings := make([]models.Reading, 0, len(members))
	for _, member := range members {
		var reading models.Reading
		if err := json.Unmarshal([]byte(member), &reading); err != nil {
			return nil, fmt.Errorf("failed to decode reading: %w", err)
		}
		readings = append(readings, reading)
	}
	return readings, nil
}
