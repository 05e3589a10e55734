// Package vitals provides the storage layer for raw readings: a Redis-backed
// store for deployments and an in-memory store for tests and development.
package vitals

import (
	"context"
	"time"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/models"
)

// Store is the reading storage contract. Fetches return readings ordered
// ascending by timestamp; the end of a range is exclusive.
type Store interface {
	// Append persists a batch of validated readings.
	Append(ctx context.Context, readings []models.Reading) error

	// FetchRange returns a subject's readings with start <= t < end.
	FetchRange(ctx context.Context, subjectID int, start, end time.Time) ([]models.Reading, error)

	// FetchRecent returns up to limit of the subject's newest readings,
	// still ordered ascending.
	FetchRecent(ctx context.Context, subjectID int, limit int) ([]models.Reading, error)

	// Close releases the underlying connection.
	Close() error
}
