// Package subjects provides the subject registry: demographic records keyed
// by subject ID, backed by Postgres in deployments and memory in tests.
package subjects

import (
	"context"
	"errors"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/models"
)

// ErrNotFound is returned when a subject ID has no record.
var ErrNotFound = errors.New("subject not found")

// Store is the subject registry contract.
type Store interface {
	Get(ctx context.Context, subjectID int) (*models.Subject, error)
	List(ctx context.Context, limit, offset int) ([]models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) (*models.Subject, error)
	Count(ctx context.Context) (int, error)
	Close() error
}
