package subjects

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/models"
)

// MemoryStore is an in-memory Store for tests and local development.
type MemoryStore struct {
	mu       sync.RWMutex
	subjects map[int]models.Subject
	nextID   int
}

// NewMemoryStore creates an empty in-memory registry.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{subjects: make(map[int]models.Subject), nextID: 1}
}

// Get fetches one subject by ID.
func (s *MemoryStore) Get(ctx context.Context, subjectID int) (*models.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	subject, ok := s.subjects[subjectID]
	if !ok {
		return nil, ErrNotFound
	}
	return &subject, nil
}

// List returns subjects ordered by ID with limit/offset paging.
func (s *MemoryStore) List(ctx context.Context, limit, offset int) ([]models.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int, 0, len(s.subjects))
	for id := range s.subjects {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var out []models.Subject
	for i, id := range ids {
		if i < offset {
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, s.subjects[id])
	}
	return out, nil
}

// Create assigns the next ID and stores the subject.
func (s *MemoryStore) Create(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := *subject
	created.SubjectID = s.nextID
	created.CreatedAt = time.Now().UTC()
	s.nextID++
	s.subjects[created.SubjectID] = created
	return &created, nil
}

// Count returns the number of registered subjects.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subjects), nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
