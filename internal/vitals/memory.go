package vitals

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/models"
)

// MemoryStore is an in-memory Store used by tests and local development.
type MemoryStore struct {
	mu       sync.RWMutex
	readings map[int][]models.Reading
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{readings: make(map[int][]models.Reading)}
}

// Append stores readings, keeping each subject's slice sorted by timestamp.
func (s *MemoryStore) Append(ctx context.Context, readings []models.Reading) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	touched := make(map[int]struct{})
	for _, reading := range readings {
		s.readings[reading.SubjectID] = append(s.readings[reading.SubjectID], reading)
		touched[reading.SubjectID] = struct{}{}
	}
	for subjectID := range touched {
		rs := s.readings[subjectID]
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].Timestamp.Before(rs[j].Timestamp) })
	}
	return nil
}

// FetchRange returns readings with timestamps in [start, end).
func (s *MemoryStore) FetchRange(ctx context.Context, subjectID int, start, end time.Time) ([]models.Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Reading
	for _, reading := range s.readings[subjectID] {
		if reading.Timestamp.Before(start) || !reading.Timestamp.Before(end) {
			continue
		}
		out = append(out, reading)
	}
	return out, nil
}

// FetchRecent returns up to limit of the newest readings, ascending.
func (s *MemoryStore) FetchRecent(ctx context.Context, subjectID int, limit int) ([]models.Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rs := s.readings[subjectID]
	if limit <= 0 || len(rs) == 0 {
		return nil, nil
	}
	if limit > len(rs) {
		limit = len(rs)
	}
	out := make([]models.Reading, limit)
	copy(out, rs[len(rs)-limit:])
	return out, nil
}

// SubjectIDs returns the subjects that have at least one stored reading.
func (s *MemoryStore) SubjectIDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int, 0, len(s.readings))
	for id := range s.readings {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
