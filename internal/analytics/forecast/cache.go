package forecast

import (
	"sync"
	"time"
)

// CachedModel pairs a fitted model with the moment it was trained so callers
// can expire stale fits.
type CachedModel struct {
	Model     *Model
	TrainedAt time.Time
}

// ModelCache holds fitted models keyed by subject and signal. Entries are
// replaced whole under the lock, so a reader always sees either the old fit
// or the new one, never a partially trained model.
type ModelCache struct {
	mu     sync.RWMutex
	models map[modelKey]CachedModel
}

type modelKey struct {
	subjectID int
	signal    string
}

// NewModelCache returns an empty cache.
func NewModelCache() *ModelCache {
	return &ModelCache{models: make(map[modelKey]CachedModel)}
}

// Get returns the cached model for the subject/signal pair, if any.
func (c *ModelCache) Get(subjectID int, signal string) (CachedModel, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.models[modelKey{subjectID, signal}]
	return entry, ok
}

// Put stores a fitted model, replacing any previous entry for the pair.
func (c *ModelCache) Put(subjectID int, signal string, model *Model) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.models[modelKey{subjectID, signal}] = CachedModel{
		Model:     model,
		TrainedAt: time.Now().UTC(),
	}
}

// Invalidate drops all cached models for a subject.
func (c *ModelCache) Invalidate(subjectID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.models {
		if key.subjectID == subjectID {
			delete(c.models, key)
		}
	}
}

// Len returns the number of cached models.
func (c *ModelCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.models)
}
