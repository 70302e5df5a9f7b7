package state

import (
	"sync"

	"github.com/google/uuid"
)

// Collections caches one ordered collection per game space. Callers get
// copies; the cache never hands out its own slices.
type Collections[T any] struct {
	mu    sync.RWMutex
	items map[uuid.UUID][]T
}

func NewCollections[T any]() *Collections[T] {
	return &Collections[T]{items: make(map[uuid.UUID][]T)}
}

func (c *Collections[T]) Get(gameSpaceID uuid.UUID) ([]T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items, ok := c.items[gameSpaceID]
	if !ok {
		return nil, false
	}
	return clone(items), true
}

func (c *Collections[T]) Set(gameSpaceID uuid.UUID, items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[gameSpaceID] = clone(items)
}

// Patch rewrites a loaded collection with fn under the write lock. It is a
// no-op for a game space that was never loaded.
func (c *Collections[T]) Patch(gameSpaceID uuid.UUID, fn func([]T) []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, ok := c.items[gameSpaceID]
	if ok {
		c.items[gameSpaceID] = fn(clone(items))
	}
	return ok
}

func (c *Collections[T]) Drop(gameSpaceID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, gameSpaceID)
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
