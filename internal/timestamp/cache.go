package timestamp

import (
	"sync"
	"time"

	"ritualpair/internal/media"
)

type entry struct {
	at     time.Time
	source media.TimeSource
}

// Cache memoizes resolved timestamps per path for the lifetime the caller
// chooses. It is not global state: each engine invocation receives one, and
// a caller reprocessing edited files clears it explicitly.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewCache returns an empty timestamp cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]entry)}
}

func (c *Cache) get(path string) (entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[path]
	return e, ok
}

func (c *Cache) put(path string, e entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = e
}

// Clear drops all memoized entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len reports the number of memoized paths.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
