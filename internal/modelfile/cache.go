package modelfile

import (
	"fmt"
	"sync"

	"wireframe-renderer/internal/scene"
)

// Cache is a concurrency-safe model file cache. Every Get returns a fresh
// deep copy, so each Position can own its Model outright while the file
// is parsed only once.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	model *scene.Model
	err   error
}

// NewCache creates a cache resolving references through index, which may be nil.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Get loads, or reuses, the model file ref refers to and returns a copy.
// Load failures are cached too.
func (c *Cache) Get(ref string) (*scene.Model, error) {
	path, ok := c.index.ResolvePath(ref)
	if !ok {
		return nil, fmt.Errorf("modelfile: no model file for %q", ref)
	}

	// Fast path: read lock
	c.mu.RLock()
	entry, exists := c.items[path]
	c.mu.RUnlock()

	if !exists {
		// Slow path: parse, then insert unless another goroutine beat us
		m, err := Load(path)
		c.mu.Lock()
		if entry, exists = c.items[path]; !exists {
			entry = &cacheEntry{model: m, err: err}
			c.items[path] = entry
		}
		c.mu.Unlock()
	}

	if entry.err != nil {
		return nil, entry.err
	}
	return entry.model.Clone(), nil
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
