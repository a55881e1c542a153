package schema

import (
	"sort"
	"sync"
)

// CacheInfo describes the contents of a Cache.
type CacheInfo struct {
	CachedSchemas int      `json:"cached_schemas"`
	SchemaPaths   []string `json:"schema_paths"`
}

type cacheEntry struct {
	once   sync.Once
	schema Schema
	err    error

	// loaded is guarded by Cache.mu, the other fields by once.
	loaded bool
}

// Cache maps schema paths to compiled schemas. Each path is loaded at most
// once while the load succeeds; failed loads are not cached and are retried
// on the next request. Entries are immutable once inserted.
//
// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*cacheEntry)}
}

// GetOrLoad returns the schema cached for path, calling load to compile it
// on first use. Concurrent callers for the same path share one load.
func (c *Cache) GetOrLoad(path string, load func(string) (Schema, error)) (Schema, error) {
	c.mu.Lock()
	entry, ok := c.entries[path]
	if !ok {
		entry = &cacheEntry{}
		c.entries[path] = entry
	}
	c.mu.Unlock()

	entry.once.Do(func() {
		entry.schema, entry.err = load(path)
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	if entry.err != nil {
		if c.entries[path] == entry {
			delete(c.entries, path)
		}
		return nil, entry.err
	}
	entry.loaded = true
	return entry.schema, nil
}

// Info reports the paths of the successfully loaded schemas, sorted.
func (c *Cache) Info() CacheInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	paths := make([]string, 0, len(c.entries))
	for p, e := range c.entries {
		if e.loaded {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return CacheInfo{CachedSchemas: len(paths), SchemaPaths: paths}
}

// Clear drops every entry. Schemas already handed out stay usable.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}
