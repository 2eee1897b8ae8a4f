package schedule

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// TableLoader is satisfied by *Loader
type TableLoader interface {
	Load(ctx context.Context, path string) (*Table, error)
}

// Cache memoizes tables by path. Entries live until Invalidate or Purge;
// concurrent misses on one path share a single load.
//
// Every Invalidate bumps the path's generation and every Purge bumps the
// epoch. A load only stores its table if neither moved while it ran, so a
// slow read that started before a reload never replaces the reloaded table.
type Cache struct {
	loader TableLoader
	logger *slog.Logger

	mu      sync.RWMutex
	entries map[string]*Table
	gens    map[string]uint64
	epoch   uint64
	group   singleflight.Group
}

type generation struct {
	epoch uint64
	path  uint64
}

// NewCache creates an empty cache in front of loader
func NewCache(loader TableLoader, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		loader:  loader,
		logger:  logger.With(slog.String("component", "schedule_cache")),
		entries: make(map[string]*Table),
		gens:    make(map[string]uint64),
	}
}

// Get returns the cached table for path, loading it on first use. Failed
// loads are not cached.
func (c *Cache) Get(ctx context.Context, path string) (*Table, error) {
	c.mu.RLock()
	table, ok := c.entries[path]
	c.mu.RUnlock()
	if ok {
		return table, nil
	}

	v, err, shared := c.group.Do(path, func() (interface{}, error) {
		c.mu.RLock()
		cached, ok := c.entries[path]
		started := c.generationLocked(path)
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		loaded, err := c.loader.Load(ctx, path)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		current := c.generationLocked(path) == started
		if current {
			c.entries[path] = loaded
		}
		c.mu.Unlock()
		if !current {
			c.logger.DebugContext(ctx, "schedule cache dropped stale load",
				slog.String("source", path))
		}
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "schedule cache miss",
		slog.String("source", path),
		slog.Bool("shared", shared))
	return v.(*Table), nil
}

// Peek returns the cached table for path without loading
func (c *Cache) Peek(path string) (*Table, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	table, ok := c.entries[path]
	return table, ok
}

// generationLocked must be called with mu held
func (c *Cache) generationLocked(path string) generation {
	return generation{epoch: c.epoch, path: c.gens[path]}
}

// Invalidate drops the entry for path. Loads already in flight for path
// still return their table to their callers but do not cache it.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.gens[path]++
	c.mu.Unlock()
	c.group.Forget(path)
}

// Purge drops every entry
func (c *Cache) Purge() {
	c.mu.Lock()
	paths := make([]string, 0, len(c.entries))
	for p := range c.entries {
		paths = append(paths, p)
	}
	c.entries = make(map[string]*Table)
	c.epoch++
	c.mu.Unlock()

	for _, p := range paths {
		c.group.Forget(p)
	}
}

// Len returns the number of cached tables
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
