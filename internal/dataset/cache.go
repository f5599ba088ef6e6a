package dataset

import (
	"context"
	"sync"

	"attritionlens/domain/employee"
	"attritionlens/internal"
	"attritionlens/ports"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes loaded tables per source key. An entry is reused while the
// source signature is unchanged and reloaded as soon as it differs.
// Concurrent loads of the same key and signature share one read.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*employee.Table
	group   singleflight.Group
	loads   int
	logger  *internal.Logger
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]*employee.Table),
		logger:  internal.DefaultLogger.With("DatasetCache"),
	}
}

// Get returns the table for src, loading it on first use or after the
// source changed. Errors are never cached.
func (c *Cache) Get(ctx context.Context, src ports.DatasetSource) (*employee.Table, error) {
	key := src.Key()
	sig, err := src.Signature(ctx)
	if err != nil {
		c.Invalidate(key)
		return nil, err
	}

	c.mu.RLock()
	table, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && table.Signature == sig {
		return table, nil
	}
	if ok {
		c.logger.Info("signature changed for %s, reloading", key)
	}

	v, err, _ := c.group.Do(key+"\x00"+sig, func() (interface{}, error) {
		loaded, err := loadWithSignature(ctx, src, sig)
		if err != nil {
			c.logger.Error("failed to load %s: %v", key, err)
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = loaded
		c.loads++
		c.mu.Unlock()
		c.logger.Info("loaded %d records from %s", loaded.Len(), key)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*employee.Table), nil
}

// Peek returns the cached table for key without touching the source.
func (c *Cache) Peek(key string) (*employee.Table, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.entries[key]
	return t, ok
}

// Invalidate drops the cached table for key
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Loads reports how many successful loads the cache has performed
func (c *Cache) Loads() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loads
}
