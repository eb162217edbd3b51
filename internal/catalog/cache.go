package catalog

import (
	"context"
	"sync"
)

// DetailCache remembers plant detail records for the lifetime of a session.
// There is deliberately no eviction: catalogs are small and sessions are
// short-lived, so a bounded cache would only add invalidation questions.
type DetailCache struct {
	mu sync.RWMutex
	m  map[int]Plant
}

func NewDetailCache() *DetailCache {
	return &DetailCache{m: map[int]Plant{}}
}

func (c *DetailCache) Get(id int) (Plant, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.m[id]
	return p, ok
}

func (c *DetailCache) Put(id int, p Plant) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[id] = p
}

// GetOrFetch returns the cached record if present, otherwise invokes fetch
// and caches the result. A failed fetch caches nothing, so the next call
// tries the upstream again.
func (c *DetailCache) GetOrFetch(ctx context.Context, id int, fetch func(context.Context, int) (Plant, error)) (Plant, error) {
	if p, ok := c.Get(id); ok {
		return p, nil
	}

	p, err := fetch(ctx, id)
	if err != nil {
		return Plant{}, err
	}

	c.Put(id, p)
	return p, nil
}
