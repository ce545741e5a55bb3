package filter

import (
	lru "github.com/hashicorp/golang-lru"
)

// filterCache keeps compiled filters keyed by their expression
type filterCache struct {
	lru *lru.Cache
}

// newFilterCache creates a cache holding at most size filters
func newFilterCache(size int) (*filterCache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &filterCache{lru: c}, nil
}

// Get retrieves a compiled filter
func (c *filterCache) Get(expression string) (CompiledFilter, bool) {
	v, ok := c.lru.Get(expression)
	if !ok {
		return nil, false
	}
	f, ok := v.(CompiledFilter)
	return f, ok
}

// Put adds or updates a compiled filter
func (c *filterCache) Put(expression string, f CompiledFilter) {
	c.lru.Add(expression, f)
}

// Clear removes all items from the cache
func (c *filterCache) Clear() {
	c.lru.Purge()
}

// Size returns the number of items in the cache
func (c *filterCache) Size() int {
	return c.lru.Len()
}
