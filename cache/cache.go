// Package cache bounds repeat runs against the upstream site.
package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/AJ-Clark83/bears/models"
)

// ResultCache holds completed run results keyed by run configuration. A
// repeated request with an identical configuration inside the TTL window is
// served from memory instead of re-driving the browser. This is the system's
// only backpressure against hammering the upstream site.
type ResultCache struct {
	lru *lru.LRU[string, *models.Result]
}

// New builds a cache bounded by size entries and a per-entry TTL.
func New(size int, ttl time.Duration) *ResultCache {
	return &ResultCache{
		lru: lru.NewLRU[string, *models.Result](size, nil, ttl),
	}
}

// Get returns a cached result if the key is present and unexpired.
func (c *ResultCache) Get(key string) (*models.Result, bool) {
	return c.lru.Get(key)
}

// Add stores a completed run result.
func (c *ResultCache) Add(key string, result *models.Result) {
	c.lru.Add(key, result)
}
