// Package cache provides a small in-process TTL cache: each entry is a
// value plus an expiry timestamp, checked on read and discarded when
// stale.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	val     V
	expires time.Time
}

type TTL[K comparable, V any] struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[K]entry[V]
}

func New[K comparable, V any](ttl time.Duration) *TTL[K, V] {
	return &TTL[K, V]{ttl: ttl, items: make(map[K]entry[V])}
}

// Get returns the cached value for k. A stale entry is removed and
// reported as a miss.
func (c *TTL[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[k]
	if !ok {
		var zero V
		return zero, false
	}
	if time.Now().After(e.expires) {
		delete(c.items, k)
		var zero V
		return zero, false
	}
	return e.val, true
}

func (c *TTL[K, V]) Set(k K, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[k] = entry[V]{val: v, expires: time.Now().Add(c.ttl)}
}

func (c *TTL[K, V]) Delete(k K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, k)
}
