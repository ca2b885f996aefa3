// Package cache memoizes expensive index fetches with a time-to-live.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Time-to-live values for the indices the bot reads.
const (
	SiteIndexTTL       = 3 * 24 * time.Hour
	OfficialDocsTTL    = 10 * 24 * time.Hour
	PackageRegistryTTL = 30 * 24 * time.Hour
)

// FetchFunc produces the value for a key on a cache miss.
type FetchFunc[V any] func(ctx context.Context) (V, error)

// Clock returns the current time.
type Clock func() time.Time

// Cache maps keys to values that expire ttl after they were fetched.
//
// Expired values are refetched synchronously by the next caller. Failed
// fetches are not cached. Concurrent misses for the same key share a
// single fetch.
type Cache[V any] struct {
	ttl time.Duration
	now Clock

	mu      sync.Mutex
	entries map[string]entry[V]

	group singleflight.Group
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// New returns an empty Cache.
func New[V any](ttl time.Duration) *Cache[V] {
	return NewWithClock[V](ttl, time.Now)
}

// NewWithClock returns an empty Cache that reads time from now.
func NewWithClock[V any](ttl time.Duration, now Clock) *Cache[V] {
	return &Cache[V]{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]entry[V]),
	}
}

// TTL returns the time-to-live of cached values.
func (c *Cache[V]) TTL() time.Duration {
	return c.ttl
}

// Get returns the value cached under key, calling fetch if it is missing
// or expired.
//
// A shared fetch runs on a context detached from any one caller's
// cancellation. Each caller stops waiting when its own ctx is done.
func (c *Cache[V]) Get(ctx context.Context, key string, fetch FetchFunc[V]) (V, error) {
	var zero V
	if v, ok := c.lookup(key); ok {
		return v, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		// Another caller may have filled the entry while we waited.
		if v, ok := c.lookup(key); ok {
			return v, nil
		}

		v, err := fetch(shared)
		if err != nil {
			return v, err
		}

		c.mu.Lock()
		c.entries[key] = entry[V]{value: v, expiresAt: c.now().Add(c.ttl)}
		c.mu.Unlock()
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		val, _ := res.Val.(V)
		return val, nil
	}
}

// Purge removes the value cached under key.
func (c *Cache[V]) Purge(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len returns the number of unexpired values.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0
	for _, e := range c.entries {
		if now.Before(e.expiresAt) {
			n++
		}
	}
	return n
}

func (c *Cache[V]) lookup(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}
