// Package cache provides URL-keyed, time-boxed memoization of scored
// results. Expiry is lazy (checked on Get, no background sweep) and
// eviction is insertion-ordered, not LRU-by-access.
package cache

import (
	"strings"
	"sync"
	"time"
)

const (
	// DefaultTTL is how long an entry stays valid after insertion.
	DefaultTTL = 30 * time.Minute
	// DefaultMaxEntries bounds the cache size; the oldest-inserted entry
	// is evicted on overflow.
	DefaultMaxEntries = 100
)

type entry[T any] struct {
	value      T
	insertedAt time.Time
}

// ResultCache memoizes values by normalized URL. Safe for concurrent use.
type ResultCache[T any] struct {
	mu         sync.Mutex
	entries    map[string]entry[T]
	order      []string // insertion order, oldest first
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// Option configures a ResultCache.
type Option[T any] func(*ResultCache[T])

// WithTTL overrides the default entry lifetime.
func WithTTL[T any](ttl time.Duration) Option[T] {
	return func(c *ResultCache[T]) { c.ttl = ttl }
}

// WithMaxEntries overrides the default size bound.
func WithMaxEntries[T any](n int) Option[T] {
	return func(c *ResultCache[T]) { c.maxEntries = n }
}

// WithClock overrides the time source. Tests use this to simulate expiry.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(c *ResultCache[T]) { c.now = now }
}

// New creates a ResultCache with the default TTL and size bound.
func New[T any](opts ...Option[T]) *ResultCache[T] {
	c := &ResultCache[T]{
		entries:    make(map[string]entry[T]),
		ttl:        DefaultTTL,
		maxEntries: DefaultMaxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key normalizes a URL for use as a cache key: trimmed and lowercased.
func Key(url string) string {
	return strings.ToLower(strings.TrimSpace(url))
}

// Get returns the cached value for url. Expired entries are treated as
// absent and removed.
func (c *ResultCache[T]) Get(url string) (T, bool) {
	var zero T
	key := Key(url)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.now().Sub(e.insertedAt) > c.ttl {
		delete(c.entries, key)
		return zero, false
	}
	return e.value, true
}

// Put inserts or replaces the value for url. When the cache is full, the
// oldest-inserted live entry is evicted first.
func (c *ResultCache[T]) Put(url string, v T) {
	key := Key(url)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOldestLocked()
	}
	c.entries[key] = entry[T]{value: v, insertedAt: c.now()}
	c.order = append(c.order, key)
}

// evictOldestLocked removes the earliest-inserted entry still present.
// Stale order entries (replaced or expired keys) are skipped and dropped.
func (c *ResultCache[T]) evictOldestLocked() {
	for len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]

		if _, ok := c.entries[oldest]; ok {
			// A replaced key appears later in order; only evict if this
			// is its earliest remaining position.
			if !c.containsLater(oldest) {
				delete(c.entries, oldest)
				return
			}
		}
	}
}

func (c *ResultCache[T]) containsLater(key string) bool {
	for _, k := range c.order {
		if k == key {
			return true
		}
	}
	return false
}

// Clear drops every entry.
func (c *ResultCache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[T])
	c.order = nil
}

// Len reports the number of stored entries, including not-yet-expired ones
// only (expired entries still resident are counted until a Get touches them).
func (c *ResultCache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
