// Package memory provides an in-process cache.Cache with LRU eviction and
// per-entry expiration.
package memory

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gaborage/salesquery/cache"
)

// DefaultMaxEntries is used when Options.MaxEntries is not positive.
const DefaultMaxEntries = 100

// Options configures a Cache.
type Options struct {
	MaxEntries int // Maximum number of entries kept (default 100)
	// Now overrides the clock; used by tests.
	Now func() time.Time
}

// Cache is a bounded LRU cache. The least recently used entry is evicted once
// MaxEntries is reached; expired entries are dropped on access.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	lru     *list.List
	maxSize int
	now     func() time.Time
	closed  atomic.Bool

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// entry represents a cached value with metadata
type entry struct {
	key       string
	value     []byte
	expiresAt time.Time // zero means no expiration
	element   *list.Element
}

func (e *entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// New creates an empty cache.
func New(opts Options) *Cache {
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultMaxEntries
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Cache{
		entries: make(map[string]*entry),
		lru:     list.New(),
		maxSize: opts.MaxEntries,
		now:     opts.Now,
	}
}

// Get returns a copy of the stored value, or cache.ErrNotFound.
func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	if c.closed.Load() {
		return nil, cache.ErrClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		return nil, cache.ErrNotFound
	}
	if e.expired(c.now()) {
		c.removeLocked(e)
		c.misses.Add(1)
		return nil, cache.ErrNotFound
	}

	c.lru.MoveToFront(e.element)
	c.hits.Add(1)

	return append([]byte(nil), e.value...), nil
}

// Set stores a copy of value.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if c.closed.Load() {
		return cache.ErrClosed
	}
	if ttl < 0 {
		return cache.ErrInvalidTTL
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}
	stored := append([]byte(nil), value...)

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = stored
		e.expiresAt = expiresAt
		c.lru.MoveToFront(e.element)
		return nil
	}

	c.evictIfNeeded()

	e := &entry{key: key, value: stored, expiresAt: expiresAt}
	e.element = c.lru.PushFront(e)
	c.entries[key] = e

	return nil
}

// Delete removes key if present.
func (c *Cache) Delete(_ context.Context, key string) error {
	if c.closed.Load() {
		return cache.ErrClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.removeLocked(e)
	}
	return nil
}

// Health reports cache.ErrClosed after Close.
func (c *Cache) Health(_ context.Context) error {
	if c.closed.Load() {
		return cache.ErrClosed
	}
	return nil
}

// Stats returns entry count, capacity and hit/miss/eviction counters.
func (c *Cache) Stats() (map[string]any, error) {
	c.mu.Lock()
	size := len(c.entries)
	c.mu.Unlock()

	return map[string]any{
		"entries":     size,
		"max_entries": c.maxSize,
		"hits":        c.hits.Load(),
		"misses":      c.misses.Load(),
		"evictions":   c.evictions.Load(),
	}, nil
}

// Len returns the number of stored entries, including expired ones not yet dropped.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close drops every entry. It is idempotent.
func (c *Cache) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry)
	c.lru.Init()
	return nil
}

// evictIfNeeded removes the least recently used entry if at capacity.
func (c *Cache) evictIfNeeded() {
	if len(c.entries) < c.maxSize {
		return
	}

	oldest := c.lru.Back()
	if oldest == nil {
		return
	}

	c.removeLocked(oldest.Value.(*entry))
	c.evictions.Add(1)
}

func (c *Cache) removeLocked(e *entry) {
	delete(c.entries, e.key)
	c.lru.Remove(e.element)
}

var _ cache.Cache = (*Cache)(nil)
