// Package cache defines the result cache used by the query execution layer.
// Backends live in sub-packages: memory (in-process LRU) and redis.
package cache

import (
	"context"
	"time"
)

// Cache stores encoded query results by key.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns ErrNotFound if the key doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites any existing value. A ttl of 0 stores the value without
	// expiration; a negative ttl returns ErrInvalidTTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete is a no-op for missing keys.
	Delete(ctx context.Context, key string) error

	Health(ctx context.Context) error

	// Stats reports backend counters such as entries, hits and misses.
	Stats() (map[string]any, error)

	// Close releases resources. Other methods return ErrClosed afterwards.
	Close() error
}
