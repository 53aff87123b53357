// Package cache provides a small TTL cache used to memoize repository
// fetches. Three backends are provided: Redis for multi-instance server
// deployments, a file cache for CLI usage, and a null cache that disables
// caching entirely.
package cache

import (
	"context"
	"time"
)

// TTLOrders is the default lifetime of a cached order fetch. Orders change
// on the shop floor; the cache only smooths bursts of identical requests.
const TTLOrders = 30 * time.Second

// Cache is a byte-oriented TTL cache.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given time-to-live. A zero ttl means
	// the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
