package orders

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fabwerk/ganttline/pkg/cache"
	"github.com/fabwerk/ganttline/pkg/timeline"
)

// Cached decorates a Repository with a TTL cache keyed by query snapshot.
// Cache failures degrade to pass-through fetches; they never fail a read.
type Cached struct {
	inner Repository
	cache cache.Cache
	ttl   time.Duration
}

// NewCached wraps inner with the given cache. A zero ttl uses the package
// default for order fetches.
func NewCached(inner Repository, c cache.Cache, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = cache.TTLOrders
	}
	return &Cached{inner: inner, cache: c, ttl: ttl}
}

// FetchOrders serves from cache when possible, otherwise fetches from the
// inner repository and stores the result.
func (c *Cached) FetchOrders(ctx context.Context, q Query) ([]timeline.Order, error) {
	key := cache.Key("orders", q.Snapshot())

	if data, hit, err := c.cache.Get(ctx, key); err == nil && hit {
		var cached []timeline.Order
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		// Corrupt entry: drop it and fall through to a real fetch.
		_ = c.cache.Delete(ctx, key)
	}

	fetched, err := c.inner.FetchOrders(ctx, q)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(fetched); err == nil {
		_ = c.cache.Set(ctx, key, data, c.ttl)
	}
	return fetched, nil
}

// Insert writes through to the inner repository and invalidates nothing:
// entries expire on their own short TTL.
func (c *Cached) Insert(ctx context.Context, orders ...timeline.Order) error {
	return c.inner.Insert(ctx, orders...)
}

// Close closes the inner repository and the cache.
func (c *Cached) Close(ctx context.Context) error {
	err := c.inner.Close(ctx)
	if cerr := c.cache.Close(); err == nil {
		err = cerr
	}
	return err
}

// Ensure Cached implements Repository.
var _ Repository = (*Cached)(nil)
