// Package orders implements the work-order repository collaborator.
//
// The timeline engine treats the repository as a black box returning at
// most Query.Limit orders per call, sorted by end instant ascending. Two
// implementations are provided: Memory for tests and demos, and Mongo for
// production. Cached decorates either with a TTL-bounded cache keyed by the
// query snapshot.
package orders

import (
	"context"
	"fmt"

	"github.com/fabwerk/ganttline/pkg/timeline"
)

// DefaultLimit is the maximum number of orders returned per fetch when the
// query does not specify one.
const DefaultLimit = 50

// Query selects and bounds an order fetch. Zero-valued filter fields mean
// "no filter".
type Query struct {
	Status   timeline.Status
	Priority timeline.Priority
	Limit    int
}

// QueryFor builds a bounded query from the engine's filter state.
func QueryFor(f timeline.Filter) Query {
	return Query{Status: f.Status, Priority: f.Priority, Limit: DefaultLimit}
}

// EffectiveLimit returns the query limit, defaulting when unset.
func (q Query) EffectiveLimit() int {
	if q.Limit <= 0 {
		return DefaultLimit
	}
	return q.Limit
}

// Snapshot returns a deterministic key for this query, used for cache keys.
func (q Query) Snapshot() string {
	return fmt.Sprintf("status=%s|priority=%s|limit=%d", q.Status, q.Priority, q.EffectiveLimit())
}

// Matches reports whether an order passes the query's exact-match filters.
func (q Query) Matches(o timeline.Order) bool {
	if q.Status != "" && o.Status != q.Status {
		return false
	}
	if q.Priority != "" && o.Priority != q.Priority {
		return false
	}
	return true
}

// Repository is the work-order source. Implementations return orders
// sorted by end instant ascending, tolerate empty results, and handle
// result sets whose dates are all equal without error.
type Repository interface {
	// FetchOrders returns at most q.EffectiveLimit() matching orders.
	FetchOrders(ctx context.Context, q Query) ([]timeline.Order, error)

	// Insert stores new orders. Used by seeding and tests.
	Insert(ctx context.Context, orders ...timeline.Order) error

	// Close releases any underlying connections.
	Close(ctx context.Context) error
}

// Fetcher adapts a Repository to the engine's timeline.FetchFunc shape.
func Fetcher(r Repository) timeline.FetchFunc {
	return func(ctx context.Context, f timeline.Filter) ([]timeline.Order, error) {
		return r.FetchOrders(ctx, QueryFor(f))
	}
}
