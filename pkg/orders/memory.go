package orders

import (
	"context"
	"sort"
	"sync"

	"github.com/fabwerk/ganttline/pkg/timeline"
)

// Memory is a slice-backed repository for tests and offline demos.
// It is safe for concurrent use.
type Memory struct {
	mu     sync.RWMutex
	orders []timeline.Order
}

// NewMemory creates an in-memory repository seeded with the given orders.
func NewMemory(seed ...timeline.Order) *Memory {
	m := &Memory{}
	m.orders = append(m.orders, seed...)
	return m
}

// FetchOrders returns matching orders sorted by end instant ascending,
// bounded by the query limit. Ties on the end instant keep insertion order
// (the sort is stable), so all-equal dates are handled without error.
func (m *Memory) FetchOrders(ctx context.Context, q Query) ([]timeline.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	matched := make([]timeline.Order, 0, len(m.orders))
	for _, o := range m.orders {
		if q.Matches(o) {
			matched = append(matched, o)
		}
	}
	m.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].End.Before(matched[j].End)
	})

	if limit := q.EffectiveLimit(); len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// Insert appends orders to the store.
func (m *Memory) Insert(ctx context.Context, orders ...timeline.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.orders = append(m.orders, orders...)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored orders.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.orders)
}

// Close does nothing for the in-memory repository.
func (m *Memory) Close(ctx context.Context) error { return nil }

// Ensure Memory implements Repository.
var _ Repository = (*Memory)(nil)
