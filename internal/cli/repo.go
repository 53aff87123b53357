package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fabwerk/ganttline/internal/config"
	"github.com/fabwerk/ganttline/pkg/cache"
	"github.com/fabwerk/ganttline/pkg/errors"
	"github.com/fabwerk/ganttline/pkg/orders"
	"github.com/fabwerk/ganttline/pkg/timeline"
)

// openRepository builds the order repository from configuration: the Mongo
// store, decorated with the configured cache backend. With demo set, an
// in-memory repository seeded with sample orders is returned instead, so
// render and view work without a database.
func openRepository(ctx context.Context, cfg config.Config, demo bool) (orders.Repository, error) {
	if demo {
		return orders.NewMemory(demoOrders(time.Now())...), nil
	}

	repo, err := orders.NewMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return nil, err
	}

	c, err := openCache(ctx, cfg)
	if err != nil {
		_ = repo.Close(ctx)
		return nil, err
	}
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	return orders.NewCached(repo, c, ttl), nil
}

// openCache builds the configured cache backend.
func openCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case "", "none":
		return cache.NewNullCache(), nil
	case "file":
		return cache.NewFileCache(cfg.Cache.Dir)
	case "redis":
		return cache.NewRedisCache(ctx, cfg.Redis.Addr)
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", cfg.Cache.Backend)
}

// demoOrders returns a reproducible set of work orders spread around now,
// covering every status and priority so the demo view exercises the full
// color mapping.
func demoOrders(now time.Time) []timeline.Order {
	day := func(offset int) time.Time {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	}
	specs := []struct {
		label    string
		status   timeline.Status
		priority timeline.Priority
		start    int
		days     int
	}{
		{"Gear housing", timeline.StatusInProgress, timeline.PriorityHigh, -10, 18},
		{"Drive shaft", timeline.StatusReleased, timeline.PriorityMedium, -3, 9},
		{"Bearing seat", timeline.StatusOpen, timeline.PriorityLow, 2, 6},
		{"Flange plate", timeline.StatusDelayed, timeline.PriorityCritical, -14, 20},
		{"Spindle unit", timeline.StatusDone, timeline.PriorityMedium, -21, 7},
		{"Clamp lever", timeline.StatusPending, timeline.PriorityMediumHigh, 5, 12},
		{"Cover panel", timeline.StatusNotStarted, timeline.PriorityLow, 14, 10},
		{"Coupling hub", timeline.StatusInProgress, timeline.PriorityCritical, -1, 4},
	}
	result := make([]timeline.Order, 0, len(specs))
	for i, s := range specs {
		result = append(result, timeline.Order{
			ID:       fmt.Sprintf("demo-%03d", i+1),
			Label:    s.label,
			Document: fmt.Sprintf("PO-%04d", 1000+i),
			Status:   s.status,
			Priority: s.priority,
			Start:    day(s.start),
			End:      day(s.start + s.days),
		})
	}
	return result
}
