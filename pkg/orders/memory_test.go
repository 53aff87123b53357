package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fabwerk/ganttline/pkg/timeline"
)

func day(d int) time.Time {
	return time.Date(2025, 5, d, 0, 0, 0, 0, time.UTC)
}

func TestMemorySortsByEndAscending(t *testing.T) {
	repo := NewMemory(
		timeline.Order{ID: "c", Status: timeline.StatusOpen, Start: day(1), End: day(20)},
		timeline.Order{ID: "a", Status: timeline.StatusOpen, Start: day(1), End: day(5)},
		timeline.Order{ID: "b", Status: timeline.StatusOpen, Start: day(1), End: day(10)},
	)

	got, err := repo.FetchOrders(context.Background(), Query{})
	if err != nil {
		t.Fatalf("FetchOrders: %v", err)
	}
	wantIDs := []string{"a", "b", "c"}
	for i, w := range wantIDs {
		if got[i].ID != w {
			t.Errorf("order %d = %s, want %s", i, got[i].ID, w)
		}
	}
}

func TestMemoryAllEqualDates(t *testing.T) {
	same := day(10)
	repo := NewMemory(
		timeline.Order{ID: "x", Start: same, End: same},
		timeline.Order{ID: "y", Start: same, End: same},
		timeline.Order{ID: "z", Start: same, End: same},
	)

	got, err := repo.FetchOrders(context.Background(), Query{})
	if err != nil {
		t.Fatalf("all-equal dates must not error: %v", err)
	}
	// Stable sort: insertion order preserved on ties.
	wantIDs := []string{"x", "y", "z"}
	for i, w := range wantIDs {
		if got[i].ID != w {
			t.Errorf("order %d = %s, want %s", i, got[i].ID, w)
		}
	}
}

func TestMemoryLimit(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()
	for i := 0; i < DefaultLimit+20; i++ {
		err := repo.Insert(ctx, timeline.Order{
			ID:    fmt.Sprintf("wo-%03d", i),
			Start: day(1),
			End:   day(1).Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	got, err := repo.FetchOrders(ctx, Query{})
	if err != nil {
		t.Fatalf("FetchOrders: %v", err)
	}
	if len(got) != DefaultLimit {
		t.Errorf("fetched %d orders, want the default limit %d", len(got), DefaultLimit)
	}

	small, _ := repo.FetchOrders(ctx, Query{Limit: 5})
	if len(small) != 5 {
		t.Errorf("fetched %d orders, want explicit limit 5", len(small))
	}
}

func TestMemoryFilters(t *testing.T) {
	repo := NewMemory(
		timeline.Order{ID: "a", Status: timeline.StatusOpen, Priority: timeline.PriorityHigh, Start: day(1), End: day(2)},
		timeline.Order{ID: "b", Status: timeline.StatusDelayed, Priority: timeline.PriorityHigh, Start: day(1), End: day(3)},
		timeline.Order{ID: "c", Status: timeline.StatusDelayed, Priority: timeline.PriorityLow, Start: day(1), End: day(4)},
	)
	ctx := context.Background()

	byStatus, _ := repo.FetchOrders(ctx, Query{Status: timeline.StatusDelayed})
	if len(byStatus) != 2 {
		t.Errorf("status filter matched %d, want 2", len(byStatus))
	}

	both, _ := repo.FetchOrders(ctx, Query{Status: timeline.StatusDelayed, Priority: timeline.PriorityLow})
	if len(both) != 1 || both[0].ID != "c" {
		t.Errorf("combined filter = %+v, want just c", both)
	}

	empty, err := repo.FetchOrders(ctx, Query{Status: timeline.StatusReleased})
	if err != nil {
		t.Fatalf("empty result must not error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty result, got %d", len(empty))
	}
}

func TestQuerySnapshot(t *testing.T) {
	a := Query{Status: timeline.StatusOpen}
	b := Query{Status: timeline.StatusOpen, Priority: timeline.PriorityHigh}
	if a.Snapshot() == b.Snapshot() {
		t.Error("distinct queries must have distinct snapshots")
	}
	if a.Snapshot() != (Query{Status: timeline.StatusOpen}).Snapshot() {
		t.Error("equal queries must have equal snapshots")
	}
}

func TestFetcherAdapter(t *testing.T) {
	repo := NewMemory(
		timeline.Order{ID: "a", Status: timeline.StatusOpen, Start: day(1), End: day(2)},
		timeline.Order{ID: "b", Status: timeline.StatusDelayed, Start: day(1), End: day(3)},
	)
	fetch := Fetcher(repo)

	got, err := fetch(context.Background(), timeline.Filter{Status: timeline.StatusOpen})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("fetch through adapter = %+v, want just a", got)
	}
}
