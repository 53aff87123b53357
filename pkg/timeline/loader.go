package timeline

import (
	"context"
	"sync"
)

// FetchFunc fetches the order set for a filter. Implementations come from
// the repository collaborator (pkg/orders); the engine only sees this shape.
type FetchFunc func(ctx context.Context, f Filter) ([]Order, error)

// LoadResult is delivered to the loader's callback when a fetch completes
// and is still current.
type LoadResult struct {
	Orders   []Order
	Err      error
	Snapshot string
}

// Loader serializes order fetches against filter changes. Each request is
// tagged with a monotonically increasing generation; when a fetch
// completes, the result is applied only if its generation is still the
// latest one. The generation, not the filter snapshot, is the identity of
// a request: reloading the same filter supersedes the in-flight fetch just
// like a filter change does. Superseded requests have their context
// cancelled, and late completions (including their cancellation errors)
// are discarded silently; staleness is not an error.
type Loader struct {
	fetch    FetchFunc
	onResult func(LoadResult)

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// NewLoader creates a loader that delivers current results to onResult.
// onResult is called from the fetch goroutine; callers that mutate shared
// state from it must route the result back to their own loop.
func NewLoader(fetch FetchFunc, onResult func(LoadResult)) *Loader {
	return &Loader{fetch: fetch, onResult: onResult}
}

// Load starts a fetch for the given filter, superseding any request still
// in flight. It returns immediately; the result arrives via the callback.
func (l *Loader) Load(ctx context.Context, f Filter) {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.gen++
	gen := l.gen
	l.mu.Unlock()

	go func() {
		defer cancel()
		orders, err := l.fetch(fetchCtx, f)

		l.mu.Lock()
		current := l.gen == gen
		l.mu.Unlock()
		if !current {
			return // a newer request superseded this one
		}
		if l.onResult != nil {
			l.onResult(LoadResult{Orders: orders, Err: err, Snapshot: f.Snapshot()})
		}
	}()
}

// Close cancels any in-flight fetch and discards its completion.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
}
