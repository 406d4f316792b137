package client

import (
	"context"
	"sync"
)

// FetchPageFunc retrieves one page of a keyword-filtered listing.
type FetchPageFunc[T any] func(ctx context.Context, limit, offset int, keyword string) ([]T, error)

// Loader accumulates pages fetched from a list endpoint. It keeps at most one
// fetch in flight per instance, infers end-of-data from a short page, and
// tags every fetch with a generation so a slow response for a superseded
// keyword can never overwrite fresher data.
type Loader[T any] struct {
	mu         sync.Mutex
	fetch      FetchPageFunc[T]
	pageSize   int
	keyword    string
	items      []T
	offset     int
	hasMore    bool
	loading    bool
	generation uint64
	lastErr    error
}

const DefaultPageSize = 10

// NewLoader builds a loader over fetch. A fresh loader reports hasMore so the
// first LoadMore performs the initial fetch.
func NewLoader[T any](fetch FetchPageFunc[T], pageSize int) *Loader[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return &Loader[T]{
		fetch:    fetch,
		pageSize: pageSize,
		hasMore:  true,
	}
}

// LoadMore fetches the next offset window and appends it. It is a no-op while
// a fetch is in flight or once the end of data has been reached; a concurrent
// trigger is dropped, not queued. It reports whether new items were applied.
func (l *Loader[T]) LoadMore(ctx context.Context) bool {
	l.mu.Lock()

	if l.loading || !l.hasMore {
		l.mu.Unlock()

		return false
	}

	l.loading = true
	generation := l.generation
	offset := l.offset
	keyword := l.keyword
	l.mu.Unlock()

	page, err := l.fetch(ctx, l.pageSize, offset, keyword)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.loading = false

	if generation != l.generation {
		// A reset happened while this fetch was in flight; the response
		// belongs to a superseded keyword/window and is discarded.
		return false
	}

	if err != nil {
		// Previously loaded items stay visible; only the error surfaces.
		l.lastErr = err

		return false
	}

	l.lastErr = nil
	l.items = append(l.items, page...)
	l.offset += len(page)
	l.hasMore = len(page) == l.pageSize

	return true
}

// SetKeyword resets the loader for a new search term and performs the fresh
// first-page fetch. Items and offset are cleared before the fetch begins so
// stale-keyword rows are never mixed with new ones.
func (l *Loader[T]) SetKeyword(ctx context.Context, keyword string) bool {
	l.mu.Lock()

	if keyword == l.keyword {
		l.mu.Unlock()

		return false
	}

	l.keyword = keyword
	l.resetLocked()
	l.mu.Unlock()

	return l.LoadMore(ctx)
}

// Reset clears accumulated state, invalidating any in-flight fetch, without
// touching the keyword. The next LoadMore starts from offset zero.
func (l *Loader[T]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.resetLocked()
}

func (l *Loader[T]) resetLocked() {
	l.items = nil
	l.offset = 0
	l.hasMore = true
	l.lastErr = nil
	l.generation++
	// An in-flight fetch keeps running but its result is discarded by the
	// generation check; clearing the flag lets the fresh fetch start now.
	l.loading = false
}

// Items returns a copy of the accumulated rows.
func (l *Loader[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := make([]T, len(l.items))
	copy(items, l.items)

	return items
}

// Len avoids the copy when only the count is needed.
func (l *Loader[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.items)
}

// HasMore reports whether the last page was full, the heuristic for more
// data being available.
func (l *Loader[T]) HasMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.hasMore
}

// Loading reports whether a fetch is in flight.
func (l *Loader[T]) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.loading
}

// Err returns the most recent fetch error, cleared by the next success.
func (l *Loader[T]) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.lastErr
}

// Keyword returns the active search term.
func (l *Loader[T]) Keyword() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.keyword
}
