package client

import (
	"context"
	"sync"
)

const (
	// VisibleFractionThreshold is how much of the sentinel row must be
	// visible before the next page is requested.
	VisibleFractionThreshold = 0.5
	// BottomDistanceThreshold is the alternative trigger: pixels of scroll
	// distance remaining to the bottom of the container.
	BottomDistanceThreshold = 50.0
)

// Pager is the slice of Loader the scroll trigger needs.
type Pager interface {
	LoadMore(ctx context.Context) bool
	HasMore() bool
	Loading() bool
}

// ScrollTrigger requests the next page when the sentinel (last rendered row)
// becomes sufficiently visible, or when the scroll position nears the bottom.
// The loader's own in-flight guard is the single source of truth against
// double-triggering; the trigger additionally disarms per attachment because
// the sentinel node is replaced whenever the rendered list changes.
type ScrollTrigger struct {
	mu       sync.Mutex
	pager    Pager
	sentinel int
	armed    bool
}

func NewScrollTrigger(pager Pager) *ScrollTrigger {
	return &ScrollTrigger{pager: pager}
}

// Attach re-arms observation for a freshly rendered list whose last item
// index is sentinel. Called every time the item list changes.
func (t *ScrollTrigger) Attach(sentinel int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sentinel = sentinel
	t.armed = true
}

// Observe reports sentinel visibility. When at least half the sentinel is
// visible and the loader is idle with more data, the next page is requested.
// It reports whether a fetch was started.
func (t *ScrollTrigger) Observe(ctx context.Context, visibleFraction float64) bool {
	if visibleFraction < VisibleFractionThreshold {
		return false
	}

	return t.fire(ctx)
}

// OnScroll is the fallback trigger for containers without visibility
// observation: distanceFromBottom is the remaining scrollable distance.
func (t *ScrollTrigger) OnScroll(ctx context.Context, distanceFromBottom float64) bool {
	if distanceFromBottom > BottomDistanceThreshold {
		return false
	}

	return t.fire(ctx)
}

func (t *ScrollTrigger) fire(ctx context.Context) bool {
	t.mu.Lock()

	if !t.armed || !t.pager.HasMore() || t.pager.Loading() {
		t.mu.Unlock()

		return false
	}

	t.armed = false
	t.mu.Unlock()

	return t.pager.LoadMore(ctx)
}
