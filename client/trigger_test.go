package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePager struct {
	hasMore bool
	loading bool
	calls   int
}

func (f *fakePager) LoadMore(context.Context) bool {
	f.calls++

	return true
}

func (f *fakePager) HasMore() bool { return f.hasMore }
func (f *fakePager) Loading() bool { return f.loading }

func TestScrollTriggerObserve(t *testing.T) {
	tests := []struct {
		name            string
		visibleFraction float64
		hasMore         bool
		loading         bool
		wantFired       bool
	}{
		{
			name:            "fires at half visibility",
			visibleFraction: 0.5,
			hasMore:         true,
			wantFired:       true,
		},
		{
			name:            "below threshold does not fire",
			visibleFraction: 0.49,
			hasMore:         true,
			wantFired:       false,
		},
		{
			name:            "exhausted loader does not fire",
			visibleFraction: 1,
			hasMore:         false,
			wantFired:       false,
		},
		{
			name:            "in-flight fetch does not fire",
			visibleFraction: 1,
			hasMore:         true,
			loading:         true,
			wantFired:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pager := &fakePager{hasMore: tt.hasMore, loading: tt.loading}
			trigger := NewScrollTrigger(pager)
			trigger.Attach(0)

			fired := trigger.Observe(context.Background(), tt.visibleFraction)

			assert.Equal(t, tt.wantFired, fired)
			if tt.wantFired {
				assert.Equal(t, 1, pager.calls)
			} else {
				assert.Zero(t, pager.calls)
			}
		})
	}
}

func TestScrollTriggerDisarmsUntilReattached(t *testing.T) {
	pager := &fakePager{hasMore: true}
	trigger := NewScrollTrigger(pager)
	trigger.Attach(9)

	assert.True(t, trigger.Observe(context.Background(), 1))

	// The sentinel stays visible but the trigger fired already; a second
	// observation must not start another fetch.
	assert.False(t, trigger.Observe(context.Background(), 1))
	assert.Equal(t, 1, pager.calls)

	trigger.Attach(19)

	assert.True(t, trigger.Observe(context.Background(), 1))
	assert.Equal(t, 2, pager.calls)
}

func TestScrollTriggerOnScroll(t *testing.T) {
	pager := &fakePager{hasMore: true}
	trigger := NewScrollTrigger(pager)
	trigger.Attach(0)

	assert.False(t, trigger.OnScroll(context.Background(), 51))
	assert.True(t, trigger.OnScroll(context.Background(), 50))
	assert.Equal(t, 1, pager.calls)
}

func TestScrollTriggerBeforeAttach(t *testing.T) {
	pager := &fakePager{hasMore: true}
	trigger := NewScrollTrigger(pager)

	assert.False(t, trigger.Observe(context.Background(), 1))
	assert.Zero(t, pager.calls)
}
