package client

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type breed struct {
	ID   string
	Name string
}

func breedLabel(b breed) string { return b.Name }

type recordedSearch struct {
	query  string
	offset int
}

type searchRecorder struct {
	mu      sync.Mutex
	calls   []recordedSearch
	results [][]breed
}

func (r *searchRecorder) fn(_ context.Context, query string, offset int) ([]breed, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, recordedSearch{query: query, offset: offset})
	if len(r.results) == 0 {
		return nil, nil
	}

	page := r.results[0]
	r.results = r.results[1:]

	return page, nil
}

func (r *searchRecorder) recorded() []recordedSearch {
	r.mu.Lock()
	defer r.mu.Unlock()

	calls := make([]recordedSearch, len(r.calls))
	copy(calls, r.calls)

	return calls
}

func TestSelectOpenRunsInitialSearch(t *testing.T) {
	rec := &searchRecorder{results: [][]breed{{{ID: "1", Name: "Husky"}}}}
	field := NewSelect(breedLabel, rec.fn, time.Millisecond)

	field.Open(context.Background())

	require.Equal(t, []recordedSearch{{query: "", offset: 0}}, rec.recorded())
	assert.True(t, field.IsOpen())
	assert.Len(t, field.Options(), 1)

	// Reopening with options already loaded skips the initial search.
	field.Close()
	field.Open(context.Background())
	assert.Len(t, rec.recorded(), 1)
}

func TestSelectTypingDebouncesToOffsetZero(t *testing.T) {
	rec := &searchRecorder{results: [][]breed{
		{{ID: "1", Name: "Husky"}},
		{{ID: "2", Name: "Hamster"}},
	}}
	field := NewSelect(breedLabel, rec.fn, 5*time.Millisecond)

	field.SetInput(context.Background(), "h")
	field.SetInput(context.Background(), "hu")
	field.SetInput(context.Background(), "hus")

	// The burst collapses to one search carrying the final text.
	require.Eventually(t, func() bool {
		return len(rec.recorded()) == 1
	}, time.Second, time.Millisecond)
	assert.Equal(t, recordedSearch{query: "hus", offset: 0}, rec.recorded()[0])
	assert.Equal(t, "hus", field.Input())
}

func TestSelectClearingInputDropsValue(t *testing.T) {
	rec := &searchRecorder{results: [][]breed{{{ID: "1", Name: "Husky"}}}}
	field := NewSelect(breedLabel, rec.fn, time.Minute)

	field.SetOptions([]breed{{ID: "1", Name: "Husky"}})
	field.Choose(0)

	_, ok := field.Value()
	require.True(t, ok)
	assert.Equal(t, "Husky", field.Input())

	field.SetInput(context.Background(), "")

	_, ok = field.Value()
	assert.False(t, ok)
}

func TestSelectChoose(t *testing.T) {
	field := NewSelect(breedLabel, nil, time.Minute)
	field.SetOptions([]breed{{ID: "1", Name: "Husky"}, {ID: "2", Name: "Beagle"}})
	field.Open(context.Background())

	field.Choose(1)

	value, ok := field.Value()
	require.True(t, ok)
	assert.Equal(t, "2", value.ID)
	assert.Equal(t, "Beagle", field.Input())
	assert.False(t, field.IsOpen())

	// Out-of-range choices are ignored.
	field.Choose(5)
	value, ok = field.Value()
	require.True(t, ok)
	assert.Equal(t, "2", value.ID)
}

func TestSelectOnScrollLoadsMore(t *testing.T) {
	rec := &searchRecorder{results: [][]breed{
		{{ID: "2", Name: "Beagle"}},
		nil,
	}}
	field := NewSelect(breedLabel, rec.fn, time.Minute)
	field.SetOptions([]breed{{ID: "1", Name: "Husky"}})
	field.Open(context.Background())

	// Far from the bottom only the scroll position is remembered.
	field.OnScroll(context.Background(), 120, 200)
	assert.Empty(t, rec.recorded())
	assert.Equal(t, float64(120), field.ScrollTop())

	// Near the bottom the next window is fetched at the accumulated offset
	// and the pre-fetch position is preserved for the re-render.
	field.OnScroll(context.Background(), 480, 30)

	require.Equal(t, []recordedSearch{{query: "", offset: 1}}, rec.recorded())
	assert.Len(t, field.Options(), 2)
	assert.Equal(t, float64(480), field.ScrollTop())

	// An empty window marks the list exhausted; further scrolls stop
	// hitting the search callback.
	field.OnScroll(context.Background(), 480, 10)
	field.OnScroll(context.Background(), 480, 10)
	assert.Len(t, rec.recorded(), 2)
}

func TestSelectDisabledSuppressesCallbacks(t *testing.T) {
	rec := &searchRecorder{}
	field := NewSelect(breedLabel, rec.fn, time.Millisecond)
	field.SetDisabled(true)

	field.Open(context.Background())
	field.SetInput(context.Background(), "husky")
	field.OnScroll(context.Background(), 0, 0)

	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, rec.recorded())
	assert.False(t, field.IsOpen())
	assert.Empty(t, field.Input())
}

// A search fired while another is still in flight must run, and the slow
// older response must not overwrite what the newer one produced.
func TestSelectStaleSearchResponseDiscarded(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})

	search := func(_ context.Context, query string, _ int) ([]breed, error) {
		if query == "h" {
			close(firstStarted)
			<-releaseFirst

			return []breed{{ID: "1", Name: "Husky"}}, nil
		}

		return []breed{{ID: "2", Name: "Hamster"}}, nil
	}

	field := NewSelect(breedLabel, search, time.Minute)

	firstDone := make(chan struct{})

	go func() {
		field.runSearch(context.Background(), "h", 0)
		close(firstDone)
	}()

	<-firstStarted
	field.runSearch(context.Background(), "ha", 0)

	options := field.Options()
	require.Len(t, options, 1)
	assert.Equal(t, "Hamster", options[0].Name)

	close(releaseFirst)
	<-firstDone

	options = field.Options()
	require.Len(t, options, 1)
	assert.Equal(t, "Hamster", options[0].Name)
}
