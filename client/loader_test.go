package client

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderLoadMore(t *testing.T) {
	t.Run("full page keeps hasMore and advances offset", func(t *testing.T) {
		var gotOffset int

		fetch := func(_ context.Context, limit, offset int, _ string) ([]string, error) {
			gotOffset = offset

			page := make([]string, limit)
			for i := range page {
				page[i] = "row"
			}

			return page, nil
		}

		loader := NewLoader(fetch, 3)

		applied := loader.LoadMore(context.Background())

		assert.True(t, applied)
		assert.Equal(t, 0, gotOffset)
		assert.Equal(t, 3, loader.Len())
		assert.True(t, loader.HasMore())

		applied = loader.LoadMore(context.Background())

		assert.True(t, applied)
		assert.Equal(t, 3, gotOffset)
		assert.Equal(t, 6, loader.Len())
	})

	t.Run("short page ends pagination", func(t *testing.T) {
		var calls int32

		fetch := func(_ context.Context, _, _ int, _ string) ([]string, error) {
			atomic.AddInt32(&calls, 1)

			return []string{"only"}, nil
		}

		loader := NewLoader(fetch, 3)

		assert.True(t, loader.LoadMore(context.Background()))
		assert.False(t, loader.HasMore())

		// Further triggers are dropped without hitting the fetch.
		assert.False(t, loader.LoadMore(context.Background()))
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		assert.Equal(t, []string{"only"}, loader.Items())
	})

	t.Run("empty page ends pagination", func(t *testing.T) {
		fetch := func(_ context.Context, _, _ int, _ string) ([]string, error) {
			return nil, nil
		}

		loader := NewLoader(fetch, 3)

		assert.False(t, loader.LoadMore(context.Background()))
		assert.False(t, loader.HasMore())
		assert.Zero(t, loader.Len())
	})

	t.Run("fetch error keeps previously loaded items", func(t *testing.T) {
		var calls int

		fetch := func(_ context.Context, limit, _ int, _ string) ([]string, error) {
			calls++
			if calls > 1 {
				return nil, errors.New("boom")
			}

			return make([]string, limit), nil
		}

		loader := NewLoader(fetch, 2)

		require.True(t, loader.LoadMore(context.Background()))
		assert.False(t, loader.LoadMore(context.Background()))
		assert.Equal(t, 2, loader.Len())
		assert.EqualError(t, loader.Err(), "boom")
		assert.True(t, loader.HasMore())
	})

	t.Run("concurrent trigger is dropped", func(t *testing.T) {
		var calls int32

		release := make(chan struct{})
		fetch := func(_ context.Context, limit, _ int, _ string) ([]string, error) {
			atomic.AddInt32(&calls, 1)
			<-release

			return make([]string, limit), nil
		}

		loader := NewLoader(fetch, 2)

		done := make(chan bool, 1)
		go func() {
			done <- loader.LoadMore(context.Background())
		}()

		require.Eventually(t, loader.Loading, time.Second, time.Millisecond)

		// The second trigger sees the in-flight fetch and is dropped.
		assert.False(t, loader.LoadMore(context.Background()))

		close(release)

		assert.True(t, <-done)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		assert.Equal(t, 2, loader.Len())
	})
}

func TestLoaderSetKeyword(t *testing.T) {
	t.Run("resets items and offset before fetching", func(t *testing.T) {
		type observed struct {
			offset  int
			keyword string
		}

		var fetches []observed

		fetch := func(_ context.Context, limit, offset int, keyword string) ([]string, error) {
			fetches = append(fetches, observed{offset: offset, keyword: keyword})

			return make([]string, limit), nil
		}

		loader := NewLoader(fetch, 2)

		require.True(t, loader.LoadMore(context.Background()))
		require.True(t, loader.LoadMore(context.Background()))
		require.Equal(t, 4, loader.Len())

		assert.True(t, loader.SetKeyword(context.Background(), "husky"))

		// Fresh keyword starts over at offset zero, not the accumulated one.
		require.Len(t, fetches, 3)
		assert.Equal(t, observed{offset: 0, keyword: "husky"}, fetches[2])
		assert.Equal(t, 2, loader.Len())
	})

	t.Run("unchanged keyword is a no-op", func(t *testing.T) {
		var calls int

		fetch := func(_ context.Context, limit, _ int, _ string) ([]string, error) {
			calls++

			return make([]string, limit), nil
		}

		loader := NewLoader(fetch, 2)

		assert.False(t, loader.SetKeyword(context.Background(), ""))
		assert.Zero(t, calls)
	})

	t.Run("discards in-flight response for superseded keyword", func(t *testing.T) {
		release := make(chan struct{})

		fetch := func(_ context.Context, _, _ int, keyword string) ([]string, error) {
			if keyword == "" {
				<-release

				return []string{"stale-a", "stale-b"}, nil
			}

			return []string{"fresh"}, nil
		}

		loader := NewLoader(fetch, 2)

		done := make(chan bool, 1)
		go func() {
			done <- loader.LoadMore(context.Background())
		}()

		require.Eventually(t, loader.Loading, time.Second, time.Millisecond)

		require.True(t, loader.SetKeyword(context.Background(), "husky"))
		require.Equal(t, []string{"fresh"}, loader.Items())

		close(release)

		// The slow empty-keyword response must not overwrite fresher data.
		assert.False(t, <-done)
		assert.Equal(t, []string{"fresh"}, loader.Items())
		assert.False(t, loader.HasMore())
	})
}

func TestLoaderReset(t *testing.T) {
	fetch := func(_ context.Context, limit, _ int, _ string) ([]string, error) {
		return make([]string, limit), nil
	}

	loader := NewLoader(fetch, 2)

	require.True(t, loader.LoadMore(context.Background()))
	require.Equal(t, 2, loader.Len())

	loader.Reset()

	assert.Zero(t, loader.Len())
	assert.True(t, loader.HasMore())
	assert.NoError(t, loader.Err())
}
