package client

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerCollapsesBurst(t *testing.T) {
	var fired int32

	d := NewDebouncer(20 * time.Millisecond)

	for i := 0; i < 5; i++ {
		d.Do(func() {
			atomic.AddInt32(&fired, 1)
		})
	}

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&fired) == 1
	}, time.Second, 5*time.Millisecond)

	// Nothing else fires after the burst collapses to one call.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
}

func TestDebouncerFlush(t *testing.T) {
	var fired int32

	d := NewDebouncer(time.Minute)

	d.Do(func() {
		atomic.AddInt32(&fired, 1)
	})
	d.Flush()

	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))

	// Flushing again with nothing pending is a no-op.
	d.Flush()
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
}

func TestDebouncerStop(t *testing.T) {
	var fired int32

	d := NewDebouncer(10 * time.Millisecond)

	d.Do(func() {
		atomic.AddInt32(&fired, 1)
	})
	d.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&fired))
}
