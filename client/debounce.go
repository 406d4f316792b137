package client

import (
	"sync"
	"time"
)

// DefaultDebounce is the delay between the last keystroke and the search
// callback firing.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer delays work by a fixed interval, collapsing a burst of calls
// into the last one. It wraps text inputs so a request is not fired per
// keystroke.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending func()
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}

	return &Debouncer{delay: delay}
}

// Do schedules fn to run after the delay, replacing any previously scheduled
// call that has not fired yet.
func (d *Debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.pending = fn
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		pending := d.pending
		d.pending = nil
		d.mu.Unlock()

		if pending != nil {
			pending()
		}
	})
}

// Flush runs the pending call immediately, if any.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	pending := d.pending
	d.pending = nil

	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()

	if pending != nil {
		pending()
	}
}

// Stop drops the pending call without running it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.pending = nil
}
