package client

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// SearchFunc retrieves options matching a query from the given offset.
type SearchFunc[T any] func(ctx context.Context, query string, offset int) ([]T, error)

// Select models a remotely-sourced autocomplete field over options of type T.
// The caller supplies a label extractor, so option shape stays checked at
// compile time. Typing is debounced before the search callback fires, and
// every search is generation-tagged so a slow response for a superseded
// query is discarded; the open dropdown loads more options near its bottom
// edge, preserving the scroll position across the resulting re-render.
type Select[T any] struct {
	mu       sync.Mutex
	labelOf  func(T) string
	search   SearchFunc[T]
	debounce *Debouncer

	options    []T
	value      *T
	input      string
	open       bool
	disabled   bool
	loading    bool
	exhausted  bool
	scrollTop  float64
	generation uint64
	lastErr    error
}

// NewSelect builds a select field. search may be nil for fields whose options
// are supplied statically via SetOptions.
func NewSelect[T any](labelOf func(T) string, search SearchFunc[T], debounce time.Duration) *Select[T] {
	return &Select[T]{
		labelOf:  labelOf,
		search:   search,
		debounce: NewDebouncer(debounce),
	}
}

// SetDisabled toggles the field. While disabled every network-triggering
// callback is suppressed.
func (s *Select[T]) SetDisabled(disabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.disabled = disabled
}

// SetOptions replaces the option list without a remote search.
func (s *Select[T]) SetOptions(options []T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.options = options
	s.exhausted = false
}

// Open opens the dropdown. With an empty query and no committed value the
// field performs an initial unfiltered search, when a callback is supplied.
func (s *Select[T]) Open(ctx context.Context) {
	s.mu.Lock()

	if s.disabled {
		s.mu.Unlock()

		return
	}

	s.open = true
	needInitial := s.search != nil && s.input == "" && s.value == nil && len(s.options) == 0
	s.mu.Unlock()

	if needInitial {
		s.runSearch(ctx, "", 0)
	}
}

// Close closes the dropdown without touching the committed value.
func (s *Select[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.open = false
}

// SetInput records a keystroke. The search callback fires after the debounce
// interval with the new query at offset zero; clearing the input clears the
// committed value immediately.
func (s *Select[T]) SetInput(ctx context.Context, text string) {
	s.mu.Lock()

	if s.disabled {
		s.mu.Unlock()

		return
	}

	s.input = text
	if text == "" {
		s.value = nil
	}

	search := s.search
	s.mu.Unlock()

	if search == nil {
		return
	}

	s.debounce.Do(func() {
		s.runSearch(ctx, text, 0)
	})
}

// OnScroll handles dropdown scrolling. Within BottomDistanceThreshold of the
// bottom it loads the next options window at the current accumulated offset;
// the scroll position is remembered before the fetch and restored after.
func (s *Select[T]) OnScroll(ctx context.Context, scrollTop, distanceFromBottom float64) {
	s.mu.Lock()

	if s.disabled || !s.open || s.loading || s.exhausted || s.search == nil {
		s.mu.Unlock()

		return
	}

	if distanceFromBottom > BottomDistanceThreshold {
		s.scrollTop = scrollTop
		s.mu.Unlock()

		return
	}

	s.loading = true
	s.scrollTop = scrollTop
	generation := s.generation
	query := s.input
	offset := len(s.options)
	s.mu.Unlock()

	more, err := s.search(ctx, query, offset)

	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		// A search replaced the option list while this window was in
		// flight; appending it would mix results across queries.
		return
	}

	s.loading = false

	if err != nil {
		s.lastErr = err
		log.Error().Err(err).Msg("select load-more failed")

		return
	}

	s.lastErr = nil
	s.options = append(s.options, more...)
	s.exhausted = len(more) == 0
	// scrollTop intentionally untouched: the caller restores it after the
	// option list re-renders.
}

// runSearch replaces the option list with the results for query. Each search
// bumps the generation, as the Loader does, so a slow response for a
// superseded query can never overwrite a fresher list.
func (s *Select[T]) runSearch(ctx context.Context, query string, offset int) {
	s.mu.Lock()

	if s.disabled {
		s.mu.Unlock()

		return
	}

	s.generation++
	generation := s.generation
	s.loading = true
	s.mu.Unlock()

	options, err := s.search(ctx, query, offset)

	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		// A newer search fired while this one was in flight; its response
		// owns the option list.
		return
	}

	s.loading = false

	if err != nil {
		s.lastErr = err
		log.Error().Err(err).Msg("select search failed")

		return
	}

	s.lastErr = nil
	s.options = options
	s.exhausted = false
	s.scrollTop = 0
}

// Choose commits the option at index: the dropdown closes and the option's
// label is mirrored into the input text.
func (s *Select[T]) Choose(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disabled || index < 0 || index >= len(s.options) {
		return
	}

	option := s.options[index]
	s.value = &option
	s.input = s.labelOf(option)
	s.open = false
}

// Clear resets the committed value and input text.
func (s *Select[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.value = nil
	s.input = ""
}

// Value returns the committed option, if any.
func (s *Select[T]) Value() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.value == nil {
		var zero T

		return zero, false
	}

	return *s.value, true
}

// Options returns a copy of the current dropdown contents.
func (s *Select[T]) Options() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	options := make([]T, len(s.options))
	copy(options, s.options)

	return options
}

func (s *Select[T]) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.input
}

func (s *Select[T]) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.open
}

// ScrollTop returns the position remembered before the last load-more, for
// the caller to restore after re-rendering the option list.
func (s *Select[T]) ScrollTop() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.scrollTop
}

func (s *Select[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastErr
}
