package client

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ErrActionNotAllowed is returned when an action is invoked on a booking
// whose current status does not permit it.
var ErrActionNotAllowed = errors.New("action not allowed for current booking status")

// PanelAPI is the slice of Client the detail panel consumes.
type PanelAPI interface {
	BookingDetail(ctx context.Context, id string) (BookingDetail, error)
	BookingAction(ctx context.Context, id string, action BookingAction) (BookingDetail, error)
}

// DetailPanel drives the booking detail side panel. It fetches its own
// detail independently of the list that opened it, gates action buttons on
// the booking's status, and tracks a per-action busy flag that is always
// cleared, success or failure.
type DetailPanel struct {
	mu  sync.Mutex
	api PanelAPI

	id      string
	detail  *BookingDetail
	busy    map[BookingAction]bool
	lastErr error

	confirm   func(action BookingAction) bool
	onUpdated func(detail BookingDetail)
	onClose   func()
}

type PanelOption func(*DetailPanel)

// WithConfirm installs a confirmation step; actions run only when it
// returns true.
func WithConfirm(fn func(action BookingAction) bool) PanelOption {
	return func(p *DetailPanel) {
		p.confirm = fn
	}
}

// WithOnUpdated registers the parent-refresh callback fired after a
// successful action.
func WithOnUpdated(fn func(detail BookingDetail)) PanelOption {
	return func(p *DetailPanel) {
		p.onUpdated = fn
	}
}

// WithOnClose registers the close callback fired after a successful action.
func WithOnClose(fn func()) PanelOption {
	return func(p *DetailPanel) {
		p.onClose = fn
	}
}

func NewDetailPanel(api PanelAPI, bookingID string, opts ...PanelOption) *DetailPanel {
	p := &DetailPanel{
		api:  api,
		id:   bookingID,
		busy: make(map[BookingAction]bool),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Load fetches the booking detail.
func (p *DetailPanel) Load(ctx context.Context) error {
	detail, err := p.api.BookingDetail(ctx, p.id)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.lastErr = err
		log.Error().Err(err).Str("bookingID", p.id).Msg("failed to load booking detail")

		return err
	}

	p.lastErr = nil
	p.detail = &detail

	return nil
}

// Detail returns the loaded booking, or nil before the first successful Load.
func (p *DetailPanel) Detail() *BookingDetail {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.detail == nil {
		return nil
	}

	detail := *p.detail

	return &detail
}

// Actions returns the buttons to render for the booking's current status.
func (p *DetailPanel) Actions() []BookingAction {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.detail == nil {
		return nil
	}

	return p.detail.Status.AllowedActions()
}

// Busy reports whether the given action is in flight.
func (p *DetailPanel) Busy(action BookingAction) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.busy[action]
}

// Run executes a status action. Disallowed actions are rejected before any
// request; the confirmation step, when installed, can abort silently. After
// success the panel refreshes its detail, notifies the parent, and closes.
func (p *DetailPanel) Run(ctx context.Context, action BookingAction) error {
	p.mu.Lock()

	if p.detail == nil {
		p.mu.Unlock()

		return errors.Wrap(ErrActionNotAllowed, "booking detail not loaded")
	}

	if !allowed(p.detail.Status, action) {
		p.mu.Unlock()

		return ErrActionNotAllowed
	}

	if p.busy[action] {
		p.mu.Unlock()

		return nil
	}

	p.mu.Unlock()

	if p.confirm != nil && !p.confirm(action) {
		return nil
	}

	p.mu.Lock()
	p.busy[action] = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		delete(p.busy, action)
		p.mu.Unlock()
	}()

	detail, err := p.api.BookingAction(ctx, p.id, action)
	if err != nil {
		p.mu.Lock()
		p.lastErr = err
		p.mu.Unlock()

		log.Error().Err(err).
			Str("bookingID", p.id).
			Str("action", string(action)).
			Msg("booking action failed")

		return err
	}

	p.mu.Lock()
	p.lastErr = nil
	p.detail = &detail
	onUpdated, onClose := p.onUpdated, p.onClose
	p.mu.Unlock()

	if onUpdated != nil {
		onUpdated(detail)
	}

	if onClose != nil {
		onClose()
	}

	return nil
}

func (p *DetailPanel) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.lastErr
}

func allowed(status BookingStatus, action BookingAction) bool {
	for _, a := range status.AllowedActions() {
		if a == action {
			return true
		}
	}

	return false
}
