package client

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"furk/shared/calendar"
)

// ViewMode selects how the calendar window renders.
type ViewMode string

const (
	ViewMonth  ViewMode = "month"
	ViewWeek   ViewMode = "week"
	ViewDay    ViewMode = "day"
	ViewAgenda ViewMode = "agenda"
)

// CalendarAPI is the slice of Client the calendar view consumes.
type CalendarAPI interface {
	BookingCalendar(ctx context.Context, req BookingCalendarRequest) (BookingCalendarData, error)
	ToggleClosure(ctx context.Context, start, end time.Time) error
}

type dragKind int

const (
	dragNone dragKind = iota
	dragDays
	dragTime
)

// CalendarView is the merchant booking calendar's view model. One fetch per
// (status filter, visible window, keyword) returns bookings and schedule
// metadata together, and cell classification goes through the calendar
// package. Pointer geometry is mapped to calendar coordinates once, then all
// drag state lives in those coordinates.
type CalendarView struct {
	mu  sync.Mutex
	api CalendarAPI

	mode        ViewMode
	status      BookingStatus
	keyword     string
	windowStart time.Time
	windowEnd   time.Time

	data     BookingCalendarData
	schedule calendar.Schedule
	loading  bool
	lastErr  error

	drag       dragKind
	dragAnchor time.Time
	dragCursor time.Time
}

func NewCalendarView(api CalendarAPI) *CalendarView {
	return &CalendarView{
		api:  api,
		mode: ViewMonth,
	}
}

// SetMode switches between month/week/day/agenda rendering.
func (v *CalendarView) SetMode(mode ViewMode) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.mode = mode
}

// SetWindow moves the visible date window. The caller follows with Load.
func (v *CalendarView) SetWindow(start, end time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if end.Before(start) {
		start, end = end, start
	}

	v.windowStart, v.windowEnd = start, end
}

// SetStatusFilter narrows the fetched bookings by status; empty means all.
func (v *CalendarView) SetStatusFilter(status BookingStatus) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.status = status
}

// SetKeyword sets the search term applied server-side.
func (v *CalendarView) SetKeyword(keyword string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.keyword = keyword
}

// Load performs the single calendar fetch for the current filter state. The
// schedule metadata always travels with the bookings; it is never fetched
// separately.
func (v *CalendarView) Load(ctx context.Context) error {
	v.mu.Lock()

	if v.loading {
		v.mu.Unlock()

		return nil
	}

	v.loading = true
	req := BookingCalendarRequest{
		Status:    v.status,
		StartDate: calendar.DateKey(v.windowStart),
		EndDate:   calendar.DateKey(v.windowEnd),
		Keyword:   v.keyword,
	}
	v.mu.Unlock()

	data, err := v.api.BookingCalendar(ctx, req)

	v.mu.Lock()
	defer v.mu.Unlock()

	v.loading = false

	if err != nil {
		v.lastErr = err
		log.Error().Err(err).Msg("failed to load booking calendar")

		return err
	}

	v.lastErr = nil
	v.data = data
	v.schedule = data.Schedule()

	return nil
}

// MonthGrid renders the month containing the window start.
func (v *CalendarView) MonthGrid() [][]calendar.DayCell {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.schedule.MonthGrid(v.windowStart, v.data.BookingCounts())
}

// DaySlots renders one day's slot column for the week/day views.
func (v *CalendarView) DaySlots(date time.Time, slotMinutes int) []calendar.SlotCell {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.schedule.DaySlots(date, slotMinutes)
}

// Bookings returns the fetched rows for agenda/list rendering.
func (v *CalendarView) Bookings() []Booking {
	v.mu.Lock()
	defer v.mu.Unlock()

	bookings := make([]Booking, len(v.data.Bookings))
	copy(bookings, v.data.Bookings)

	return bookings
}

// DayAt maps month-grid pointer coordinates (row, column) to a date. This is
// the only place pointer geometry is translated; every drag handler below
// works in calendar coordinates.
func (v *CalendarView) DayAt(row, col int) (time.Time, bool) {
	grid := v.MonthGrid()

	if row < 0 || row >= len(grid) || col < 0 || col >= len(grid[row]) {
		return time.Time{}, false
	}

	return grid[row][col].Date, true
}

// BeginDrag starts a selection at a calendar coordinate. In month mode the
// drag selects whole days; in week/day mode it selects a time range.
func (v *CalendarView) BeginDrag(at time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.mode == ViewMonth {
		v.drag = dragDays
	} else {
		v.drag = dragTime
	}

	v.dragAnchor = at
	v.dragCursor = at
}

// DragTo extends the active selection to a new coordinate.
func (v *CalendarView) DragTo(at time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.drag == dragNone {
		return
	}

	v.dragCursor = at
}

// EndDrag finishes the drag and returns the selected closure span. Month
// drags default to start/end-of-day; reverse drags normalize the same as
// forward ones.
func (v *CalendarView) EndDrag() (start, end time.Time, ok bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	kind := v.drag
	v.drag = dragNone

	switch kind {
	case dragDays:
		span := calendar.SelectDays(v.dragAnchor, v.dragCursor)

		start, end, err := span.Span()
		if err != nil {
			return time.Time{}, time.Time{}, false
		}

		return start, end, true
	case dragTime:
		sel := calendar.SelectTimeRange(v.dragAnchor, v.dragCursor)

		start, end, err := sel.Span()
		if err != nil {
			return time.Time{}, time.Time{}, false
		}

		return start, end, true
	default:
		return time.Time{}, time.Time{}, false
	}
}

// ToggleClosure submits the span (create-or-remove decided server-side) and
// refetches the full calendar dataset for the visible window.
func (v *CalendarView) ToggleClosure(ctx context.Context, start, end time.Time) error {
	if err := v.api.ToggleClosure(ctx, start, end); err != nil {
		log.Error().Err(err).Msg("failed to toggle closure")

		return err
	}

	return v.Load(ctx)
}

func (v *CalendarView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.loading
}

func (v *CalendarView) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.lastErr
}
