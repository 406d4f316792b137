// Package calendar implements the availability math behind the merchant
// booking calendar: day-of-week mapping, open/closed classification of days
// and time slots against standing hours, breaks and closure periods, and
// normalization of drag selections into date/time spans.
package calendar

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidClockTime = errors.New("invalid clock time, expected HH:MM")
	ErrInvalidRange     = errors.New("invalid time range")
)

// DayOfWeek numbers days Monday=0 through Sunday=6, the scheme merchant
// schedule rows are stored in. It deliberately differs from time.Weekday,
// which starts the week on Sunday.
type DayOfWeek int

const (
	Monday DayOfWeek = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// FromWeekday remaps the native Sunday-first weekday to the Monday-first
// scheme. Every day-of-week comparison in the module goes through this.
func FromWeekday(weekday time.Weekday) DayOfWeek {
	return DayOfWeek((int(weekday) + 6) % 7)
}

// Weekday converts back to the native Sunday-first scheme.
func (d DayOfWeek) Weekday() time.Weekday {
	return time.Weekday((int(d) + 1) % 7)
}

func (d DayOfWeek) Valid() bool {
	return d >= Monday && d <= Sunday
}

// ClockTime is a minute-of-day wall clock value, parsed from "HH:MM".
type ClockTime int

func ParseClockTime(value string) (ClockTime, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, value)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, value)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, value)
	}

	return ClockTime(hour*60 + minute), nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// At composes the clock time with a date, in the date's location.
func (c ClockTime) At(date time.Time) time.Time {
	year, month, day := date.Date()

	return time.Date(year, month, day, int(c)/60, int(c)%60, 0, 0, date.Location())
}

// HoursRule is a standing open/close window for one day of the week. A day
// with no rule is closed all day.
type HoursRule struct {
	Day   DayOfWeek
	Open  ClockTime
	Close ClockTime
}

// BreakRule is a recurring unavailable window inside a day's open hours.
type BreakRule struct {
	Day   DayOfWeek
	Start ClockTime
	End   ClockTime
	Label string
}

// Closure is an absolute datetime range during which the merchant is
// unavailable regardless of standing hours.
type Closure struct {
	ID    string
	Start time.Time
	End   time.Time
}

// CoversDay reports whether the closure touches the given date at day
// granularity, inclusive on both ends.
func (c Closure) CoversDay(date time.Time) bool {
	day := StartOfDay(date)

	return !day.Before(StartOfDay(c.Start)) && !day.After(StartOfDay(c.End))
}

// Overlaps reports whether the closure intersects [start, end).
func (c Closure) Overlaps(start, end time.Time) bool {
	return c.Start.Before(end) && start.Before(c.End)
}

// Schedule is the full availability picture for one merchant: standing
// hours, recurring breaks and closure periods. It is assembled from the
// single calendar fetch that returns bookings and schedule metadata together.
type Schedule struct {
	Hours    []HoursRule
	Breaks   []BreakRule
	Closures []Closure
}

// HoursFor returns the open/close rule for a day, if any. The basic model
// allows at most one rule per day; the first match wins.
func (s Schedule) HoursFor(day DayOfWeek) (HoursRule, bool) {
	for _, rule := range s.Hours {
		if rule.Day == day {
			return rule, true
		}
	}

	return HoursRule{}, false
}

// Status classifies a calendar cell.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// DayStatus classifies a whole date for the month view. Closure membership
// takes precedence over business-hours coloring; a day without an hours rule
// is closed by default.
func (s Schedule) DayStatus(date time.Time) Status {
	for _, closure := range s.Closures {
		if closure.CoversDay(date) {
			return StatusClosed
		}
	}

	if _, ok := s.HoursFor(FromWeekday(date.Weekday())); !ok {
		return StatusClosed
	}

	return StatusOpen
}

// SlotStatus classifies a time slot for the week/day views. A slot is closed
// when it falls outside the day's open window, inside a break, or inside a
// closure; breaks and closures render identically.
func (s Schedule) SlotStatus(start, end time.Time) Status {
	day := FromWeekday(start.Weekday())

	rule, ok := s.HoursFor(day)
	if !ok {
		return StatusClosed
	}

	openAt := rule.Open.At(start)
	closeAt := rule.Close.At(start)

	if start.Before(openAt) || end.After(closeAt) {
		return StatusClosed
	}

	for _, brk := range s.Breaks {
		if brk.Day != day {
			continue
		}

		if brk.Start.At(start).Before(end) && start.Before(brk.End.At(start)) {
			return StatusClosed
		}
	}

	for _, closure := range s.Closures {
		if closure.Overlaps(start, end) {
			return StatusClosed
		}
	}

	return StatusOpen
}

// ClosureOverlapping returns the first closure intersecting [start, end),
// used by the toggle-closure flow to decide between create and remove.
func (s Schedule) ClosureOverlapping(start, end time.Time) (Closure, bool) {
	for _, closure := range s.Closures {
		if closure.Overlaps(start, end) {
			return closure, true
		}
	}

	return Closure{}, false
}

func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Second)
}

// DaySelection is a contiguous set of whole days picked in the month view.
type DaySelection struct {
	Days []time.Time
}

// SelectDays builds the day set between two drag endpoints. Dragging in
// reverse order yields the same set as dragging forward.
func SelectDays(from, to time.Time) DaySelection {
	from, to = StartOfDay(from), StartOfDay(to)
	if to.Before(from) {
		from, to = to, from
	}

	var days []time.Time
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}

	return DaySelection{Days: days}
}

// Span converts the selection into a closure span, defaulting to
// start-of-day and end-of-day since month selections carry no time-of-day.
func (sel DaySelection) Span() (start, end time.Time, err error) {
	if len(sel.Days) == 0 {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}

	return StartOfDay(sel.Days[0]), EndOfDay(sel.Days[len(sel.Days)-1]), nil
}

// TimeSelection is a contiguous time range dragged within a single day in
// the week/day views.
type TimeSelection struct {
	Start time.Time
	End   time.Time
}

// SelectTimeRange normalizes a drag between two instants: reversed endpoints
// are swapped, and a zero-length drag expands to the enclosing day.
func SelectTimeRange(from, to time.Time) TimeSelection {
	if to.Before(from) {
		from, to = to, from
	}

	if from.Equal(to) {
		return TimeSelection{Start: StartOfDay(from), End: EndOfDay(from)}
	}

	return TimeSelection{Start: from, End: to}
}

func (sel TimeSelection) Span() (start, end time.Time, err error) {
	if sel.Start.IsZero() || sel.End.IsZero() || sel.End.Before(sel.Start) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}

	return sel.Start, sel.End, nil
}

// DayCell is one rendered month-view cell.
type DayCell struct {
	Date     time.Time
	Status   Status
	InMonth  bool
	Bookings int
}

// MonthGrid renders the month containing anchor as full Monday-first weeks,
// padding with leading/trailing days from the adjacent months the way the
// visible calendar window does. bookingCounts is keyed by DateKey.
func (s Schedule) MonthGrid(anchor time.Time, bookingCounts map[string]int) [][]DayCell {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	start := first.AddDate(0, 0, -int(FromWeekday(first.Weekday())))

	last := first.AddDate(0, 1, -1)
	end := last.AddDate(0, 0, int(Sunday-FromWeekday(last.Weekday())))

	var weeks [][]DayCell

	for cursor := start; !cursor.After(end); {
		week := make([]DayCell, 0, 7)

		for range 7 {
			week = append(week, DayCell{
				Date:     cursor,
				Status:   s.DayStatus(cursor),
				InMonth:  cursor.Month() == anchor.Month(),
				Bookings: bookingCounts[DateKey(cursor)],
			})
			cursor = cursor.AddDate(0, 0, 1)
		}

		weeks = append(weeks, week)
	}

	return weeks
}

// SlotCell is one rendered week/day-view slot.
type SlotCell struct {
	Start  time.Time
	End    time.Time
	Status Status
}

// DaySlots splits a date into fixed-duration slots classified against the
// schedule, spanning the whole day so closed padding renders around the open
// window.
func (s Schedule) DaySlots(date time.Time, slotMinutes int) []SlotCell {
	if slotMinutes <= 0 {
		slotMinutes = 30
	}

	step := time.Duration(slotMinutes) * time.Minute
	dayStart := StartOfDay(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var slots []SlotCell
	for cursor := dayStart; cursor.Before(dayEnd); cursor = cursor.Add(step) {
		slotEnd := cursor.Add(step)
		if slotEnd.After(dayEnd) {
			slotEnd = dayEnd
		}

		slots = append(slots, SlotCell{
			Start:  cursor,
			End:    slotEnd,
			Status: s.SlotStatus(cursor, slotEnd),
		})
	}

	return slots
}

// DateKey formats a date for map lookups and API payloads.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// SortClosures orders closures by start time, earliest first.
func SortClosures(closures []Closure) {
	sort.Slice(closures, func(i, j int) bool {
		return closures[i].Start.Before(closures[j].Start)
	})
}
