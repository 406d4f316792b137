package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"furk/shared/calendar"
)

func mustClock(t *testing.T, value string) calendar.ClockTime {
	t.Helper()

	clock, err := calendar.ParseClockTime(value)
	require.NoError(t, err)

	return clock
}

func weekdaySchedule(t *testing.T) calendar.Schedule {
	t.Helper()

	var hours []calendar.HoursRule
	for day := calendar.Monday; day <= calendar.Friday; day++ {
		hours = append(hours, calendar.HoursRule{
			Day:   day,
			Open:  mustClock(t, "09:00"),
			Close: mustClock(t, "18:00"),
		})
	}

	return calendar.Schedule{
		Hours: hours,
		Breaks: []calendar.BreakRule{
			{Day: calendar.Monday, Start: mustClock(t, "12:00"), End: mustClock(t, "13:00"), Label: "lunch"},
		},
	}
}

func TestFromWeekday(t *testing.T) {
	tests := []struct {
		name    string
		weekday time.Weekday
		want    calendar.DayOfWeek
	}{
		{name: "native sunday maps to 6", weekday: time.Sunday, want: calendar.Sunday},
		{name: "native monday maps to 0", weekday: time.Monday, want: calendar.Monday},
		{name: "native wednesday maps to 2", weekday: time.Wednesday, want: calendar.Wednesday},
		{name: "native saturday maps to 5", weekday: time.Saturday, want: calendar.Saturday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calendar.FromWeekday(tt.weekday))
			assert.Equal(t, tt.weekday, tt.want.Weekday())
		})
	}
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    calendar.ClockTime
		wantErr bool
	}{
		{name: "valid morning", value: "09:30", want: calendar.ClockTime(9*60 + 30)},
		{name: "midnight", value: "00:00", want: calendar.ClockTime(0)},
		{name: "last minute", value: "23:59", want: calendar.ClockTime(23*60 + 59)},
		{name: "missing colon", value: "0930", wantErr: true},
		{name: "hour out of range", value: "24:00", wantErr: true},
		{name: "minute out of range", value: "10:60", wantErr: true},
		{name: "not numeric", value: "aa:bb", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calendar.ParseClockTime(tt.value)

			if tt.wantErr {
				assert.ErrorIs(t, err, calendar.ErrInvalidClockTime)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDayStatus(t *testing.T) {
	schedule := weekdaySchedule(t)

	// 2025-06-02 is a Monday.
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, calendar.StatusOpen, schedule.DayStatus(monday))
	assert.Equal(t, calendar.StatusClosed, schedule.DayStatus(sunday), "day without hours rule is closed")
}

func TestDayStatusClosureTakesPrecedence(t *testing.T) {
	schedule := weekdaySchedule(t)
	schedule.Closures = []calendar.Closure{
		{
			Start: time.Date(2025, 6, 3, 14, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC),
		},
	}

	tests := []struct {
		name string
		date time.Time
		want calendar.Status
	}{
		{name: "day before closure", date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), want: calendar.StatusOpen},
		{name: "closure start day", date: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), want: calendar.StatusClosed},
		{name: "day inside closure", date: time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), want: calendar.StatusClosed},
		{name: "closure end day inclusive", date: time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC), want: calendar.StatusClosed},
		{name: "day after closure", date: time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC), want: calendar.StatusOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, schedule.DayStatus(tt.date))
		})
	}
}

func TestSlotStatus(t *testing.T) {
	schedule := weekdaySchedule(t)
	schedule.Closures = []calendar.Closure{
		{
			Start: time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 6, 2, 16, 0, 0, 0, time.UTC),
		},
	}

	monday := func(hour, minute int) time.Time {
		return time.Date(2025, 6, 2, hour, minute, 0, 0, time.UTC)
	}

	tests := []struct {
		name       string
		start, end time.Time
		want       calendar.Status
	}{
		{name: "inside open window", start: monday(10, 0), end: monday(10, 30), want: calendar.StatusOpen},
		{name: "before opening", start: monday(8, 0), end: monday(8, 30), want: calendar.StatusClosed},
		{name: "straddles opening", start: monday(8, 30), end: monday(9, 30), want: calendar.StatusClosed},
		{name: "after closing", start: monday(18, 0), end: monday(18, 30), want: calendar.StatusClosed},
		{name: "inside break", start: monday(12, 0), end: monday(12, 30), want: calendar.StatusClosed},
		{name: "straddles break end", start: monday(12, 45), end: monday(13, 15), want: calendar.StatusClosed},
		{name: "touching break boundary", start: monday(13, 0), end: monday(13, 30), want: calendar.StatusOpen},
		{name: "inside closure", start: monday(15, 0), end: monday(15, 30), want: calendar.StatusClosed},
		{name: "sunday has no hours", start: monday(10, 0).AddDate(0, 0, 6), end: monday(10, 30).AddDate(0, 0, 6), want: calendar.StatusClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, schedule.SlotStatus(tt.start, tt.end))
		})
	}
}

func TestSelectDaysReverseDrag(t *testing.T) {
	day1 := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	day3 := time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)

	forward := calendar.SelectDays(day1, day3)
	reverse := calendar.SelectDays(day3, day1)

	require.Len(t, forward.Days, 3)
	assert.Equal(t, forward.Days, reverse.Days)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), forward.Days[0])
	assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), forward.Days[2])
}

func TestDaySelectionSpan(t *testing.T) {
	sel := calendar.SelectDays(
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
	)

	start, end, err := sel.Span()
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 6, 2, 23, 59, 59, 0, time.UTC), end)

	_, _, err = calendar.DaySelection{}.Span()
	assert.ErrorIs(t, err, calendar.ErrInvalidRange)
}

func TestSelectTimeRange(t *testing.T) {
	from := time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 2, 16, 0, 0, 0, time.UTC)

	sel := calendar.SelectTimeRange(to, from)
	assert.Equal(t, from, sel.Start, "reversed endpoints are swapped")
	assert.Equal(t, to, sel.End)

	click := calendar.SelectTimeRange(from, from)
	assert.Equal(t, calendar.StartOfDay(from), click.Start, "zero-length drag expands to the whole day")
	assert.Equal(t, calendar.EndOfDay(from), click.End)
}

func TestClosureOverlapping(t *testing.T) {
	closure := calendar.Closure{
		ID:    "closure-1",
		Start: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 2, 23, 59, 59, 0, time.UTC),
	}
	schedule := calendar.Schedule{Closures: []calendar.Closure{closure}}

	got, ok := schedule.ClosureOverlapping(
		time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
	)
	require.True(t, ok)
	assert.Equal(t, "closure-1", got.ID)

	_, ok = schedule.ClosureOverlapping(
		time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC),
	)
	assert.False(t, ok)
}

func TestMonthGrid(t *testing.T) {
	schedule := weekdaySchedule(t)

	// June 2025 starts on a Sunday, so the grid pads back to Monday May 26.
	anchor := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	counts := map[string]int{"2025-06-02": 3}

	weeks := schedule.MonthGrid(anchor, counts)
	require.Len(t, weeks, 6)

	first := weeks[0][0]
	assert.Equal(t, time.Date(2025, 5, 26, 0, 0, 0, 0, time.UTC), first.Date)
	assert.False(t, first.InMonth)
	assert.Equal(t, calendar.Monday, calendar.FromWeekday(first.Date.Weekday()))

	for _, week := range weeks {
		require.Len(t, week, 7)
	}

	// 2025-06-02 falls in the second row, first column.
	cell := weeks[1][0]
	assert.Equal(t, 3, cell.Bookings)
	assert.True(t, cell.InMonth)
	assert.Equal(t, calendar.StatusOpen, cell.Status)

	// Sundays render closed, month membership notwithstanding.
	assert.Equal(t, calendar.StatusClosed, weeks[1][6].Status)
}

func TestDaySlots(t *testing.T) {
	schedule := weekdaySchedule(t)
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	slots := schedule.DaySlots(monday, 60)
	require.Len(t, slots, 24)

	assert.Equal(t, calendar.StatusClosed, slots[8].Status, "08:00 is before opening")
	assert.Equal(t, calendar.StatusOpen, slots[9].Status, "09:00 is the first open hour")
	assert.Equal(t, calendar.StatusClosed, slots[12].Status, "12:00 is the lunch break")
	assert.Equal(t, calendar.StatusOpen, slots[17].Status, "17:00 is the last open hour")
	assert.Equal(t, calendar.StatusClosed, slots[18].Status, "18:00 is past closing")
}
