package client

import (
	"time"

	"furk/shared/calendar"
)

// BookingStatus is the server-owned booking lifecycle state.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// BookingAction is a merchant-requested status transition.
type BookingAction string

const (
	ActionConfirm  BookingAction = "confirm"
	ActionCancel   BookingAction = "cancel"
	ActionStart    BookingAction = "start"
	ActionComplete BookingAction = "complete"
)

// AllowedActions returns the transitions the panel may offer for a status.
// The happy path is pending -> confirmed -> in_progress -> completed, with
// cancellation only out of confirmed; terminal states offer nothing.
func (s BookingStatus) AllowedActions() []BookingAction {
	switch s {
	case StatusPending:
		return []BookingAction{ActionConfirm}
	case StatusConfirmed:
		return []BookingAction{ActionCancel, ActionStart}
	case StatusInProgress:
		return []BookingAction{ActionComplete}
	default:
		return nil
	}
}

// Booking is a list/calendar row.
type Booking struct {
	ID            string        `json:"id"`
	ServiceID     string        `json:"service_id"`
	ServiceName   string        `json:"service_name"`
	CustomerName  string        `json:"customer_name"`
	PetName       string        `json:"pet_name"`
	RequestedAt   time.Time     `json:"requested_at"`
	StartTime     *time.Time    `json:"start_time"`
	EndTime       *time.Time    `json:"end_time"`
	Status        BookingStatus `json:"status"`
	PaymentStatus string        `json:"payment_status"`
}

// BookingDetail is the full record behind the detail/action panel.
type BookingDetail struct {
	Booking
	CustomerEmail string  `json:"customer_email"`
	PetSpecies    string  `json:"pet_species"`
	ServicePrice  float64 `json:"service_price"`
	Remarks       string  `json:"remarks"`
}

// HoursEntry mirrors a merchant_hours row; day_of_week is Monday=0..Sunday=6.
type HoursEntry struct {
	DayOfWeek int    `json:"day_of_week"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

// BreakEntry mirrors a break_hours row.
type BreakEntry struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Label     string `json:"label"`
}

// ClosureEntry mirrors a merchant_closures row.
type ClosureEntry struct {
	ID    string    `json:"id"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BookingCalendarRequest scopes the single calendar fetch to a status filter,
// a visible date window and a search keyword.
type BookingCalendarRequest struct {
	Status    BookingStatus `json:"status,omitempty"`
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Keyword   string        `json:"keyword,omitempty"`
}

// BookingCalendarData is the combined payload: bookings plus the merchant
// schedule metadata, never fetched separately.
type BookingCalendarData struct {
	Bookings         []Booking      `json:"bookings"`
	MerchantHours    []HoursEntry   `json:"merchant_hours"`
	BreakHours       []BreakEntry   `json:"break_hours"`
	MerchantClosures []ClosureEntry `json:"merchant_closures"`
}

// Schedule converts the wire schedule metadata into the calendar math types.
// Rows with malformed clock times are skipped rather than failing the whole
// calendar render.
func (d BookingCalendarData) Schedule() calendar.Schedule {
	schedule := calendar.Schedule{}

	for _, entry := range d.MerchantHours {
		open, openErr := calendar.ParseClockTime(entry.OpenTime)
		closeTime, closeErr := calendar.ParseClockTime(entry.CloseTime)

		if openErr != nil || closeErr != nil || !calendar.DayOfWeek(entry.DayOfWeek).Valid() {
			continue
		}

		schedule.Hours = append(schedule.Hours, calendar.HoursRule{
			Day:   calendar.DayOfWeek(entry.DayOfWeek),
			Open:  open,
			Close: closeTime,
		})
	}

	for _, entry := range d.BreakHours {
		start, startErr := calendar.ParseClockTime(entry.StartTime)
		end, endErr := calendar.ParseClockTime(entry.EndTime)

		if startErr != nil || endErr != nil || !calendar.DayOfWeek(entry.DayOfWeek).Valid() {
			continue
		}

		schedule.Breaks = append(schedule.Breaks, calendar.BreakRule{
			Day:   calendar.DayOfWeek(entry.DayOfWeek),
			Start: start,
			End:   end,
			Label: entry.Label,
		})
	}

	for _, entry := range d.MerchantClosures {
		schedule.Closures = append(schedule.Closures, calendar.Closure{
			ID:    entry.ID,
			Start: entry.Start,
			End:   entry.End,
		})
	}

	return schedule
}

// BookingCounts indexes bookings per day for month-view badges.
func (d BookingCalendarData) BookingCounts() map[string]int {
	counts := map[string]int{}

	for _, booking := range d.Bookings {
		day := booking.RequestedAt
		if booking.StartTime != nil {
			day = *booking.StartTime
		}

		counts[calendar.DateKey(day)]++
	}

	return counts
}

// Promo is a discount code row on the promo management screens.
type Promo struct {
	ID            string     `json:"id"`
	Code          string     `json:"code"`
	Description   string     `json:"description"`
	DiscountType  string     `json:"discount_type"`
	DiscountValue float64    `json:"discount_value"`
	UsageLimit    int        `json:"usage_limit"`
	PerUserLimit  int        `json:"per_user_limit"`
	UsedCount     int        `json:"used_count"`
	ValidFrom     time.Time  `json:"valid_from"`
	ValidUntil    time.Time  `json:"valid_until"`
	MerchantID    *string    `json:"merchant_id"`
	Active        bool       `json:"active"`
	DeactivatedAt *time.Time `json:"deactivated_at"`
}

// RewardProduct is a points-redeemable product row.
type RewardProduct struct {
	ID          string   `json:"id"`
	SponsorName string   `json:"sponsor_name"`
	ProductName string   `json:"product_name"`
	Description string   `json:"description"`
	PointsCost  int      `json:"points_cost"`
	Stock       int      `json:"stock"`
	Attachments []string `json:"attachments"`
	Active      bool     `json:"active"`
}

// Payment is the poll target of the checkout flow.
type Payment struct {
	ID         string    `json:"id"`
	BookingID  string    `json:"booking_id"`
	InvoiceURL string    `json:"invoice_url"`
	Amount     float64   `json:"amount"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
