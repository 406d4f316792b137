package dto

import (
	"time"

	"github.com/google/uuid"

	"furk/internal/domains/booking/model"
	scheduleDto "furk/internal/domains/schedule/model/dto"
	gModel "furk/shared/model"
	"furk/shared/timezone"
)

// CalendarListRequest scopes the single calendar fetch: a status filter, the
// visible date window and an optional keyword matched against service,
// customer and pet names.
type CalendarListRequest struct {
	Status    string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed in_progress completed cancelled"`
	StartDate string `json:"start_date"       validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"         validate:"required,datetime=2006-01-02"`
	Keyword   string `json:"keyword,omitempty" validate:"omitempty,max=100"`
}

type CreateBookingRequest struct {
	MerchantID string  `json:"merchant_id" validate:"required,uuid"`
	ServiceID  string  `json:"service_id"  validate:"required,uuid"`
	PetID      *string `json:"pet_id,omitempty" validate:"omitempty,uuid"`
	Remarks    string  `json:"remarks,omitempty" validate:"omitempty,max=500"`
}

func (r *CreateBookingRequest) ToModel(customerID, username string) model.Booking {
	return model.Booking{
		ID:            uuid.NewString(),
		MerchantID:    r.MerchantID,
		CustomerID:    customerID,
		ServiceID:     r.ServiceID,
		PetID:         r.PetID,
		RequestedAt:   timezone.Now(),
		Status:        model.StatusPending,
		PaymentStatus: model.PaymentStatusPending,
		Remarks:       r.Remarks,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type BookingResponse struct {
	ID            string     `json:"id"`
	ServiceID     string     `json:"service_id"`
	ServiceName   string     `json:"service_name"`
	CustomerName  string     `json:"customer_name"`
	PetName       string     `json:"pet_name,omitempty"`
	RequestedAt   time.Time  `json:"requested_at"`
	StartTime     *time.Time `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"payment_status"`
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.ServiceID = model.ServiceID
	r.ServiceName = deref(model.ServiceName)
	r.CustomerName = deref(model.CustomerName)
	r.PetName = deref(model.PetName)
	r.RequestedAt = model.RequestedAt
	r.StartTime = model.StartTime
	r.EndTime = model.EndTime
	r.Status = model.Status
	r.PaymentStatus = model.PaymentStatus
}

type BookingDetailResponse struct {
	BookingResponse
	CustomerEmail  string   `json:"customer_email"`
	PetSpecies     string   `json:"pet_species,omitempty"`
	ServicePrice   float64  `json:"service_price"`
	Remarks        string   `json:"remarks,omitempty"`
	AllowedActions []string `json:"allowed_actions"`
}

func (r *BookingDetailResponse) FromModel(mod model.Booking) {
	r.BookingResponse.FromModel(mod)
	r.CustomerEmail = deref(mod.CustomerEmail)
	r.PetSpecies = deref(mod.PetSpecies)
	r.Remarks = mod.Remarks
	r.AllowedActions = model.AllowedActions(mod.Status)

	if mod.ServicePrice != nil {
		r.ServicePrice = *mod.ServicePrice
	}
}

// CalendarListResponse bundles the window's bookings with the merchant's
// schedule metadata so the calendar renders from one fetch.
type CalendarListResponse struct {
	Bookings         []BookingResponse             `json:"bookings"`
	MerchantHours    []scheduleDto.HoursEntry      `json:"merchant_hours"`
	BreakHours       []scheduleDto.BreakResponse   `json:"break_hours"`
	MerchantClosures []scheduleDto.ClosureResponse `json:"merchant_closures"`
}

func (r *CalendarListResponse) FromModels(bookings []model.Booking, schedule scheduleDto.ScheduleResponse) {
	r.Bookings = make([]BookingResponse, len(bookings))
	for i, mod := range bookings {
		r.Bookings[i].FromModel(mod)
	}

	r.MerchantHours = schedule.MerchantHours
	r.BreakHours = schedule.BreakHours
	r.MerchantClosures = schedule.MerchantClosures
}

func deref(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}
