package dto

import (
	"time"

	"github.com/google/uuid"

	"furk/internal/domains/schedule/model"
	"furk/shared/calendar"
	gModel "furk/shared/model"
	"furk/shared/timezone"
)

type HoursEntry struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	OpenTime  string `json:"open_time"   validate:"required"`
	CloseTime string `json:"close_time"  validate:"required"`
}

func (r *HoursEntry) ToModel(merchantID, username string) model.MerchantHours {
	return model.MerchantHours{
		ID:         uuid.NewString(),
		MerchantID: merchantID,
		DayOfWeek:  r.DayOfWeek,
		OpenTime:   r.OpenTime,
		CloseTime:  r.CloseTime,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

func (r *HoursEntry) FromModel(model model.MerchantHours) {
	r.DayOfWeek = model.DayOfWeek
	r.OpenTime = model.OpenTime
	r.CloseTime = model.CloseTime
}

// ReplaceHoursRequest swaps a merchant's whole weekly template in one call.
// Days absent from the list end up with no open window, which renders closed.
type ReplaceHoursRequest struct {
	Hours []HoursEntry `json:"hours" validate:"dive"`
}

type CreateBreakRequest struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string `json:"start_time"  validate:"required"`
	EndTime   string `json:"end_time"    validate:"required"`
	Label     string `json:"label"       validate:"omitempty,max=100"`
}

func (r *CreateBreakRequest) ToModel(merchantID, username string) model.MerchantBreak {
	return model.MerchantBreak{
		ID:         uuid.NewString(),
		MerchantID: merchantID,
		DayOfWeek:  r.DayOfWeek,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Label:      r.Label,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type UpdateBreakRequest struct {
	DayOfWeek *int    `db:"day_of_week" json:"day_of_week,omitempty" validate:"omitempty,min=0,max=6"`
	StartTime *string `db:"start_time"  json:"start_time,omitempty"`
	EndTime   *string `db:"end_time"    json:"end_time,omitempty"`
	Label     *string `db:"label"       json:"label,omitempty"       validate:"omitempty,max=100"`
}

// ToggleClosureRequest carries a selected span. When the span overlaps an
// existing closure that closure is removed; otherwise a new one covering the
// span is created.
type ToggleClosureRequest struct {
	Start time.Time `json:"start" validate:"required"`
	End   time.Time `json:"end"   validate:"required"`
}

// Normalize applies the day-selection defaults: a zero-length or whole-day
// span expands to start-of-day/end-of-day, and reversed bounds are swapped.
func (r *ToggleClosureRequest) Normalize() (start, end time.Time) {
	start, end = r.Start, r.End
	if end.Before(start) {
		start, end = end, start
	}

	if start.Equal(end) {
		return calendar.StartOfDay(start), calendar.EndOfDay(end)
	}

	return start, end
}

type BreakResponse struct {
	ID        string `json:"id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Label     string `json:"label"`
}

func (r *BreakResponse) FromModel(model model.MerchantBreak) {
	r.ID = model.ID
	r.DayOfWeek = model.DayOfWeek
	r.StartTime = model.StartTime
	r.EndTime = model.EndTime
	r.Label = model.Label
}

type ClosureResponse struct {
	ID    string    `json:"id"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r *ClosureResponse) FromModel(model model.MerchantClosure) {
	r.ID = model.ID
	r.Start = model.StartTime
	r.End = model.EndTime
}

// ScheduleResponse is the full schedule bundle, also embedded in the booking
// calendar payload.
type ScheduleResponse struct {
	MerchantHours    []HoursEntry      `json:"merchant_hours"`
	BreakHours       []BreakResponse   `json:"break_hours"`
	MerchantClosures []ClosureResponse `json:"merchant_closures"`
}

func (r *ScheduleResponse) FromModels(hours []model.MerchantHours, breaks []model.MerchantBreak, closures []model.MerchantClosure) {
	r.MerchantHours = make([]HoursEntry, len(hours))
	for i, mod := range hours {
		r.MerchantHours[i].FromModel(mod)
	}

	r.BreakHours = make([]BreakResponse, len(breaks))
	for i, mod := range breaks {
		r.BreakHours[i].FromModel(mod)
	}

	r.MerchantClosures = make([]ClosureResponse, len(closures))
	for i, mod := range closures {
		r.MerchantClosures[i].FromModel(mod)
	}
}

type ToggleClosureResponse struct {
	Removed   bool             `json:"removed"`
	ClosureID string           `json:"closure_id,omitempty"`
	Closure   *ClosureResponse `json:"closure,omitempty"`
}
