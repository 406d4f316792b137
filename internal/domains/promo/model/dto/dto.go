package dto

import (
	"time"

	"github.com/google/uuid"

	"furk/internal/domains/promo/model"
	gModel "furk/shared/model"
	"furk/shared/timezone"
)

// PromoListRequest is the page request posted by infinite-scroll clients.
// Offset-based so the caller can resume exactly where its last page ended.
type PromoListRequest struct {
	Limit      int     `json:"limit"       validate:"omitempty,min=1,max=100"`
	Offset     int     `json:"offset"      validate:"omitempty,min=0"`
	Keyword    string  `json:"keyword"     validate:"omitempty,max=100"`
	MerchantID *string `json:"merchant_id" validate:"omitempty,uuid"`
}

type CreatePromoRequest struct {
	Code         string    `json:"code"           validate:"required,max=50"`
	Description  string    `json:"description"    validate:"omitempty,max=255"`
	DiscountType string    `json:"discount_type"  validate:"required,oneof=percent fixed cashback_percent cashback_fixed"`
	Value        float64   `json:"value"          validate:"required,gt=0"`
	UsageLimit   int       `json:"usage_limit"    validate:"omitempty,min=0"`
	PerUserLimit int       `json:"per_user_limit" validate:"omitempty,min=0"`
	ValidFrom    time.Time `json:"valid_from"     validate:"required"`
	ValidUntil   time.Time `json:"valid_until"    validate:"required"`
	Active       bool      `json:"active"`
}

func (r *CreatePromoRequest) ToModel(merchantID *string, username string) model.Promo {
	return model.Promo{
		ID:           uuid.NewString(),
		MerchantID:   merchantID,
		Code:         r.Code,
		Description:  r.Description,
		DiscountType: r.DiscountType,
		Value:        r.Value,
		UsageLimit:   r.UsageLimit,
		PerUserLimit: r.PerUserLimit,
		ValidFrom:    r.ValidFrom,
		ValidUntil:   r.ValidUntil,
		Active:       r.Active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type UpdatePromoRequest struct {
	Description  *string    `db:"description"    json:"description,omitempty"    validate:"omitempty,max=255"`
	DiscountType *string    `db:"discount_type"  json:"discount_type,omitempty"  validate:"omitempty,oneof=percent fixed cashback_percent cashback_fixed"`
	Value        *float64   `db:"value"          json:"value,omitempty"          validate:"omitempty,gt=0"`
	UsageLimit   *int       `db:"usage_limit"    json:"usage_limit,omitempty"    validate:"omitempty,min=0"`
	PerUserLimit *int       `db:"per_user_limit" json:"per_user_limit,omitempty" validate:"omitempty,min=0"`
	ValidFrom    *time.Time `db:"valid_from"     json:"valid_from,omitempty"`
	ValidUntil   *time.Time `db:"valid_until"    json:"valid_until,omitempty"`
	Active       *bool      `db:"active"         json:"active,omitempty"`
}

type RedeemPromoRequest struct {
	Code string `json:"code" validate:"required,max=50"`
}

type PromoResponse struct {
	ID           string    `json:"id"`
	MerchantID   *string   `json:"merchant_id,omitempty"`
	Code         string    `json:"code"`
	Description  string    `json:"description,omitempty"`
	DiscountType string    `json:"discount_type"`
	Value        float64   `json:"value"`
	UsageLimit   int       `json:"usage_limit"`
	PerUserLimit int       `json:"per_user_limit"`
	UsedCount    int       `json:"used_count"`
	ValidFrom    time.Time `json:"valid_from"`
	ValidUntil   time.Time `json:"valid_until"`
	Active       bool      `json:"active"`
}

func (r *PromoResponse) FromModel(mod model.Promo) {
	r.ID = mod.ID
	r.MerchantID = mod.MerchantID
	r.Code = mod.Code
	r.Description = mod.Description
	r.DiscountType = mod.DiscountType
	r.Value = mod.Value
	r.UsageLimit = mod.UsageLimit
	r.PerUserLimit = mod.PerUserLimit
	r.UsedCount = mod.UsedCount
	r.ValidFrom = mod.ValidFrom
	r.ValidUntil = mod.ValidUntil
	r.Active = mod.Active
}

// PromoListResponse is the page shape infinite-scroll clients consume: a bare
// window of rows, no total. Callers infer the end from a short page.
type PromoListResponse struct {
	Data []PromoResponse `json:"data"`
}

func (r *PromoListResponse) FromModels(models []model.Promo) {
	r.Data = make([]PromoResponse, len(models))

	for i, mod := range models {
		r.Data[i].FromModel(mod)
	}
}
