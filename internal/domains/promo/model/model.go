package model

import (
	"time"

	"furk/shared/model"
)

const (
	EntityName = "promo"
	TableName  = "promos"

	RedemptionEntityName = "promo_redemption"
	RedemptionTableName  = "promo_redemptions"
)

const (
	FieldID           = "id"
	FieldMerchantID   = "merchant_id"
	FieldCode         = "code"
	FieldDescription  = "description"
	FieldDiscountType = "discount_type"
	FieldValue        = "value"
	FieldUsageLimit   = "usage_limit"
	FieldPerUserLimit = "per_user_limit"
	FieldUsedCount    = "used_count"
	FieldValidFrom    = "valid_from"
	FieldValidUntil   = "valid_until"
	FieldActive       = "active"

	FieldPromoID = "promo_id"
	FieldUserID  = "user_id"
)

const (
	DiscountTypePercent         = "percent"
	DiscountTypeFixed           = "fixed"
	DiscountTypeCashbackPercent = "cashback_percent"
	DiscountTypeCashbackFixed   = "cashback_fixed"
)

// Promo is a discount offer. A NULL merchant_id marks an admin-wide promo,
// anything else scopes it to a single merchant.
type Promo struct {
	ID           string    `db:"id"`
	MerchantID   *string   `db:"merchant_id"`
	Code         string    `db:"code"`
	Description  string    `db:"description"`
	DiscountType string    `db:"discount_type"`
	Value        float64   `db:"value"`
	UsageLimit   int       `db:"usage_limit"`
	PerUserLimit int       `db:"per_user_limit"`
	UsedCount    int       `db:"used_count"`
	ValidFrom    time.Time `db:"valid_from"`
	ValidUntil   time.Time `db:"valid_until"`
	Active       bool      `db:"active"`
	model.Metadata
}

// Redeemable reports whether the promo can be redeemed at the given instant,
// ignoring per-user accounting.
func (p *Promo) Redeemable(now time.Time) bool {
	if !p.Active {
		return false
	}

	if now.Before(p.ValidFrom) || now.After(p.ValidUntil) {
		return false
	}

	if p.UsageLimit > 0 && p.UsedCount >= p.UsageLimit {
		return false
	}

	return true
}

type PromoRedemption struct {
	ID      string `db:"id"`
	PromoID string `db:"promo_id"`
	UserID  string `db:"user_id"`
	model.Metadata
}

func DiscountTypeIsPercent(discountType string) bool {
	return discountType == DiscountTypePercent || discountType == DiscountTypeCashbackPercent
}
