package model

import (
	"github.com/lib/pq"

	"furk/shared/model"
)

const (
	EntityName = "reward_product"
	TableName  = "reward_products"
)

const (
	FieldID          = "id"
	FieldSponsorName = "sponsor_name"
	FieldProductName = "product_name"
	FieldDescription = "description"
	FieldPointsCost  = "points_cost"
	FieldStock       = "stock"
	FieldAttachments = "attachments"
	FieldActive      = "active"
)

// RewardProduct is a sponsored item redeemable with loyalty points.
// Attachments hold S3 URLs uploaded after the record exists.
type RewardProduct struct {
	ID          string         `db:"id"`
	SponsorName string         `db:"sponsor_name"`
	ProductName string         `db:"product_name"`
	Description string         `db:"description"`
	PointsCost  int            `db:"points_cost"`
	Stock       int            `db:"stock"`
	Attachments pq.StringArray `db:"attachments"`
	Active      bool           `db:"active"`
	model.Metadata
}
