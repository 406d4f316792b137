package dto

import (
	"mime/multipart"

	"github.com/google/uuid"

	"furk/internal/domains/reward/model"
	gModel "furk/shared/model"
	"furk/shared/timezone"
)

type RewardListRequest struct {
	Limit   int    `json:"limit"   validate:"omitempty,min=1,max=100"`
	Offset  int    `json:"offset"  validate:"omitempty,min=0"`
	Keyword string `json:"keyword" validate:"omitempty,max=100"`
}

type CreateRewardRequest struct {
	SponsorName string `json:"sponsor_name" validate:"required,max=100"`
	ProductName string `json:"product_name" validate:"required,max=100"`
	Description string `json:"description"  validate:"omitempty,max=500"`
	PointsCost  int    `json:"points_cost"  validate:"required,gt=0"`
	Stock       int    `json:"stock"        validate:"omitempty,min=0"`
	Active      bool   `json:"active"`
}

func (r *CreateRewardRequest) ToModel(username string) model.RewardProduct {
	return model.RewardProduct{
		ID:          uuid.NewString(),
		SponsorName: r.SponsorName,
		ProductName: r.ProductName,
		Description: r.Description,
		PointsCost:  r.PointsCost,
		Stock:       r.Stock,
		Active:      r.Active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type UpdateRewardRequest struct {
	SponsorName *string `db:"sponsor_name" json:"sponsor_name,omitempty" validate:"omitempty,max=100"`
	ProductName *string `db:"product_name" json:"product_name,omitempty" validate:"omitempty,max=100"`
	Description *string `db:"description"  json:"description,omitempty"  validate:"omitempty,max=500"`
	PointsCost  *int    `db:"points_cost"  json:"points_cost,omitempty"  validate:"omitempty,gt=0"`
	Stock       *int    `db:"stock"        json:"stock,omitempty"        validate:"omitempty,min=0"`
	Active      *bool   `db:"active"       json:"active,omitempty"`
}

// UploadAttachmentRequest carries one multipart file destined for the
// product's S3 folder.
type UploadAttachmentRequest struct {
	File       multipart.File        `json:"-" validate:"required"`
	FileHeader *multipart.FileHeader `json:"-" validate:"required"`
}

type RewardResponse struct {
	ID          string   `json:"id"`
	SponsorName string   `json:"sponsor_name"`
	ProductName string   `json:"product_name"`
	Description string   `json:"description,omitempty"`
	PointsCost  int      `json:"points_cost"`
	Stock       int      `json:"stock"`
	Attachments []string `json:"attachments"`
	Active      bool     `json:"active"`
}

func (r *RewardResponse) FromModel(mod model.RewardProduct) {
	r.ID = mod.ID
	r.SponsorName = mod.SponsorName
	r.ProductName = mod.ProductName
	r.Description = mod.Description
	r.PointsCost = mod.PointsCost
	r.Stock = mod.Stock
	r.Attachments = mod.Attachments
	r.Active = mod.Active
}

type RewardListResponse struct {
	Data []RewardResponse `json:"data"`
}

func (r *RewardListResponse) FromModels(models []model.RewardProduct) {
	r.Data = make([]RewardResponse, len(models))

	for i, mod := range models {
		r.Data[i].FromModel(mod)
	}
}
