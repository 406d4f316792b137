package dto

import (
	"furk/internal/domains/user/model"
	"furk/shared"
	"furk/shared/constant"
	gDto "furk/shared/dto"
	gModel "furk/shared/model"
	"furk/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Email        string  `json:"email"                   validate:"required,email"`
	Password     string  `json:"password"                validate:"required,min=8"`
	Role         string  `json:"role"                    validate:"omitempty,oneof=admin merchant consumer"`
	Phone        *string `json:"phone,omitempty"         validate:"omitempty,max=20"`
	FullName     *string `json:"full_name,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
	IsVerified   *bool   `json:"is_verified,omitempty"`
}

func (r *CreateUserRequest) ToModel(username string, hashedPassword string) model.User {
	role := r.Role
	if role == "" {
		role = constant.RoleConsumer
	}

	isVerified := false
	if r.IsVerified != nil {
		isVerified = *r.IsVerified
	}

	return model.User{
		ID:           uuid.NewString(),
		Email:        r.Email,
		Password:     hashedPassword,
		Role:         role,
		Phone:        r.Phone,
		FullName:     r.FullName,
		ProfileImage: r.ProfileImage,
		IsVerified:   isVerified,
		Active:       true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type UserResponse struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	Phone        *string `json:"phone,omitempty"`
	FullName     *string `json:"full_name,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
	IsVerified   bool    `json:"is_verified"`
	LastLogin    *string `json:"last_login,omitempty"`
	Active       bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Role = model.Role
	r.Phone = model.Phone
	r.FullName = model.FullName
	r.ProfileImage = model.ProfileImage
	r.IsVerified = model.IsVerified
	r.LastLogin = model.LastLogin
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type UpdateUserRequest struct {
	Role         *string `db:"role"          json:"role,omitempty"          validate:"omitempty,oneof=admin merchant consumer"`
	Phone        *string `db:"phone"         json:"phone,omitempty"         validate:"omitempty,max=20"`
	FullName     *string `db:"full_name"     json:"full_name,omitempty"`
	ProfileImage *string `db:"profile_image" json:"profile_image,omitempty"`
	IsVerified   *bool   `db:"is_verified"   json:"is_verified,omitempty"`
	Active       *bool   `db:"active"        json:"active,omitempty"`
}

type UpdateProfileRequest struct {
	Phone        *string `db:"phone"         json:"phone,omitempty"         validate:"omitempty,max=20"`
	FullName     *string `db:"full_name"     json:"full_name,omitempty"`
	ProfileImage *string `db:"profile_image" json:"profile_image,omitempty"`
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
