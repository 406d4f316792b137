package model

import "furk/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID           = "id"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldRole         = "role"
	FieldPhone        = "phone"
	FieldFullName     = "full_name"
	FieldProfileImage = "profile_image"
	FieldIsVerified   = "is_verified"
	FieldLastLogin    = "last_login"
	FieldActive       = "active"
)

// User covers all three roles. IsVerified only means something for
// merchants: an unverified merchant can log in but not operate a storefront.
type User struct {
	ID           string  `db:"id"`
	Email        string  `db:"email"`
	Password     string  `db:"password"`
	Role         string  `db:"role"`
	Phone        *string `db:"phone"`
	FullName     *string `db:"full_name"`
	ProfileImage *string `db:"profile_image"`
	IsVerified   bool    `db:"is_verified"`
	LastLogin    *string `db:"last_login"`
	Active       bool    `db:"active"`
	model.Metadata
}
