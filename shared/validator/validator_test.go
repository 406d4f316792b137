package validator_test

import (
	"strings"
	"testing"

	"furk/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceForm struct {
	Title           string `validate:"required"                    json:"title"`
	ContactEmail    string `validate:"required,email"              json:"contact_email"`
	DurationMinutes int    `validate:"gte=0,lte=480"               json:"duration_minutes"`
	Species         string `validate:"oneof=dog cat rabbit"        json:"species"`
}

func validForm() *serviceForm {
	return &serviceForm{
		Title:           "Full grooming",
		ContactEmail:    "groomer@furk.dev",
		DurationMinutes: 90,
		Species:         "dog",
	}
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid form passes", func(t *testing.T) {
		assert.NoError(t, validator.ValidateStruct(validForm()))
	})

	t.Run("missing required field", func(t *testing.T) {
		form := validForm()
		form.Title = ""

		assert.Error(t, validator.ValidateStruct(form))
	})

	t.Run("invalid email", func(t *testing.T) {
		form := validForm()
		form.ContactEmail = "not-an-email"

		assert.Error(t, validator.ValidateStruct(form))
	})

	t.Run("duration out of range", func(t *testing.T) {
		form := validForm()
		form.DurationMinutes = 600

		assert.Error(t, validator.ValidateStruct(form))
	})

	t.Run("negative duration", func(t *testing.T) {
		form := validForm()
		form.DurationMinutes = -15

		assert.Error(t, validator.ValidateStruct(form))
	})

	t.Run("species outside oneof", func(t *testing.T) {
		form := validForm()
		form.Species = "ferret"

		assert.Error(t, validator.ValidateStruct(form))
	})
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{name: "required string present", field: "poodle", tag: "required", expectError: false},
		{name: "required string empty", field: "", tag: "required", expectError: true},
		{name: "valid email", field: "owner@furk.dev", tag: "email", expectError: false},
		{name: "invalid email", field: "owner-at-furk", tag: "email", expectError: true},
		{name: "duration in range", field: 45, tag: "gte=0,lte=480", expectError: false},
		{name: "duration out of range", field: 999, tag: "gte=0,lte=480", expectError: true},
		{name: "role in oneof", field: "merchant", tag: "oneof=admin merchant consumer", expectError: false},
		{name: "role outside oneof", field: "owner", tag: "oneof=admin merchant consumer", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid body",
			jsonBody:    `{"title":"Cat bath","contact_email":"groomer@furk.dev","duration_minutes":30,"species":"cat"}`,
			expectError: false,
		},
		{
			name:        "valid JSON failing validation",
			jsonBody:    `{"title":"Cat bath","contact_email":"nope","duration_minutes":30,"species":"cat"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"title":"Cat bath","contact_email":}`,
			expectError: true,
		},
		{
			name:        "empty object",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var form serviceForm

			err := validator.Validate(strings.NewReader(tt.jsonBody), &form)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	err := validator.ValidateStruct(&serviceForm{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

// Every rule violation should produce a non-empty, human-readable message,
// since it goes straight into the 400 response body.
func TestValidationErrorHandling(t *testing.T) {
	form := &serviceForm{
		Title:           "",
		ContactEmail:    "invalid",
		DurationMinutes: -1,
		Species:         "ferret",
	}

	err := validator.ValidateStruct(form)

	require.Error(t, err)
	assert.NotEmpty(t, err.Error())
}
