package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"furk/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{Code: http.StatusConflict, Message: "slot already booked"}

	assert.Equal(t, "slot already booked", f.Error())
}

func TestPredefinedFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
		message string
	}{
		{"InvalidPageParam", failure.InvalidPageParam, http.StatusBadRequest, "invalid page parameter"},
		{"InvalidLimitParam", failure.InvalidLimitParam, http.StatusBadRequest, "invalid limit parameter"},
		{"ForbiddenError", failure.ForbiddenError, http.StatusForbidden, "You don't have the required permissions"},
		{"ResourceRestrictedError", failure.ResourceRestrictedError, http.StatusForbidden, "You don't have permission to access this resource"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.failure.Code)
			assert.Equal(t, tt.message, tt.failure.Message)
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"BadRequest", failure.BadRequest(errors.New("promo code is expired")), http.StatusBadRequest, "promo code is expired"},
		{"BadRequestFromString", failure.BadRequestFromString("booking cannot move backwards"), http.StatusBadRequest, "booking cannot move backwards"},
		{"Unauthorized", failure.Unauthorized("token expired"), http.StatusUnauthorized, "token expired"},
		{"InternalError", failure.InternalError(errors.New("database connection failed")), http.StatusInternalServerError, "database connection failed"},
		{"Unimplemented", failure.Unimplemented("ExportBookings"), http.StatusNotImplemented, "ExportBookings"},
		{"NotFound", failure.NotFound("service not found"), http.StatusNotFound, "service not found"},
		{"Conflict", failure.Conflict("email already registered"), http.StatusConflict, "email already registered"},
		{"Forbidden", failure.Forbidden("merchant account is not verified"), http.StatusForbidden, "merchant account is not verified"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *failure.Failure
			require.ErrorAs(t, tt.err, &f)

			assert.Equal(t, tt.code, f.Code)
			assert.Equal(t, tt.message, f.Message)
		})
	}
}

// BadRequest and InternalError pass a nil error through so callers can wrap
// unconditionally.
func TestNilPassthrough(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{"failure error", &failure.Failure{Code: http.StatusBadRequest, Message: "test"}, http.StatusBadRequest},
		{"constructed failure", failure.NotFound("booking not found"), http.StatusNotFound},
		{"wrapped failure", fmt.Errorf("redeem promo: %w", failure.Conflict("promo exhausted")), http.StatusConflict},
		{"regular error", errors.New("regular error"), http.StatusInternalServerError},
		{"nil error", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, failure.GetCode(tt.input))
		})
	}
}
