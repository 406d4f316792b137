package failure

import (
	"errors"
	"net/http"
)

// Failure carries an HTTP status alongside the message so a handler can map
// a service error straight to a response code with GetCode. Anything that is
// not a Failure renders as a 500.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Failure) Error() string {
	return e.Message
}

var (
	InvalidPageParam        = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
	InvalidLimitParam       = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}
	ForbiddenError          = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
	ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource"}
)

func status(code int, message string) error {
	return &Failure{Code: code, Message: message}
}

// BadRequest wraps err as a 400. A nil err passes through as nil so callers
// can wrap unconditionally.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return status(http.StatusBadRequest, err.Error())
}

// BadRequestFromString returns a 400 with a literal message.
func BadRequestFromString(msg string) error {
	return status(http.StatusBadRequest, msg)
}

// Unauthorized returns a 401 with a literal message.
func Unauthorized(msg string) error {
	return status(http.StatusUnauthorized, msg)
}

// InternalError wraps err as a 500, passing nil through like BadRequest.
func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return status(http.StatusInternalServerError, err.Error())
}

// Unimplemented returns a 501 naming the missing method.
func Unimplemented(methodName string) error {
	return status(http.StatusNotImplemented, methodName)
}

// NotFound returns a 404 naming the missing entity.
func NotFound(entityName string) error {
	return status(http.StatusNotFound, entityName)
}

// Conflict returns a 409 with a literal message.
func Conflict(message string) error {
	return status(http.StatusConflict, message)
}

// Forbidden returns a 403 with a literal message.
func Forbidden(msg string) error {
	return status(http.StatusForbidden, msg)
}

// GetCode extracts the status code from an error chain, defaulting to 500
// for anything that is not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
