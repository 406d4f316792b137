package response

import (
	"encoding/json"
	"net/http"

	"furk/shared/constant"
	"furk/shared/failure"
	"furk/shared/logger"
)

// Every endpoint answers in one of three envelopes: {data}, {error} or
// {message}. The pagination clients rely on the data envelope shape.
type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	writeJSON(writer, code, Message{Message: &message})
}

func WithJSON(writer http.ResponseWriter, code int, jsonPayload interface{}) {
	writeJSON(writer, code, Data[any]{Data: &jsonPayload})
}

// WithError maps the error to its failure code; unclassified errors come out
// as 500.
func WithError(writer http.ResponseWriter, err error) {
	errMsg := err.Error()

	writeJSON(writer, failure.GetCode(err), Error{Error: &errMsg})
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func writeJSON(writer http.ResponseWriter, code int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err := writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
