package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"furk/config"
	"furk/shared/base64"
	"furk/shared/constant"
	"furk/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

const bytesPerMB = 1024.0 * 1024.0

// mimetypes accepts a multipart header or a base64 data URI; the allowed
// content types come space-separated from the tag parameter.
func registerMimetypeValidation(field val.FieldLevel) bool {
	var contentType string

	switch v := field.Field().Interface().(type) {
	case multipart.FileHeader:
		contentType = v.Header.Get(constant.RequestHeaderContentType)
	case string:
		contentType = base64.GetContentType(v)
		if contentType == "" {
			return false
		}
	}

	allowedTypes := strings.Split(field.Param(), " ")

	return slices.Contains(allowedTypes, contentType)
}

// maxfilesize takes its limit in megabytes from the tag parameter.
func registerFileSizeValidation(field val.FieldLevel) bool {
	fileSize := 0

	switch v := field.Field().Interface().(type) {
	case multipart.FileHeader:
		fileSize = int(v.Size)
	case string:
		fileSize = len(v)
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return fileSize <= int(maxSizeMB*bytesPerMB)
}

func mustRegister(tag string, fn val.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func init() {
	cfg := config.Get()

	validate = val.New(val.WithRequiredStructEnabled())

	// The furk tag delegates to the field's own Validate(cfg) method for
	// rules that depend on runtime configuration.
	mustRegister("furk", func(fl val.FieldLevel) bool {
		method := fl.Field().MethodByName("Validate")
		if !method.IsValid() {
			return false
		}

		result := method.Call([]reflect.Value{reflect.ValueOf(cfg)})

		return result[0].Interface() == nil
	})

	mustRegister("empty", func(fl val.FieldLevel) bool {
		return fl.Field().IsZero()
	})

	mustRegister("mimetypes", registerMimetypeValidation)
	mustRegister("maxfilesize", registerFileSizeValidation)
}

// Validate decodes a JSON request body into data and validates it against
// its struct tags. Both decode and validation failures map to a 400.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
