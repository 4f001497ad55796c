package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/deppfellow/membership/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// BindAndValidate binds path, query and body input into payload, which
// must be a pointer, and validates it.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.BadRequest(bindErrorMessage(err))
	}
	return toHTTPError(payload.Validate())
}

// ValidateForm validates v with its struct tags.
func ValidateForm(v any) error {
	return toHTTPError(validate.Struct(v))
}

func toHTTPError(err error) error {
	if err == nil {
		return nil
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var fields FieldErrors
	if errors.As(err, &fields) {
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)

		out := make([]errs.FieldError, 0, len(names))
		for _, name := range names {
			out = append(out, errs.FieldError{Field: name, Error: fields[name]})
		}
		return errs.Invalid(out...)
	}

	var tagErrs validator.ValidationErrors
	if errors.As(err, &tagErrs) {
		out := make([]errs.FieldError, 0, len(tagErrs))
		for _, fe := range tagErrs {
			out = append(out, errs.FieldError{Field: fe.Field(), Error: describe(fe)})
		}
		return errs.Invalid(out...)
	}

	return errs.BadRequest(err.Error())
}

func bindErrorMessage(err error) string {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			return msg
		}
	}
	return "Invalid request payload"
}

// describe renders a failed tag the way the forms show it.
func describe(fe validator.FieldError) string {
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}

	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s%s", fe.Param(), unit)
	case "max":
		return fmt.Sprintf("must not exceed %s%s", fe.Param(), unit)
	case "oneof":
		return "must be one of: " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "url", "http_url":
		return "must be a valid URL"
	}

	if fe.Param() != "" {
		return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
	}
	return "failed " + fe.Tag()
}
