package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

// newValidator reports fields by their json name so error payloads match
// the body the client sent. "notblank" rejects whitespace-only names and
// titles that "required" lets through.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// Struct runs the shared validator over v.
func Struct(v any) error {
	return validate.Struct(v)
}

// Validatable is implemented by request types. Validate may return
// validator.ValidationErrors, FieldErrors or a ready-made *errs.HTTPError
// such as a 404 for an unknown meeting.
type Validatable interface {
	Validate() error
}

// FieldErrors reports failures no struct tag can express.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	return "Validation failed"
}
