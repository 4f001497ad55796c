package errs

import (
	"net/http"
	"strings"
)

// FieldError is a single per-field validation failure.
//
//	{ "field": "email", "error": "must be a valid email address" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type ActionType string

// ActionTypeRedirect tells the client to navigate to Action.Value.
const ActionTypeRedirect ActionType = "redirect"

// Action is an optional instruction for the client.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the JSON error body.
//
// Override marks messages that are safe to show to end users verbatim.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
	Action   *Action      `json:"action"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is matches any *HTTPError; fields are not compared.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// Field reports the error recorded for field, if any.
func (e *HTTPError) Field(field string) (string, bool) {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return fe.Error, true
		}
	}
	return "", false
}

// StatusCode turns a status into its machine code: 404 -> "NOT_FOUND".
func StatusCode(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}
