package errs

import "net/http"

// Option customises an HTTPError built by New.
type Option func(*HTTPError)

// Public marks the message as safe to display to end users.
func Public() Option {
	return func(e *HTTPError) { e.Override = true }
}

// WithCode replaces the status-derived code, e.g. "MEETING_NOT_ON_MEETUP".
func WithCode(code string) Option {
	return func(e *HTTPError) { e.Code = code }
}

// WithFields attaches per-field validation failures.
func WithFields(fields ...FieldError) Option {
	return func(e *HTTPError) { e.Errors = append(e.Errors, fields...) }
}

// WithRedirect asks the client to navigate to location.
func WithRedirect(message, location string) Option {
	return func(e *HTTPError) {
		e.Action = &Action{Type: ActionTypeRedirect, Message: message, Value: location}
	}
}

func New(status int, message string, opts ...Option) *HTTPError {
	e := &HTTPError{
		Code:    StatusCode(status),
		Message: message,
		Status:  status,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func BadRequest(message string, opts ...Option) *HTTPError {
	return New(http.StatusBadRequest, message, opts...)
}

// Invalid is the 400 returned when one or more fields fail validation.
func Invalid(fields ...FieldError) *HTTPError {
	return BadRequest("Validation failed", Public(), WithFields(fields...))
}

func Unauthorized(message string, opts ...Option) *HTTPError {
	return New(http.StatusUnauthorized, message, opts...)
}

func Forbidden(message string, opts ...Option) *HTTPError {
	return New(http.StatusForbidden, message, opts...)
}

func NotFound(message string, opts ...Option) *HTTPError {
	return New(http.StatusNotFound, message, opts...)
}

func TooManyRequests(message string) *HTTPError {
	return New(http.StatusTooManyRequests, message, Public())
}

func Unavailable(message string) *HTTPError {
	return New(http.StatusServiceUnavailable, message)
}

// Internal hides the cause behind the generic status text; the cause is
// logged by the error handler, never returned.
func Internal() *HTTPError {
	return New(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
