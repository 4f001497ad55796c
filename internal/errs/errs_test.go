package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *HTTPError
		wantStatus int
		wantCode   string
		wantPublic bool
	}{
		{"unauthorized", Unauthorized("nope"), http.StatusUnauthorized, "UNAUTHORIZED", false},
		{"forbidden", Forbidden("nope"), http.StatusForbidden, "FORBIDDEN", false},
		{"bad request", BadRequest("bad"), http.StatusBadRequest, "BAD_REQUEST", false},
		{"not found", NotFound("gone", Public()), http.StatusNotFound, "NOT_FOUND", true},
		{"custom code", NotFound("gone", WithCode("MEETING_MISSING")), http.StatusNotFound, "MEETING_MISSING", false},
		{"too many", TooManyRequests("slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS", true},
		{"unavailable", Unavailable("later"), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", false},
		{"internal", Internal(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", tt.err.Status, tt.wantStatus)
			}
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.wantCode)
			}
			if tt.err.Override != tt.wantPublic {
				t.Errorf("Override = %v, want %v", tt.err.Override, tt.wantPublic)
			}
		})
	}
}

func TestInvalid(t *testing.T) {
	err := Invalid(FieldError{Field: "email", Error: "is required"}, FieldError{Field: "captcha", Error: "is invalid"})

	if err.Status != http.StatusBadRequest || err.Message != "Validation failed" || !err.Override {
		t.Fatalf("unexpected error: %+v", err)
	}
	if msg, ok := err.Field("captcha"); !ok || msg != "is invalid" {
		t.Errorf("Field(captcha) = %q, %v", msg, ok)
	}
	if _, ok := err.Field("role"); ok {
		t.Error("Field(role) should be absent")
	}
}

func TestWithRedirect(t *testing.T) {
	err := Forbidden("Registration closed", WithRedirect("Go home", "/"))
	if err.Action == nil || err.Action.Type != ActionTypeRedirect || err.Action.Value != "/" {
		t.Errorf("unexpected action: %+v", err.Action)
	}
}

func TestHTTPErrorWrapping(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", NotFound("Meeting not found"))

	var httpErr *HTTPError
	if !errors.As(wrapped, &httpErr) {
		t.Fatal("errors.As should find the HTTPError")
	}
	if httpErr.Message != "Meeting not found" {
		t.Errorf("Message = %q", httpErr.Message)
	}
	if !errors.Is(wrapped, &HTTPError{}) {
		t.Error("errors.Is should match any *HTTPError")
	}
}

func TestStatusCode(t *testing.T) {
	if got := StatusCode(http.StatusNotFound); got != "NOT_FOUND" {
		t.Errorf("got %q", got)
	}
}
