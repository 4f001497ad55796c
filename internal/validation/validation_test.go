package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/membership/internal/errs"
	"github.com/labstack/echo/v4"
)

type signupForm struct {
	FirstName string `json:"first_name" validate:"required,max=5"`
	Email     string `json:"email" validate:"required,email"`
	Response  string `json:"response" validate:"omitempty,oneof=Y N P"`
}

func (s *signupForm) Validate() error {
	return Struct(s)
}

type lookupRequest struct {
	ID string `query:"id"`
}

func (r *lookupRequest) Validate() error {
	if r.ID == "" {
		return errs.NotFound("Meeting missing")
	}
	return nil
}

type customRequest struct{}

func (r *customRequest) Validate() error {
	return FieldErrors{"captcha": "is invalid", "answer": "is required"}
}

func newContext(method, target, body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T (%v)", err, err)
	}
	return httpErr
}

func TestBindAndValidateFieldErrors(t *testing.T) {
	c := newContext(http.MethodPost, "/", `{"first_name":"Bartholomew","email":"nope","response":"X"}`)

	httpErr := asHTTPError(t, BindAndValidate(c, &signupForm{}))
	if httpErr.Status != http.StatusBadRequest {
		t.Fatalf("Status = %d, want 400", httpErr.Status)
	}

	got := map[string]string{}
	for _, fe := range httpErr.Errors {
		got[fe.Field] = fe.Error
	}

	want := map[string]string{
		"first_name": "must not exceed 5 characters",
		"email":      "must be a valid email address",
		"response":   "must be one of: Y N P",
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("field %q error = %q, want %q", field, got[field], msg)
		}
	}
}

func TestBindAndValidatePassesHTTPErrorThrough(t *testing.T) {
	c := newContext(http.MethodGet, "/rsvp", "")

	httpErr := asHTTPError(t, BindAndValidate(c, &lookupRequest{}))
	if httpErr.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", httpErr.Status)
	}
}

func TestBindAndValidateCustomErrors(t *testing.T) {
	c := newContext(http.MethodGet, "/", "")

	httpErr := asHTTPError(t, BindAndValidate(c, &customRequest{}))
	if len(httpErr.Errors) != 2 || httpErr.Errors[0].Field != "answer" || httpErr.Errors[1].Field != "captcha" {
		t.Errorf("Errors = %+v, want sorted by field", httpErr.Errors)
	}
}

func TestBindAndValidateMalformedBody(t *testing.T) {
	c := newContext(http.MethodPost, "/", `{"first_name":`)

	httpErr := asHTTPError(t, BindAndValidate(c, &signupForm{}))
	if httpErr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", httpErr.Status)
	}
}

func TestValidateForm(t *testing.T) {
	if err := ValidateForm(&signupForm{FirstName: "Ada", Email: "ada@example.org"}); err != nil {
		t.Errorf("ValidateForm() error = %v", err)
	}

	httpErr := asHTTPError(t, ValidateForm(&signupForm{}))
	if len(httpErr.Errors) != 2 {
		t.Errorf("expected 2 field errors, got %+v", httpErr.Errors)
	}
}

func TestNotBlank(t *testing.T) {
	type named struct {
		Name string `json:"name" validate:"required,notblank"`
	}

	httpErr := asHTTPError(t, ValidateForm(&named{Name: "   "}))
	if msg, ok := httpErr.Field("name"); !ok || msg != "is required" {
		t.Errorf("Field(name) = %q, %v", msg, ok)
	}
	if err := ValidateForm(&named{Name: "Ada"}); err != nil {
		t.Errorf("ValidateForm() error = %v", err)
	}
}
