package captcha

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPresenceVerifier(t *testing.T) {
	v := NewVerifier("")

	ok, err := v.Verify(context.Background(), "token", "")
	if err != nil || !ok {
		t.Errorf("Verify(token) = %v, %v; want true, nil", ok, err)
	}

	ok, err = v.Verify(context.Background(), "  ", "")
	if err != nil || ok {
		t.Errorf("Verify(blank) = %v, %v; want false, nil", ok, err)
	}
}

func TestRecaptchaVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm() error = %v", err)
		}
		if r.PostForm.Get("secret") != "s3cret" {
			t.Errorf("secret = %q", r.PostForm.Get("secret"))
		}
		w.Header().Set("Content-Type", "application/json")
		if r.PostForm.Get("response") == "good" {
			_, _ = w.Write([]byte(`{"success": true}`))
			return
		}
		_, _ = w.Write([]byte(`{"success": false, "error-codes": ["invalid-input-response"]}`))
	}))
	defer srv.Close()

	v := NewVerifier("s3cret").(*Recaptcha)
	v.verifyURL = srv.URL

	tests := []struct {
		token string
		want  bool
	}{
		{"good", true},
		{"bad", false},
		{"", false},
	}

	for _, tt := range tests {
		got, err := v.Verify(context.Background(), tt.token, "127.0.0.1")
		if err != nil {
			t.Fatalf("Verify(%q) error = %v", tt.token, err)
		}
		if got != tt.want {
			t.Errorf("Verify(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestRecaptchaVerifyServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	v := NewVerifier("s3cret").(*Recaptcha)
	v.verifyURL = srv.URL

	if _, err := v.Verify(context.Background(), "good", ""); err == nil {
		t.Error("Verify() error = nil, want error")
	}
}
