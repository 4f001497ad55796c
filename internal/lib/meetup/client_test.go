package meetup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListYesRSVPs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chipy/events/42/rsvps" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"member": {"id": 1, "name": "Ada Lovelace"}, "response": "yes"},
			{"member": {"id": 2, "name": "Grace"}, "response": "no"},
			{"member": {"id": 3, "name": "Alan Mathison Turing"}, "response": "yes"}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "key", "chipy")
	rsvps, err := c.ListYesRSVPs(context.Background(), "42")
	if err != nil {
		t.Fatalf("ListYesRSVPs() error = %v", err)
	}
	if len(rsvps) != 2 {
		t.Fatalf("len(rsvps) = %d, want 2", len(rsvps))
	}

	first, last := rsvps[1].FirstLast()
	if first != "Alan" || last != "Mathison Turing" {
		t.Errorf("FirstLast() = %q, %q", first, last)
	}
}

func TestListYesRSVPsNotConfigured(t *testing.T) {
	c := NewClient("https://api.meetup.com", "", "chipy")
	if _, err := c.ListYesRSVPs(context.Background(), "1"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}

func TestListYesRSVPsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", "chipy")
	if _, err := c.ListYesRSVPs(context.Background(), "1"); err == nil {
		t.Error("ListYesRSVPs() error = nil, want error")
	}
}
