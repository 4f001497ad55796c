package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deppfellow/membership/internal/config"
	"github.com/deppfellow/membership/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestOpenAPIHandler(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "openapi.html"), []byte("<html>docs</html>"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "openapi.json"), []byte(`{"openapi":"3.0.3"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	logger := zerolog.Nop()
	h := newOpenAPIHandler(&server.Server{Config: &config.Config{}, Logger: &logger}, dir)

	e := echo.New()
	rec := httptest.NewRecorder()
	if err := h.ServeOpenAPIUI(e.NewContext(httptest.NewRequest(http.MethodGet, "/docs", nil), rec)); err != nil {
		t.Fatalf("ServeOpenAPIUI() error = %v", err)
	}
	if rec.Body.String() != "<html>docs</html>" {
		t.Errorf("page = %q", rec.Body.String())
	}

	for i := 0; i < 2; i++ {
		rec = httptest.NewRecorder()
		if err := h.ServeOpenAPISpec(e.NewContext(httptest.NewRequest(http.MethodGet, "/docs/openapi.json", nil), rec)); err != nil {
			t.Fatalf("ServeOpenAPISpec() #%d error = %v", i, err)
		}
		if rec.Body.String() != `{"openapi":"3.0.3"}` {
			t.Errorf("spec #%d = %q", i, rec.Body.String())
		}
		if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, echo.MIMEApplicationJSON) {
			t.Errorf("Content-Type = %q", ct)
		}

		// Later requests are served from memory.
		_ = os.Remove(filepath.Join(dir, "openapi.json"))
	}
}

func TestOpenAPIHandlerMissingFile(t *testing.T) {
	logger := zerolog.Nop()
	h := newOpenAPIHandler(&server.Server{Config: &config.Config{}, Logger: &logger}, t.TempDir())

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/docs", nil), httptest.NewRecorder())
	if err := h.ServeOpenAPIUI(c); err == nil {
		t.Error("ServeOpenAPIUI() error = nil for a missing page")
	}
}
