package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/deppfellow/membership/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const staticDir = "static"

// OpenAPIHandler serves the API reference page and the document it renders.
// Both files are read once and kept in memory.
type OpenAPIHandler struct {
	Handler

	page func() ([]byte, error)
	spec func() ([]byte, error)
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return newOpenAPIHandler(s, staticDir)
}

func newOpenAPIHandler(s *server.Server, dir string) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		page:    sync.OnceValues(readStatic(dir, "openapi.html")),
		spec:    sync.OnceValues(readStatic(dir, "openapi.json")),
	}
}

func readStatic(dir, name string) func() ([]byte, error) {
	return func() ([]byte, error) {
		data, err := os.ReadFile(filepath.Join(dir, name))
		return data, errors.Wrapf(err, "reading %s", name)
	}
}

func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	page, err := h.page()
	if err != nil {
		return err
	}
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.HTMLBlob(http.StatusOK, page)
}

func (h *OpenAPIHandler) ServeOpenAPISpec(c echo.Context) error {
	spec, err := h.spec()
	if err != nil {
		return err
	}
	c.Response().Header().Set("Cache-Control", "public, max-age=300")
	return c.JSONBlob(http.StatusOK, spec)
}
