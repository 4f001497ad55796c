package router

import (
	"github.com/deppfellow/membership/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes mounts the unversioned operational endpoints.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.HEAD("/status", h.Health.CheckHealth)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/docs/openapi.json", h.OpenAPI.ServeOpenAPISpec)

	r.Static("/static", "static")
}
