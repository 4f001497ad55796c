package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/membership/internal/config"
	"github.com/deppfellow/membership/internal/middleware"
	"github.com/deppfellow/membership/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const healthCheckTimeout = 5 * time.Second

// HealthHandler reports whether the API and its backing stores respond.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type dependencyCheck struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                     `json:"status"`
	Service     string                     `json:"service"`
	Timestamp   time.Time                  `json:"timestamp"`
	Environment string                     `json:"environment"`
	Checks      map[string]dependencyCheck `json:"checks"`
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      "healthy",
		Service:     config.ServiceName,
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]dependencyCheck),
	}

	checks := map[string]func(ctx context.Context) error{
		"database": func(ctx context.Context) error { return h.server.DB.Pool.Ping(ctx) },
	}
	if h.server.Redis != nil {
		checks["redis"] = func(ctx context.Context) error { return h.server.Redis.Ping(ctx).Err() }
	}

	obs := h.server.Config.Observability
	timeout := healthCheckTimeout
	if obs != nil && obs.HealthChecks.Timeout > 0 {
		timeout = obs.HealthChecks.Timeout
	}

	for name, ping := range checks {
		if obs != nil && !obs.HealthCheckEnabled(name) {
			continue
		}
		result := h.runCheck(c.Request().Context(), &logger, name, timeout, ping)
		response.Checks[name] = result
		if result.Status != "healthy" {
			response.Status = "unhealthy"
		}
	}

	if response.Status != "healthy" {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")
		h.recordFailure("overall", "overall_unhealthy", time.Since(start), "")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Info().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) runCheck(parent context.Context, logger *zerolog.Logger, name string,
	timeout time.Duration, ping func(ctx context.Context) error,
) dependencyCheck {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	start := time.Now()
	err := ping(ctx)
	elapsed := time.Since(start)

	if err != nil {
		logger.Error().
			Err(err).
			Str("check", name).
			Dur("response_time", elapsed).
			Msg("dependency health check failed")
		h.recordFailure(name, name+"_unhealthy", elapsed, err.Error())

		return dependencyCheck{Status: "unhealthy", ResponseTime: elapsed.String(), Error: err.Error()}
	}

	logger.Debug().
		Str("check", name).
		Dur("response_time", elapsed).
		Msg("dependency health check passed")

	return dependencyCheck{Status: "healthy", ResponseTime: elapsed.String()}
}

func (h *HealthHandler) recordFailure(checkType, errorType string, elapsed time.Duration, message string) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}

	attrs := map[string]interface{}{
		"check_type":       checkType,
		"operation":        "health_check",
		"error_type":       errorType,
		"response_time_ms": elapsed.Milliseconds(),
	}
	if message != "" {
		attrs["error_message"] = message
	}

	h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", attrs)
}
