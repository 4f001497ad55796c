package handler

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/deppfellow/membership/internal/lib/flash"
	"github.com/deppfellow/membership/internal/middleware"
	"github.com/deppfellow/membership/internal/server"
	"github.com/deppfellow/membership/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler carries the dependencies every handler shares.
type Handler struct {
	server *server.Server
	flash  flash.Store
}

func NewHandler(s *server.Server) Handler {
	return Handler{
		server: s,
		flash:  flash.NewRedisStore(s.Redis),
	}
}

// HandlerFunc is a typed endpoint. Req is a pointer to a request struct
// that Echo binds into before Validate runs.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

type HandlerFuncNoContent[Req validation.Validatable] func(c echo.Context, req Req) error

// File is a downloadable or inline binary response.
type File struct {
	Name        string
	ContentType string
	Data        []byte
	Inline      bool
}

// responder writes a successful result.
type responder struct {
	operation string
	write     func(c echo.Context, result any) error
	describe  func(txn *newrelic.Transaction, result any)
}

func jsonResponder(status int) responder {
	return responder{
		operation: "json",
		write:     func(c echo.Context, result any) error { return c.JSON(status, result) },
	}
}

func noContentResponder(status int) responder {
	return responder{
		operation: "no_content",
		write:     func(c echo.Context, _ any) error { return c.NoContent(status) },
	}
}

// fileResponder writes a *File; downloads get an attachment
// Content-Disposition carrying the file name.
func fileResponder(status int) responder {
	return responder{
		operation: "file",
		write: func(c echo.Context, result any) error {
			file := result.(*File)
			if !file.Inline {
				c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Name))
			}
			return c.Blob(status, file.ContentType, file.Data)
		},
		describe: func(txn *newrelic.Transaction, result any) {
			if file, ok := result.(*File); ok && file != nil {
				attrs(txn,
					"file.name", file.Name,
					"file.content_type", file.ContentType,
					"file.size_bytes", len(file.Data))
			}
		},
	}
}

// attrs adds key/value pairs to txn, which may be nil.
func attrs(txn *newrelic.Transaction, kv ...any) {
	if txn == nil {
		return
	}
	for i := 0; i+1 < len(kv); i += 2 {
		txn.AddAttribute(kv[i].(string), kv[i+1])
	}
}

// newRequest allocates a fresh request shaped like proto, so concurrent
// requests never bind into the same struct.
func newRequest[Req validation.Validatable](proto Req) Req {
	t := reflect.TypeOf(proto)
	if t.Kind() != reflect.Pointer {
		return proto
	}
	return reflect.New(t.Elem()).Interface().(Req)
}

// serve is the pipeline behind every typed endpoint: bind and validate,
// run fn, then write the result. A *RedirectError from fn becomes a 303
// with a flash message rather than an error response.
func serve[Req validation.Validatable](
	h Handler,
	c echo.Context,
	req Req,
	fn func(c echo.Context, req Req) (any, error),
	out responder,
) error {
	start := time.Now()
	txn := newrelic.FromContext(c.Request().Context())
	attrs(txn, "handler.name", c.Path())

	logger := middleware.GetLogger(c).With().
		Str("operation", out.operation).
		Str("route", c.Path()).
		Logger()

	if err := validation.BindAndValidate(c, req); err != nil {
		logger.Warn().Err(err).Dur("duration", time.Since(start)).Msg("request validation failed")
		attrs(txn, "validation.status", "failed")
		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
		}
		return err
	}
	validated := time.Since(start)
	attrs(txn, "validation.status", "success", "validation.duration_ms", validated.Milliseconds())

	result, err := fn(c, req)
	elapsed := time.Since(start)

	var redirect *RedirectError
	switch {
	case errors.As(err, &redirect):
		logger.Info().
			Str("location", redirect.Location).
			Str("reason", redirect.Message.Message).
			Msg("request redirected")
		attrs(txn, "handler.status", "redirect")
		return h.redirect(c, redirect)

	case err != nil:
		logger.Error().Err(err).Dur("duration", elapsed).Msg("handler failed")
		attrs(txn, "handler.status", "error", "handler.duration_ms", elapsed.Milliseconds())
		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
		}
		return err
	}

	attrs(txn, "handler.status", "success", "handler.duration_ms", elapsed.Milliseconds())
	if out.describe != nil {
		out.describe(txn, result)
	}

	logger.Debug().
		Dur("validation_duration", validated).
		Dur("duration", elapsed).
		Msg("request handled")

	return out.write(c, result)
}

// Handle registers a typed JSON endpoint.
//
//	g.GET("/meetings/future", handler.Handle(h.Handler, h.ListFuture, http.StatusOK, &MeetingPageRequest{}))
func Handle[Req validation.Validatable, Res any](h Handler, fn HandlerFunc[Req, Res], status int, req Req) echo.HandlerFunc {
	out := jsonResponder(status)
	return func(c echo.Context) error {
		return serve(h, c, newRequest(req), func(c echo.Context, req Req) (any, error) {
			return fn(c, req)
		}, out)
	}
}

// HandleFile registers an endpoint that returns a *File.
func HandleFile[Req validation.Validatable](h Handler, fn HandlerFunc[Req, *File], status int, req Req) echo.HandlerFunc {
	out := fileResponder(status)
	return func(c echo.Context) error {
		return serve(h, c, newRequest(req), func(c echo.Context, req Req) (any, error) {
			return fn(c, req)
		}, out)
	}
}

func HandleNoContent[Req validation.Validatable](h Handler, fn HandlerFuncNoContent[Req], status int, req Req) echo.HandlerFunc {
	out := noContentResponder(status)
	return func(c echo.Context) error {
		return serve(h, c, newRequest(req), func(c echo.Context, req Req) (any, error) {
			return nil, fn(c, req)
		}, out)
	}
}
