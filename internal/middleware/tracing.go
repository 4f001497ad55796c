package middleware

import (
	"github.com/deppfellow/membership/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// TracingMiddleware owns the New Relic transaction of each request. Both
// middlewares pass through when the agent is disabled.
type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{server: s, nrApp: nrApp}
}

func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing tags the transaction with the route parameters that
// identify meetings and RSVPs, the caller and any returned error.
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			txn.AddAttribute("http.real_ip", c.RealIP())
			txn.AddAttribute("request.id", GetRequestID(c))

			err := next(c)

			// Route params and the session are only known once routing and
			// authentication have run.
			for _, name := range []string{"id", "key"} {
				if value := c.Param(name); value != "" {
					txn.AddAttribute("route."+name, value)
				}
			}
			if subject := GetUserID(c); subject != "" {
				txn.AddAttribute("user.external_id", subject)
			}
			if user := GetUser(c); user != nil {
				txn.AddAttribute("user.id", user.ID)
				txn.AddAttribute("user.staff", user.IsStaff)
			}

			if err != nil {
				txn.NoticeError(nrpkgerrors.Wrap(err))
			}
			return err
		}
	}
}
