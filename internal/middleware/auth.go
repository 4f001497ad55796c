package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	"github.com/deppfellow/membership/internal/errs"
	"github.com/deppfellow/membership/internal/model"
	"github.com/deppfellow/membership/internal/server"
	"github.com/labstack/echo/v4"
)

// UserResolver maps an identity provider subject onto a local user.
type UserResolver interface {
	ResolveUser(ctx context.Context, externalID string) (*model.User, error)
}

type AuthMiddleware struct {
	server *server.Server
	users  UserResolver
}

func NewAuthMiddleware(s *server.Server, users UserResolver) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		users:  users,
	}
}

// Authenticate verifies a Clerk bearer token when one is sent and loads the
// matching local user. Requests without an Authorization header continue
// anonymously; an invalid token is rejected with 401.
func (auth *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return echo.WrapMiddleware(
			clerkhttp.WithHeaderAuthorization(
				clerkhttp.AuthorizationFailureHandler(http.HandlerFunc(auth.writeUnauthorized)),
			))(func(c echo.Context) error {
			claims, ok := clerk.SessionClaimsFromContext(c.Request().Context())
			if !ok {
				return next(c)
			}

			start := time.Now()

			user, err := auth.users.ResolveUser(c.Request().Context(), claims.Subject)
			if err != nil {
				auth.server.Logger.Error().
					Err(err).
					Str("function", "Authenticate").
					Str("external_id", claims.Subject).
					Str("request_id", GetRequestID(c)).
					Dur("duration", time.Since(start)).
					Msg("could not resolve local user")
				return err
			}

			c.Set(UserIDKey, claims.Subject)
			c.Set(UserRoleKey, claims.ActiveOrganizationRole)
			c.Set(UserKey, user)
			c.Set(PermissionsKey, claims.Claims.ActiveOrganizationPermissions)

			return next(c)
		})
	}
}

func (auth *AuthMiddleware) writeUnauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	if err := json.NewEncoder(w).Encode(errs.Unauthorized("Unauthorized")); err != nil {
		auth.server.Logger.Error().
			Err(err).
			Str("function", "Authenticate").
			Msg("failed to write JSON response")
		return
	}

	auth.server.Logger.Warn().
		Str("function", "Authenticate").
		Str("path", r.URL.Path).
		Msg("rejected invalid session token")
}

// RequireAuth rejects anonymous requests.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if GetUser(c) == nil {
			return errs.Unauthorized("Unauthorized")
		}
		return next(c)
	}
}

// RequireStaff lets only staff accounts through.
func (auth *AuthMiddleware) RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := GetUser(c)
		if user == nil {
			return errs.Unauthorized("Unauthorized")
		}
		if !user.IsStaff {
			return errs.Forbidden("Staff access required")
		}
		return next(c)
	}
}

// RequirePermission admits staff and holders of permission. Everyone else
// is sent back to the home page.
func (auth *AuthMiddleware) RequirePermission(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if user := GetUser(c); user != nil && user.IsStaff {
				return next(c)
			}
			if slices.Contains(GetPermissions(c), permission) {
				return next(c)
			}
			return c.Redirect(http.StatusSeeOther, "/")
		}
	}
}
