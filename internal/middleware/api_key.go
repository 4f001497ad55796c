package middleware

import (
	"crypto/subtle"

	"github.com/deppfellow/membership/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// apiKeyLookup accepts "Authorization: Api-Key <key>" or "X-API-Key: <key>".
const apiKeyLookup = "header:Authorization:Api-Key ,header:X-API-Key"

// RequireAPIKey admits requests that present one of the configured keys.
func (auth *AuthMiddleware) RequireAPIKey() echo.MiddlewareFunc {
	return APIKeyAuth(auth.server.Config.Auth.APIKeys)
}

func APIKeyAuth(keys []string) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup: apiKeyLookup,
		Validator: func(key string, c echo.Context) (bool, error) {
			for _, k := range keys {
				if k != "" && subtle.ConstantTimeCompare([]byte(k), []byte(key)) == 1 {
					return true, nil
				}
			}
			return false, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			return errs.Unauthorized("Invalid or missing API key")
		},
	})
}
