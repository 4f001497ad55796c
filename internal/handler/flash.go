package handler

import (
	"fmt"
	"net/http"

	"github.com/deppfellow/membership/internal/lib/flash"
	"github.com/deppfellow/membership/internal/middleware"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RedirectError ends a request with 303 See Other to Location after
// queueing Message for the client's next page.
type RedirectError struct {
	Location string
	Message  flash.Message
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("redirect to %s: %s", e.Location, e.Message.Message)
}

// existingFlashID returns the caller's flash cookie value, if any.
func existingFlashID(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(flash.CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// flashID returns the caller's flash id, issuing a cookie on first use.
func flashID(c echo.Context) string {
	if id, ok := existingFlashID(c); ok {
		return id
	}

	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     flash.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// pushFlash queues msg for the caller. A storage failure is logged and
// does not fail the request.
func (h Handler) pushFlash(c echo.Context, msg flash.Message) {
	if h.flash == nil {
		return
	}
	if err := h.flash.Push(c.Request().Context(), flashID(c), msg); err != nil {
		middleware.GetLogger(c).Warn().Err(err).Msg("failed to store flash message")
	}
}

func (h Handler) redirect(c echo.Context, r *RedirectError) error {
	h.pushFlash(c, r.Message)
	return c.Redirect(http.StatusSeeOther, r.Location)
}
