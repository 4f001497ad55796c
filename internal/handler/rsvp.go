package handler

import (
	"github.com/deppfellow/membership/internal/lib/flash"
	"github.com/deppfellow/membership/internal/middleware"
	"github.com/deppfellow/membership/internal/server"
	"github.com/deppfellow/membership/internal/service"
	"github.com/labstack/echo/v4"
)

type RSVPHandler struct {
	Handler
	rsvps *service.RSVPService
}

func NewRSVPHandler(s *server.Server, rsvps *service.RSVPService) *RSVPHandler {
	return &RSVPHandler{
		Handler: NewHandler(s),
		rsvps:   rsvps,
	}
}

// registrationClosed turns a closed registration window into a redirect
// home with an error message.
func registrationClosed(err error) error {
	if service.IsRegistrationClosed(err) {
		return &RedirectError{
			Location: "/",
			Message:  flash.Message{Level: flash.LevelError, Message: service.RegistrationClosedMessage},
		}
	}
	return err
}

func (h *RSVPHandler) NewForm(c echo.Context, req *RSVPFormRequest) (*service.RSVPForm, error) {
	id, _ := req.Meeting.ID()

	form, err := h.rsvps.PrepareCreate(c.Request().Context(), id, middleware.GetUser(c))
	if err != nil {
		return nil, registrationClosed(err)
	}
	return form, nil
}

func (h *RSVPHandler) Create(c echo.Context, req *CreateRSVPRequest) (*service.RSVPResult, error) {
	id, _ := req.Meeting.ID()

	input := req.RSVPInput
	input.RemoteIP = c.RealIP()

	result, err := h.rsvps.Create(c.Request().Context(), id, middleware.GetUser(c), input)
	if err != nil {
		return nil, registrationClosed(err)
	}

	h.pushFlash(c, flash.Message{Level: result.Level, Message: result.Message})
	return result, nil
}

func (h *RSVPHandler) EditForm(c echo.Context, req *RSVPKeyRequest) (*service.RSVPForm, error) {
	form, err := h.rsvps.PrepareUpdate(c.Request().Context(), req.Key)
	if err != nil {
		return nil, registrationClosed(err)
	}
	return form, nil
}

func (h *RSVPHandler) Update(c echo.Context, req *UpdateRSVPRequest) (*service.RSVPResult, error) {
	input := req.RSVPInput
	input.RemoteIP = c.RealIP()

	result, err := h.rsvps.Update(c.Request().Context(), req.Key, input)
	if err != nil {
		return nil, registrationClosed(err)
	}

	h.pushFlash(c, flash.Message{Level: result.Level, Message: result.Message})
	return result, nil
}

func (h *RSVPHandler) QRCode(c echo.Context, req *RSVPKeyRequest) (*File, error) {
	png, err := h.rsvps.QRCode(c.Request().Context(), req.Key)
	if err != nil {
		return nil, err
	}

	c.Response().Header().Set("Cache-Control", "private, max-age=3600")
	return &File{Name: "rsvp.png", ContentType: "image/png", Data: png, Inline: true}, nil
}
