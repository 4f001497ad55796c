package handler

import (
	"github.com/deppfellow/membership/internal/server"
	"github.com/deppfellow/membership/internal/service"
	"github.com/labstack/echo/v4"
)

const csvContentType = "text/csv; charset=utf-8"

type AttendeeHandler struct {
	Handler
	attendees *service.AttendeeService
}

func NewAttendeeHandler(s *server.Server, attendees *service.AttendeeService) *AttendeeHandler {
	return &AttendeeHandler{
		Handler:   NewHandler(s),
		attendees: attendees,
	}
}

func (h *AttendeeHandler) List(c echo.Context, req *MeetingKeyRequest) (*service.AttendeeList, error) {
	return h.attendees.List(c.Request().Context(), req.Key)
}

// PublicCSV is the host's sign-in sheet: names and RSVP time only.
func (h *AttendeeHandler) PublicCSV(c echo.Context, req *MeetingKeyRequest) (*File, error) {
	return h.export(c, req.Key, false)
}

func (h *AttendeeHandler) PrivateCSV(c echo.Context, req *MeetingKeyRequest) (*File, error) {
	return h.export(c, req.Key, true)
}

func (h *AttendeeHandler) export(c echo.Context, key string, private bool) (*File, error) {
	export, err := h.attendees.ExportCSV(c.Request().Context(), key, private)
	if err != nil {
		return nil, err
	}
	return &File{Name: export.Filename, ContentType: csvContentType, Data: export.Data}, nil
}
