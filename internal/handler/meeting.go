package handler

import (
	"github.com/deppfellow/membership/internal/middleware"
	"github.com/deppfellow/membership/internal/model"
	"github.com/deppfellow/membership/internal/server"
	"github.com/deppfellow/membership/internal/service"
	"github.com/labstack/echo/v4"
)

type MeetingHandler struct {
	Handler
	meetings *service.MeetingService
	rsvps    *service.RSVPService
	meetup   *service.MeetupSyncService
}

func NewMeetingHandler(s *server.Server, meetings *service.MeetingService, rsvps *service.RSVPService,
	meetup *service.MeetupSyncService,
) *MeetingHandler {
	return &MeetingHandler{
		Handler:  NewHandler(s),
		meetings: meetings,
		rsvps:    rsvps,
		meetup:   meetup,
	}
}

// MeetingDetail is a meeting with its approved talks and the RSVP form
// the caller would fill in.
type MeetingDetail struct {
	Meeting *model.Meeting    `json:"meeting"`
	Topics  []model.Topic     `json:"topics"`
	Form    *service.RSVPForm `json:"form"`
}

func (h *MeetingHandler) ListFuture(c echo.Context, req *MeetingPageRequest) (*model.Pagination[model.Meeting], error) {
	return h.meetings.ListFuture(c.Request().Context(), req.Page)
}

func (h *MeetingHandler) ListPast(c echo.Context, req *MeetingPageRequest) (*model.Pagination[model.Meeting], error) {
	return h.meetings.ListPast(c.Request().Context(), req.Page)
}

func (h *MeetingHandler) Status(c echo.Context, _ *EmptyRequest) ([]service.MeetingStatus, error) {
	return h.meetings.Status(c.Request().Context())
}

func (h *MeetingHandler) Detail(c echo.Context, req *MeetingIDRequest) (*MeetingDetail, error) {
	ctx := c.Request().Context()
	id, _ := req.Meeting.ID()

	meeting, err := h.meetings.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	topics, err := h.meetings.ApprovedTopics(ctx, meeting.ID)
	if err != nil {
		return nil, err
	}

	form, err := h.rsvps.Form(ctx, service.NewLoadedMeeting(meeting), middleware.GetUser(c))
	if err != nil {
		return nil, err
	}

	return &MeetingDetail{Meeting: meeting, Topics: topics, Form: form}, nil
}

// ListAll is the API-key gated feed of every meeting.
func (h *MeetingHandler) ListAll(c echo.Context, _ *EmptyRequest) ([]model.Meeting, error) {
	return h.meetings.ListAll(c.Request().Context())
}

func (h *MeetingHandler) Timeline(c echo.Context, _ *EmptyRequest) ([]model.TimelineEntry, error) {
	return h.meetings.Timeline(c.Request().Context())
}

func (h *MeetingHandler) MeetupSync(c echo.Context, req *MeetingIDRequest) (*service.SyncAccepted, error) {
	id, _ := req.Meeting.ID()
	return h.meetup.Enqueue(c.Request().Context(), id)
}
