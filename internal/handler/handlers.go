package handler

import (
	"github.com/deppfellow/membership/internal/server"
	"github.com/deppfellow/membership/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Meeting  *MeetingHandler
	RSVP     *RSVPHandler
	Attendee *AttendeeHandler
	Board    *BoardHandler
	Profile  *ProfileHandler
	Messages *MessagesHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Meeting:  NewMeetingHandler(s, services.Meetings, services.RSVPs, services.Meetup),
		RSVP:     NewRSVPHandler(s, services.RSVPs),
		Attendee: NewAttendeeHandler(s, services.Attendees),
		Board:    NewBoardHandler(s, services.Home, services.Board),
		Profile:  NewProfileHandler(s, services.Profiles, services.Topics),
		Messages: NewMessagesHandler(s),
	}
}
