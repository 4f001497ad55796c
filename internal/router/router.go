// Package router builds the Echo instance: the global middleware chain,
// system routes and the versioned API.
package router

import (
	"net/http"

	"github.com/deppfellow/membership/internal/handler"
	"github.com/deppfellow/membership/internal/middleware"
	"github.com/deppfellow/membership/internal/server"
	"github.com/deppfellow/membership/internal/service"
	"github.com/labstack/echo/v4"
)

// MeetingStatusPermission lets non-staff organizers see the status board.
const MeetingStatusPermission = "org:meetings:view"

func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s, services.Auth)

	router := echo.New()
	router.HideBanner = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.Auth.Authenticate(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerAPIRoutes(router.Group("/api/v1"), h, middlewares)

	return router
}

func registerAPIRoutes(v1 *echo.Group, h *handler.Handlers, mw *middleware.Middlewares) {
	auth := mw.Auth

	v1.GET("/home", handler.Handle(h.Board.Handler, h.Board.Home, http.StatusOK, &handler.EmptyRequest{}))
	v1.GET("/messages", handler.Handle(h.Messages.Handler, h.Messages.Pop, http.StatusOK, &handler.EmptyRequest{}))
	v1.GET("/announcements", handler.Handle(h.Board.Handler, h.Board.Announcements, http.StatusOK, &handler.EmptyRequest{}))
	v1.GET("/jobs", handler.Handle(h.Board.Handler, h.Board.Jobs, http.StatusOK, &handler.EmptyRequest{}))
	v1.GET("/affiliations", handler.Handle(h.Board.Handler, h.Board.Affiliations, http.StatusOK, &handler.EmptyRequest{}))
	v1.GET("/events/upcoming", handler.Handle(h.Meeting.Handler, h.Meeting.Timeline, http.StatusOK, &handler.EmptyRequest{}))

	meetings := v1.Group("/meetings")
	meetings.GET("/future", handler.Handle(h.Meeting.Handler, h.Meeting.ListFuture, http.StatusOK, &handler.MeetingPageRequest{}))
	meetings.GET("/past", handler.Handle(h.Meeting.Handler, h.Meeting.ListPast, http.StatusOK, &handler.MeetingPageRequest{}))
	meetings.GET("/status", handler.Handle(h.Meeting.Handler, h.Meeting.Status, http.StatusOK, &handler.EmptyRequest{}),
		auth.RequirePermission(MeetingStatusPermission))
	meetings.GET("/:id", handler.Handle(h.Meeting.Handler, h.Meeting.Detail, http.StatusOK, &handler.MeetingIDRequest{}))
	meetings.POST("/:id/topics", handler.Handle(h.Profile.Handler, h.Profile.ProposeTopic, http.StatusCreated, &handler.ProposeTopicRequest{}),
		auth.RequireAuth)
	meetings.GET("/:key/attendees", handler.Handle(h.Attendee.Handler, h.Attendee.List, http.StatusOK, &handler.MeetingKeyRequest{}))
	meetings.GET("/:key/attendees.csv", handler.HandleFile(h.Attendee.Handler, h.Attendee.PublicCSV, http.StatusOK, &handler.MeetingKeyRequest{}))
	meetings.GET("/:key/attendees/private.csv", handler.HandleFile(h.Attendee.Handler, h.Attendee.PrivateCSV, http.StatusOK, &handler.MeetingKeyRequest{}),
		auth.RequireStaff)

	rsvp := v1.Group("/rsvp", mw.RateLimit.RSVPWrites())
	rsvp.GET("", handler.Handle(h.RSVP.Handler, h.RSVP.NewForm, http.StatusOK, &handler.RSVPFormRequest{}))
	rsvp.POST("", handler.Handle(h.RSVP.Handler, h.RSVP.Create, http.StatusCreated, &handler.CreateRSVPRequest{}))
	rsvp.GET("/:key", handler.Handle(h.RSVP.Handler, h.RSVP.EditForm, http.StatusOK, &handler.RSVPKeyRequest{}))
	rsvp.POST("/:key", handler.Handle(h.RSVP.Handler, h.RSVP.Update, http.StatusOK, &handler.UpdateRSVPRequest{}))
	rsvp.GET("/:key/qr.png", handler.HandleFile(h.RSVP.Handler, h.RSVP.QRCode, http.StatusOK, &handler.RSVPKeyRequest{}))

	v1.GET("/api/meetings", handler.Handle(h.Meeting.Handler, h.Meeting.ListAll, http.StatusOK, &handler.EmptyRequest{}),
		auth.RequireAPIKey())

	v1.GET("/profile", handler.Handle(h.Profile.Handler, h.Profile.Me, http.StatusOK, &handler.EmptyRequest{}),
		auth.RequireAuth)
	v1.GET("/organizers", handler.Handle(h.Profile.Handler, h.Profile.Organizers, http.StatusOK, &handler.EmptyRequest{}))

	admin := v1.Group("/admin", auth.RequireStaff)
	admin.POST("/meetings/:id/meetup-sync", handler.Handle(h.Meeting.Handler, h.Meeting.MeetupSync, http.StatusAccepted, &handler.MeetingIDRequest{}))
	admin.PATCH("/profiles/:user_id/role", handler.Handle(h.Profile.Handler, h.Profile.UpdateRole, http.StatusOK, &handler.UpdateRoleRequest{}))
}
