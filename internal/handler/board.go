package handler

import (
	"github.com/deppfellow/membership/internal/middleware"
	"github.com/deppfellow/membership/internal/model"
	"github.com/deppfellow/membership/internal/server"
	"github.com/deppfellow/membership/internal/service"
	"github.com/labstack/echo/v4"
)

// BoardHandler serves the home page data, announcements and the job board.
type BoardHandler struct {
	Handler
	home  *service.HomeService
	board *service.BoardService
}

func NewBoardHandler(s *server.Server, home *service.HomeService, board *service.BoardService) *BoardHandler {
	return &BoardHandler{
		Handler: NewHandler(s),
		home:    home,
		board:   board,
	}
}

func (h *BoardHandler) Home(c echo.Context, _ *EmptyRequest) (*service.HomeView, error) {
	return h.home.Home(c.Request().Context(), middleware.GetUser(c))
}

func (h *BoardHandler) Announcements(c echo.Context, _ *EmptyRequest) ([]model.Announcement, error) {
	return h.board.Announcements(c.Request().Context())
}

func (h *BoardHandler) Jobs(c echo.Context, _ *EmptyRequest) ([]model.JobPostListing, error) {
	return h.board.Jobs(c.Request().Context())
}

func (h *BoardHandler) Affiliations(c echo.Context, _ *EmptyRequest) ([]model.Affiliation, error) {
	return h.board.Affiliations(c.Request().Context())
}
