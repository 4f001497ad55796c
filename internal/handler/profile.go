package handler

import (
	"github.com/deppfellow/membership/internal/middleware"
	"github.com/deppfellow/membership/internal/model"
	"github.com/deppfellow/membership/internal/server"
	"github.com/deppfellow/membership/internal/service"
	"github.com/labstack/echo/v4"
)

type ProfileHandler struct {
	Handler
	profiles *service.ProfileService
	topics   *service.TopicService
}

func NewProfileHandler(s *server.Server, profiles *service.ProfileService, topics *service.TopicService) *ProfileHandler {
	return &ProfileHandler{
		Handler:  NewHandler(s),
		profiles: profiles,
		topics:   topics,
	}
}

type ProfileView struct {
	User        *model.User        `json:"user"`
	Profile     *model.UserProfile `json:"profile"`
	RoleDisplay string             `json:"role_display"`
}

// Me returns the signed-in user's account and profile.
func (h *ProfileHandler) Me(c echo.Context, _ *EmptyRequest) (*ProfileView, error) {
	user := middleware.GetUser(c)

	profile, err := h.profiles.Get(c.Request().Context(), user.ID)
	if err != nil {
		return nil, err
	}

	return &ProfileView{User: user, Profile: profile, RoleDisplay: profile.Role.Display()}, nil
}

func (h *ProfileHandler) Organizers(c echo.Context, _ *EmptyRequest) ([]model.UserProfile, error) {
	return h.profiles.Organizers(c.Request().Context())
}

func (h *ProfileHandler) UpdateRole(c echo.Context, req *UpdateRoleRequest) (*model.UserProfile, error) {
	profile, err := h.profiles.UpdateRole(c.Request().Context(), req.UserID, req.Role)
	if err != nil {
		return nil, err
	}

	middleware.GetLogger(c).Info().
		Int64("target_user_id", req.UserID).
		Str("role", string(profile.Role)).
		Msg("profile role updated")

	return profile, nil
}

func (h *ProfileHandler) ProposeTopic(c echo.Context, req *ProposeTopicRequest) (*model.Topic, error) {
	id, _ := req.Meeting.ID()
	return h.topics.Propose(c.Request().Context(), id, req.TopicInput)
}
