package service

import (
	"context"
	"strings"

	"github.com/deppfellow/membership/internal/errs"
	"github.com/deppfellow/membership/internal/model"
)

type ProfileService struct {
	profiles ProfileStore
}

func NewProfileService(profiles ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func (s *ProfileService) Get(ctx context.Context, userID int64) (*model.UserProfile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

func (s *ProfileService) Organizers(ctx context.Context) ([]model.UserProfile, error) {
	organizers, err := s.profiles.ListOrganizers(ctx)
	if err != nil {
		return nil, err
	}
	if organizers == nil {
		organizers = []model.UserProfile{}
	}
	return organizers, nil
}

// UpdateRole changes a member's role. An empty role resets it to the default.
func (s *ProfileService) UpdateRole(ctx context.Context, userID int64, role string) (*model.UserProfile, error) {
	parsed, ok := model.ParseRole(role)
	if !ok {
		names := make([]string, len(model.Roles))
		for i, r := range model.Roles {
			names[i] = string(r)
		}
		return nil, errs.Invalid(errs.FieldError{
			Field: "role",
			Error: "must be one of: " + strings.Join(names, " "),
		})
	}

	return s.profiles.UpdateRole(ctx, userID, parsed)
}
