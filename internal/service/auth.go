package service

import (
	"context"
	"fmt"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/user"
	"github.com/deppfellow/membership/internal/model"
)

// AuthService maps Clerk identities onto local users.
type AuthService struct {
	users     UserStore
	fetchUser func(ctx context.Context, id string) (*clerk.User, error)
}

func NewAuthService(secretKey string, users UserStore) *AuthService {
	clerk.SetKey(secretKey)
	return &AuthService{
		users:     users,
		fetchUser: user.Get,
	}
}

// ResolveUser returns the local user for a Clerk subject, creating it
// from the Clerk profile on first sight.
func (s *AuthService) ResolveUser(ctx context.Context, externalID string) (*model.User, error) {
	u, err := s.users.GetByExternalID(ctx, externalID)
	if err == nil {
		return u, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	remote, err := s.fetchUser(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clerk user %s: %w", externalID, err)
	}

	return s.users.Upsert(ctx, userFromClerk(remote))
}

func userFromClerk(u *clerk.User) *model.User {
	out := &model.User{
		ExternalID: u.ID,
		Username:   deref(u.Username),
		FirstName:  deref(u.FirstName),
		LastName:   deref(u.LastName),
	}

	for _, addr := range u.EmailAddresses {
		if addr == nil {
			continue
		}
		if out.Email == "" || (u.PrimaryEmailAddressID != nil && addr.ID == *u.PrimaryEmailAddressID) {
			out.Email = addr.EmailAddress
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
