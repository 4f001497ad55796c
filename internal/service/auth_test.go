package service

import (
	"context"
	"errors"
	"testing"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/deppfellow/membership/internal/model"
)

func strPtr(s string) *string { return &s }

func TestResolveUserExisting(t *testing.T) {
	users := &fakeUsers{users: map[string]*model.User{"user_1": {ID: 1, ExternalID: "user_1"}}}
	svc := &AuthService{users: users, fetchUser: func(context.Context, string) (*clerk.User, error) {
		t.Fatal("clerk called for known user")
		return nil, nil
	}}

	u, err := svc.ResolveUser(context.Background(), "user_1")
	if err != nil || u.ID != 1 {
		t.Errorf("ResolveUser() = %+v, %v", u, err)
	}
}

func TestResolveUserProvisionsFromClerk(t *testing.T) {
	users := &fakeUsers{users: map[string]*model.User{}}
	svc := &AuthService{users: users, fetchUser: func(_ context.Context, id string) (*clerk.User, error) {
		return &clerk.User{
			ID:                    id,
			Username:              strPtr("ada"),
			FirstName:             strPtr("Ada"),
			LastName:              strPtr("Lovelace"),
			PrimaryEmailAddressID: strPtr("idn_2"),
			EmailAddresses: []*clerk.EmailAddress{
				{ID: "idn_1", EmailAddress: "old@example.org"},
				{ID: "idn_2", EmailAddress: "ada@example.org"},
			},
		}, nil
	}}

	u, err := svc.ResolveUser(context.Background(), "user_2")
	if err != nil {
		t.Fatalf("ResolveUser() error = %v", err)
	}
	if users.upserted != 1 || u.ExternalID != "user_2" || u.Email != "ada@example.org" || u.Username != "ada" || u.FirstName != "Ada" {
		t.Errorf("user = %+v", u)
	}
}

func TestResolveUserClerkError(t *testing.T) {
	clerkErr := errors.New("clerk unavailable")
	svc := &AuthService{users: &fakeUsers{users: map[string]*model.User{}}, fetchUser: func(context.Context, string) (*clerk.User, error) {
		return nil, clerkErr
	}}

	if _, err := svc.ResolveUser(context.Background(), "user_3"); !errors.Is(err, clerkErr) {
		t.Errorf("ResolveUser() error = %v", err)
	}
}
