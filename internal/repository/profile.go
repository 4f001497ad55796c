package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/membership/internal/model"
	"github.com/deppfellow/membership/internal/server"
	"github.com/deppfellow/membership/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const profileColumns = `user_id, display_name, show, role, created, modified`

type ProfileRepository struct {
	server *server.Server
}

func NewProfileRepository(s *server.Server) *ProfileRepository {
	return &ProfileRepository{server: s}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*model.UserProfile, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `SELECT `+profileColumns+` FROM user_profiles WHERE user_id = @user_id`,
		pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	profile, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.UserProfile])
	if err != nil {
		return nil, sqlerr.WrapTable("user_profiles", err)
	}
	return &profile, nil
}

// UpdateRole sets the role of an existing profile. The CHECK constraint
// rejects values outside the known roles.
func (r *ProfileRepository) UpdateRole(ctx context.Context, userID int64, role model.Role) (*model.UserProfile, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `
		UPDATE user_profiles
		SET role = @role, modified = NOW()
		WHERE user_id = @user_id
		RETURNING `+profileColumns,
		pgx.NamedArgs{"user_id": userID, "role": role})
	if err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	profile, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.UserProfile])
	if err != nil {
		return nil, sqlerr.WrapTable("user_profiles", err)
	}
	return &profile, nil
}

// ListOrganizers returns shown profiles holding a role other than member.
func (r *ProfileRepository) ListOrganizers(ctx context.Context) ([]model.UserProfile, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `
		SELECT `+profileColumns+`
		FROM user_profiles
		WHERE show AND role <> @member
		ORDER BY display_name, user_id`,
		pgx.NamedArgs{"member": model.RoleMember})
	if err != nil {
		return nil, fmt.Errorf("failed to list organizers: %w", err)
	}

	return pgx.CollectRows(rows, pgx.RowToStructByName[model.UserProfile])
}
