package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/membership/internal/model"
	"github.com/deppfellow/membership/internal/server"
	"github.com/deppfellow/membership/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, external_id, username, email, first_name, last_name, is_staff, created`

type UserRepository struct {
	server *server.Server
}

func NewUserRepository(s *server.Server) *UserRepository {
	return &UserRepository{server: s}
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = @id`,
		pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, sqlerr.WrapTable("users", err)
	}
	return &user, nil
}

// GetByExternalID looks a user up by the identity provider subject.
func (r *UserRepository) GetByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE external_id = @external_id`,
		pgx.NamedArgs{"external_id": externalID})
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, sqlerr.WrapTable("users", err)
	}
	return &user, nil
}

// Upsert creates or refreshes the local copy of an identity provider user
// and makes sure it has a profile. is_staff is never overwritten here.
func (r *UserRepository) Upsert(ctx context.Context, u *model.User) (*model.User, error) {
	var saved model.User
	err := r.server.DB.WithTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			INSERT INTO users (external_id, username, email, first_name, last_name)
			VALUES (@external_id, @username, @email, @first_name, @last_name)
			ON CONFLICT (external_id) DO UPDATE SET
				username = EXCLUDED.username,
				email = EXCLUDED.email,
				first_name = EXCLUDED.first_name,
				last_name = EXCLUDED.last_name
			RETURNING `+userColumns,
			pgx.NamedArgs{
				"external_id": u.ExternalID,
				"username":    u.Username,
				"email":       u.Email,
				"first_name":  u.FirstName,
				"last_name":   u.LastName,
			})
		if err != nil {
			return fmt.Errorf("failed to upsert user: %w", err)
		}

		saved, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.User])
		if err != nil {
			return sqlerr.WrapTable("users", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO user_profiles (user_id, display_name)
			VALUES (@user_id, @display_name)
			ON CONFLICT (user_id) DO NOTHING`,
			pgx.NamedArgs{"user_id": saved.ID, "display_name": saved.FullName()})
		if err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}
