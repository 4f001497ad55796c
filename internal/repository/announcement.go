package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/membership/internal/model"
	"github.com/deppfellow/membership/internal/server"
	"github.com/jackc/pgx/v5"
)

type AnnouncementRepository struct {
	server *server.Server
}

func NewAnnouncementRepository(s *server.Server) *AnnouncementRepository {
	return &AnnouncementRepository{server: s}
}

// ListActive returns active announcements whose end date has not passed,
// newest first.
func (r *AnnouncementRepository) ListActive(ctx context.Context, now time.Time) ([]model.Announcement, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `
		SELECT id, headline, active, photo, link, end_date, text, created, modified
		FROM announcements
		WHERE active AND (end_date IS NULL OR end_date > @now)
		ORDER BY created DESC, id DESC`,
		pgx.NamedArgs{"now": now})
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}

	return pgx.CollectRows(rows, pgx.RowToStructByName[model.Announcement])
}
