package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/membership/internal/model"
	"github.com/deppfellow/membership/internal/server"
	"github.com/deppfellow/membership/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const meetingColumns = `id, key, title, description, when_at, reg_close_date, where_name, live_stream,
	in_person_capacity, virtual_capacity, published, is_main, meetup_id, created, modified`

type MeetingRepository struct {
	server *server.Server
}

func NewMeetingRepository(s *server.Server) *MeetingRepository {
	return &MeetingRepository{server: s}
}

func (r *MeetingRepository) GetByID(ctx context.Context, id int64) (*model.Meeting, error) {
	return r.getOne(ctx, `SELECT `+meetingColumns+` FROM meetings WHERE id = @id`, pgx.NamedArgs{"id": id})
}

// GetByKey looks a meeting up by its opaque public key.
func (r *MeetingRepository) GetByKey(ctx context.Context, key string) (*model.Meeting, error) {
	return r.getOne(ctx, `SELECT `+meetingColumns+` FROM meetings WHERE key = @key`, pgx.NamedArgs{"key": key})
}

func (r *MeetingRepository) getOne(ctx context.Context, query string, args pgx.NamedArgs) (*model.Meeting, error) {
	rows, err := r.server.DB.Pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("failed to query meeting: %w", err)
	}

	meeting, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Meeting])
	if err != nil {
		return nil, sqlerr.WrapTable("meetings", err)
	}

	return &meeting, nil
}

// ListFuturePublished returns published meetings starting at or after now,
// soonest first.
func (r *MeetingRepository) ListFuturePublished(ctx context.Context, now time.Time, page model.PageRequest) ([]model.Meeting, int, error) {
	return r.listPage(ctx, `published AND when_at >= @now`, `when_at ASC`, now, page)
}

// ListPastPublished returns published meetings that started before now,
// most recent first.
func (r *MeetingRepository) ListPastPublished(ctx context.Context, now time.Time, page model.PageRequest) ([]model.Meeting, int, error) {
	return r.listPage(ctx, `published AND when_at < @now`, `when_at DESC`, now, page)
}

func (r *MeetingRepository) listPage(ctx context.Context, where, order string, now time.Time, page model.PageRequest) ([]model.Meeting, int, error) {
	args := pgx.NamedArgs{
		"now":    now,
		"limit":  page.GetPageSize(),
		"offset": page.GetOffset(),
	}

	var total int
	if err := r.server.DB.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM meetings WHERE `+where, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count meetings: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM meetings WHERE %s ORDER BY %s, id LIMIT @limit OFFSET @offset`,
		meetingColumns, where, order)

	rows, err := r.server.DB.Pool.Query(ctx, query, args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list meetings: %w", err)
	}

	meetings, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Meeting])
	if err != nil {
		return nil, 0, fmt.Errorf("failed to collect meetings: %w", err)
	}

	return meetings, total, nil
}

// ListFutureMain returns upcoming published main meetings, soonest first.
func (r *MeetingRepository) ListFutureMain(ctx context.Context, now time.Time) ([]model.Meeting, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `
		SELECT `+meetingColumns+`
		FROM meetings
		WHERE published AND is_main AND when_at >= @now
		ORDER BY when_at ASC, id`, pgx.NamedArgs{"now": now})
	if err != nil {
		return nil, fmt.Errorf("failed to list main meetings: %w", err)
	}

	return pgx.CollectRows(rows, pgx.RowToStructByName[model.Meeting])
}

// ListAll returns every meeting, newest first.
func (r *MeetingRepository) ListAll(ctx context.Context) ([]model.Meeting, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `SELECT `+meetingColumns+` FROM meetings ORDER BY when_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}

	return pgx.CollectRows(rows, pgx.RowToStructByName[model.Meeting])
}
