package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/membership/internal/model"
	"github.com/deppfellow/membership/internal/server"
	"github.com/deppfellow/membership/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const topicColumns = `id, meeting_id, title, description, length_minutes, approved, requested_reviewer, created, modified`

type TopicRepository struct {
	server *server.Server
}

func NewTopicRepository(s *server.Server) *TopicRepository {
	return &TopicRepository{server: s}
}

// ListApproved returns the approved topics of a meeting in submission order.
func (r *TopicRepository) ListApproved(ctx context.Context, meetingID int64) ([]model.Topic, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `
		SELECT `+topicColumns+`
		FROM topics
		WHERE meeting_id = @meeting_id AND approved
		ORDER BY created, id`,
		pgx.NamedArgs{"meeting_id": meetingID})
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}

	return pgx.CollectRows(rows, pgx.RowToStructByName[model.Topic])
}

// Create stores a proposed topic. Proposals always start unapproved.
func (r *TopicRepository) Create(ctx context.Context, t *model.Topic) (*model.Topic, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `
		INSERT INTO topics (meeting_id, title, description, length_minutes, requested_reviewer)
		VALUES (@meeting_id, @title, @description, @length_minutes, @requested_reviewer)
		RETURNING `+topicColumns,
		pgx.NamedArgs{
			"meeting_id":         t.MeetingID,
			"title":              t.Title,
			"description":        t.Description,
			"length_minutes":     t.LengthMinutes,
			"requested_reviewer": t.RequestedReviewer,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to create topic: %w", err)
	}

	topic, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Topic])
	if err != nil {
		return nil, sqlerr.WrapTable("topics", err)
	}
	return &topic, nil
}
