package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/membership/internal/model"
	"github.com/deppfellow/membership/internal/server"
	"github.com/deppfellow/membership/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const rsvpColumns = `id, key, meeting_id, user_id, first_name, last_name, email, response, status,
	meetup_user_id, created, modified`

type RSVPRepository struct {
	server *server.Server
}

func NewRSVPRepository(s *server.Server) *RSVPRepository {
	return &RSVPRepository{server: s}
}

// GetByKey looks an RSVP up by its self-service key.
func (r *RSVPRepository) GetByKey(ctx context.Context, key string) (*model.RSVP, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `SELECT `+rsvpColumns+` FROM rsvps WHERE key = @key`,
		pgx.NamedArgs{"key": key})
	if err != nil {
		return nil, fmt.Errorf("failed to query rsvp: %w", err)
	}

	rsvp, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.RSVP])
	if err != nil {
		return nil, sqlerr.WrapTable("rsvps", err)
	}
	return &rsvp, nil
}

// GetForUser returns the RSVP a signed-in user holds for a meeting.
func (r *RSVPRepository) GetForUser(ctx context.Context, meetingID, userID int64) (*model.RSVP, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `
		SELECT `+rsvpColumns+`
		FROM rsvps
		WHERE meeting_id = @meeting_id AND user_id = @user_id`,
		pgx.NamedArgs{"meeting_id": meetingID, "user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to query rsvp: %w", err)
	}

	rsvp, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.RSVP])
	if err != nil {
		return nil, sqlerr.WrapTable("rsvps", err)
	}
	return &rsvp, nil
}

// Save inserts or updates rsvp inside a transaction. The meeting row is
// locked first so concurrent saves see a stable seat count; resolve is
// then called with the number of seats held by other RSVPs and its result
// is stored as the status.
//
// A new RSVP from a signed-in user that collides with an existing one
// updates that row instead of creating a second.
func (r *RSVPRepository) Save(ctx context.Context, rsvp *model.RSVP, resolve func(othersConfirmedInPerson int) model.RSVPStatus) error {
	return r.server.DB.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT 1 FROM meetings WHERE id = @id FOR UPDATE`,
			pgx.NamedArgs{"id": rsvp.MeetingID}); err != nil {
			return fmt.Errorf("failed to lock meeting: %w", err)
		}

		var others int
		err := tx.QueryRow(ctx, `
			SELECT COUNT(*)
			FROM rsvps
			WHERE meeting_id = @meeting_id
			  AND response = 'P'
			  AND status = 'confirmed'
			  AND id <> @id
			  AND (@user_id::BIGINT IS NULL OR user_id IS DISTINCT FROM @user_id::BIGINT)`,
			pgx.NamedArgs{"meeting_id": rsvp.MeetingID, "id": rsvp.ID, "user_id": rsvp.UserID},
		).Scan(&others)
		if err != nil {
			return fmt.Errorf("failed to count confirmed rsvps: %w", err)
		}

		rsvp.Status = resolve(others)

		args := pgx.NamedArgs{
			"id":             rsvp.ID,
			"key":            rsvp.Key,
			"meeting_id":     rsvp.MeetingID,
			"user_id":        rsvp.UserID,
			"first_name":     rsvp.FirstName,
			"last_name":      rsvp.LastName,
			"email":          rsvp.Email,
			"response":       rsvp.Response,
			"status":         rsvp.Status,
			"meetup_user_id": rsvp.MeetupUserID,
		}

		var query string
		if rsvp.ID == 0 {
			query = `
				INSERT INTO rsvps (key, meeting_id, user_id, first_name, last_name, email, response, status, meetup_user_id)
				VALUES (@key, @meeting_id, @user_id, @first_name, @last_name, @email, @response, @status, @meetup_user_id)
				ON CONFLICT (meeting_id, user_id) WHERE user_id IS NOT NULL
				DO UPDATE SET
					first_name = EXCLUDED.first_name,
					last_name = EXCLUDED.last_name,
					email = EXCLUDED.email,
					response = EXCLUDED.response,
					status = EXCLUDED.status,
					modified = NOW()
				RETURNING ` + rsvpColumns
		} else {
			query = `
				UPDATE rsvps SET
					first_name = @first_name,
					last_name = @last_name,
					email = @email,
					response = @response,
					status = @status,
					modified = NOW()
				WHERE id = @id
				RETURNING ` + rsvpColumns
		}

		rows, err := tx.Query(ctx, query, args)
		if err != nil {
			return fmt.Errorf("failed to save rsvp: %w", err)
		}

		saved, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.RSVP])
		if err != nil {
			return sqlerr.WrapTable("rsvps", err)
		}

		*rsvp = saved
		return nil
	})
}

// UpsertMeetup stores an RSVP imported from Meetup, keyed on the Meetup
// member id so repeated syncs update rather than duplicate.
func (r *RSVPRepository) UpsertMeetup(ctx context.Context, rsvp *model.RSVP) (bool, error) {
	var inserted bool
	err := r.server.DB.Pool.QueryRow(ctx, `
		INSERT INTO rsvps (key, meeting_id, first_name, last_name, email, response, status, meetup_user_id)
		VALUES (@key, @meeting_id, @first_name, @last_name, @email, @response, @status, @meetup_user_id)
		ON CONFLICT (meeting_id, meetup_user_id) WHERE meetup_user_id IS NOT NULL
		DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			response = EXCLUDED.response,
			modified = NOW()
		RETURNING (xmax = 0)`,
		pgx.NamedArgs{
			"key":            rsvp.Key,
			"meeting_id":     rsvp.MeetingID,
			"first_name":     rsvp.FirstName,
			"last_name":      rsvp.LastName,
			"email":          rsvp.Email,
			"response":       rsvp.Response,
			"status":         rsvp.Status,
			"meetup_user_id": rsvp.MeetupUserID,
		},
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("failed to upsert meetup rsvp: %w", err)
	}
	return inserted, nil
}

// ListAttendees returns confirmed in-person RSVPs ordered by last then
// first name.
func (r *RSVPRepository) ListAttendees(ctx context.Context, meetingID int64) ([]model.Attendee, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `
		SELECT r.id, r.key, r.meeting_id, r.user_id, r.first_name, r.last_name, r.email,
		       r.response, r.status, r.meetup_user_id, r.created, r.modified,
		       u.username
		FROM rsvps r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.meeting_id = @meeting_id
		  AND r.response = 'P'
		  AND r.status = 'confirmed'
		ORDER BY r.last_name, r.first_name, r.id`,
		pgx.NamedArgs{"meeting_id": meetingID})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendees: %w", err)
	}

	return pgx.CollectRows(rows, pgx.RowToStructByName[model.Attendee])
}

// CountByMeetings summarizes the RSVPs of each given meeting.
func (r *RSVPRepository) CountByMeetings(ctx context.Context, meetingIDs []int64) ([]model.RSVPCounts, error) {
	rows, err := r.server.DB.Pool.Query(ctx, `
		SELECT meeting_id,
		       COUNT(*)::INT AS total,
		       COUNT(*) FILTER (WHERE response = 'P' AND status = 'confirmed')::INT AS confirmed_in_person,
		       COUNT(*) FILTER (WHERE status = 'waitlisted')::INT AS waitlisted,
		       COUNT(*) FILTER (WHERE response = 'Y')::INT AS virtual_total,
		       COUNT(*) FILTER (WHERE response = 'N')::INT AS declined
		FROM rsvps
		WHERE meeting_id = ANY(@ids)
		GROUP BY meeting_id`,
		pgx.NamedArgs{"ids": meetingIDs})
	if err != nil {
		return nil, fmt.Errorf("failed to count rsvps: %w", err)
	}

	return pgx.CollectRows(rows, pgx.RowToStructByName[model.RSVPCounts])
}
