package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/deppfellow/membership/internal/errs"
	"github.com/deppfellow/membership/internal/lib/job"
	"github.com/deppfellow/membership/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

type SyncAccepted struct {
	MeetingID int64  `json:"meeting_id"`
	TaskID    string `json:"task_id,omitempty"`
	Queued    bool   `json:"queued"`
}

type SyncResult struct {
	MeetingID int64 `json:"meeting_id"`
	Imported  int   `json:"imported"`
	Updated   int   `json:"updated"`
}

// MeetupSyncService imports the "yes" RSVPs of a meeting's Meetup event.
type MeetupSyncService struct {
	meetings MeetingStore
	rsvps    RSVPStore
	client   MeetupClient
	tasks    TaskEnqueuer
	logger   *zerolog.Logger
}

func NewMeetupSyncService(meetings MeetingStore, rsvps RSVPStore, client MeetupClient, tasks TaskEnqueuer,
	logger *zerolog.Logger,
) *MeetupSyncService {
	return &MeetupSyncService{
		meetings: meetings,
		rsvps:    rsvps,
		client:   client,
		tasks:    tasks,
		logger:   logger,
	}
}

// Enqueue schedules a sync for meetingID. A sync that is already pending
// is reported as accepted without queueing a second one.
func (s *MeetupSyncService) Enqueue(ctx context.Context, meetingID int64) (*SyncAccepted, error) {
	meeting, err := s.meetings.GetByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if meeting.MeetupID == nil || *meeting.MeetupID == "" {
		return nil, errs.BadRequest("Meeting has no Meetup event", errs.Public(), errs.WithCode("MEETING_NOT_ON_MEETUP"))
	}

	task, err := job.NewMeetupSyncTask(meeting.ID)
	if err != nil {
		return nil, err
	}

	info, err := s.tasks.EnqueueContext(ctx, task)
	switch {
	case errors.Is(err, asynq.ErrDuplicateTask):
		return &SyncAccepted{MeetingID: meeting.ID, Queued: false}, nil
	case err != nil:
		return nil, err
	}

	return &SyncAccepted{MeetingID: meeting.ID, TaskID: info.ID, Queued: true}, nil
}

// Sync pulls the Meetup RSVPs and upserts them as confirmed in-person
// guest RSVPs keyed on the Meetup member id.
func (s *MeetupSyncService) Sync(ctx context.Context, meetingID int64) (*SyncResult, error) {
	meeting, err := s.meetings.GetByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if meeting.MeetupID == nil || *meeting.MeetupID == "" {
		return nil, errors.New("meeting has no meetup event")
	}

	remote, err := s.client.ListYesRSVPs(ctx, *meeting.MeetupID)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{MeetingID: meeting.ID}
	for _, r := range remote {
		first, last := r.FirstLast()
		memberID := strconv.FormatInt(r.Member.ID, 10)

		inserted, err := s.rsvps.UpsertMeetup(ctx, &model.RSVP{
			Key:          newKey(),
			MeetingID:    meeting.ID,
			FirstName:    first,
			LastName:     last,
			Response:     model.ResponseInPerson,
			Status:       model.StatusConfirmed,
			MeetupUserID: &memberID,
		})
		if err != nil {
			return nil, err
		}
		if inserted {
			result.Imported++
		} else {
			result.Updated++
		}
	}

	s.logger.Info().
		Int64("meeting_id", meeting.ID).
		Int("imported", result.Imported).
		Int("updated", result.Updated).
		Msg("meetup sync finished")

	return result, nil
}

// HandleTask is the asynq handler for job.TaskMeetupSync.
func (s *MeetupSyncService) HandleTask(ctx context.Context, t *asynq.Task) error {
	p, err := job.ParseMeetupSyncPayload(t)
	if err != nil {
		return err
	}
	_, err = s.Sync(ctx, p.MeetingID)
	return err
}
