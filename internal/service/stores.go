package service

import (
	"context"
	"time"

	"github.com/deppfellow/membership/internal/lib/meetup"
	"github.com/deppfellow/membership/internal/model"
	"github.com/hibiken/asynq"
)

type MeetingStore interface {
	GetByID(ctx context.Context, id int64) (*model.Meeting, error)
	GetByKey(ctx context.Context, key string) (*model.Meeting, error)
	ListFuturePublished(ctx context.Context, now time.Time, page model.PageRequest) ([]model.Meeting, int, error)
	ListPastPublished(ctx context.Context, now time.Time, page model.PageRequest) ([]model.Meeting, int, error)
	ListFutureMain(ctx context.Context, now time.Time) ([]model.Meeting, error)
	ListAll(ctx context.Context) ([]model.Meeting, error)
}

type TopicStore interface {
	ListApproved(ctx context.Context, meetingID int64) ([]model.Topic, error)
	Create(ctx context.Context, t *model.Topic) (*model.Topic, error)
}

type RSVPStore interface {
	GetByKey(ctx context.Context, key string) (*model.RSVP, error)
	GetForUser(ctx context.Context, meetingID, userID int64) (*model.RSVP, error)
	Save(ctx context.Context, rsvp *model.RSVP, resolve func(othersConfirmedInPerson int) model.RSVPStatus) error
	UpsertMeetup(ctx context.Context, rsvp *model.RSVP) (bool, error)
	ListAttendees(ctx context.Context, meetingID int64) ([]model.Attendee, error)
	CountByMeetings(ctx context.Context, meetingIDs []int64) ([]model.RSVPCounts, error)
}

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByExternalID(ctx context.Context, externalID string) (*model.User, error)
	Upsert(ctx context.Context, u *model.User) (*model.User, error)
}

type ProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*model.UserProfile, error)
	UpdateRole(ctx context.Context, userID int64, role model.Role) (*model.UserProfile, error)
	ListOrganizers(ctx context.Context) ([]model.UserProfile, error)
}

type AnnouncementStore interface {
	ListActive(ctx context.Context, now time.Time) ([]model.Announcement, error)
}

type JobBoardStore interface {
	ListApprovedJobs(ctx context.Context) ([]model.JobPostListing, error)
	ListAffiliations(ctx context.Context) ([]model.Affiliation, error)
}

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type MeetupClient interface {
	ListYesRSVPs(ctx context.Context, eventID string) ([]meetup.RSVP, error)
}
