package service

import (
	"context"
	"time"

	"github.com/deppfellow/membership/internal/model"
)

// MeetingProvider supplies the meeting an RSVP form is being built for.
// CurrentMeeting returns nil, nil when there is no such meeting.
type MeetingProvider interface {
	CurrentMeeting(ctx context.Context) (*model.Meeting, error)
}

// MeetingByID provides a fixed meeting. A missing meeting is an error.
type MeetingByID struct {
	store MeetingStore
	id    int64
}

func NewMeetingByID(store MeetingStore, id int64) *MeetingByID {
	return &MeetingByID{store: store, id: id}
}

func (p *MeetingByID) CurrentMeeting(ctx context.Context) (*model.Meeting, error) {
	return p.store.GetByID(ctx, p.id)
}

// NextMainMeeting provides the soonest upcoming published main meeting.
type NextMainMeeting struct {
	store MeetingStore
	now   func() time.Time
}

func NewNextMainMeeting(store MeetingStore, now func() time.Time) *NextMainMeeting {
	return &NextMainMeeting{store: store, now: now}
}

func (p *NextMainMeeting) CurrentMeeting(ctx context.Context) (*model.Meeting, error) {
	meetings, err := p.store.ListFutureMain(ctx, p.now())
	if err != nil {
		return nil, err
	}
	if len(meetings) == 0 {
		return nil, nil
	}
	return &meetings[0], nil
}

// LoadedMeeting provides a meeting the caller has already fetched.
type LoadedMeeting struct {
	meeting *model.Meeting
}

func NewLoadedMeeting(meeting *model.Meeting) *LoadedMeeting {
	return &LoadedMeeting{meeting: meeting}
}

func (p *LoadedMeeting) CurrentMeeting(context.Context) (*model.Meeting, error) {
	return p.meeting, nil
}
