package service

import (
	"context"
	"time"

	"github.com/deppfellow/membership/internal/model"
)

// HomeView is what the landing page shows: the next main meeting with its
// RSVP form, its approved topics and the current announcements.
type HomeView struct {
	Form          *RSVPForm            `json:"form"`
	Topics        []model.Topic        `json:"topics"`
	Announcements []model.Announcement `json:"announcements"`
}

type HomeService struct {
	meetings MeetingStore
	topics   TopicStore
	rsvps    *RSVPService
	board    *BoardService
	now      func() time.Time
}

func NewHomeService(meetings MeetingStore, topics TopicStore, rsvps *RSVPService, board *BoardService) *HomeService {
	return &HomeService{
		meetings: meetings,
		topics:   topics,
		rsvps:    rsvps,
		board:    board,
		now:      time.Now,
	}
}

func (s *HomeService) Home(ctx context.Context, user *model.User) (*HomeView, error) {
	form, err := s.rsvps.Form(ctx, NewNextMainMeeting(s.meetings, s.now), user)
	if err != nil {
		return nil, err
	}

	view := &HomeView{Form: form, Topics: []model.Topic{}}

	if form != nil {
		topics, err := s.topics.ListApproved(ctx, form.Meeting.ID)
		if err != nil {
			return nil, err
		}
		if topics != nil {
			view.Topics = topics
		}
	}

	view.Announcements, err = s.board.Announcements(ctx)
	if err != nil {
		return nil, err
	}

	return view, nil
}
