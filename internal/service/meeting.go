package service

import (
	"context"
	"time"

	"github.com/deppfellow/membership/internal/model"
)

// MeetingPageSize is the number of meetings per page in the future and
// past listings.
const MeetingPageSize = 5

type MeetingService struct {
	meetings MeetingStore
	topics   TopicStore
	rsvps    RSVPStore
	now      func() time.Time
}

func NewMeetingService(meetings MeetingStore, topics TopicStore, rsvps RSVPStore) *MeetingService {
	return &MeetingService{
		meetings: meetings,
		topics:   topics,
		rsvps:    rsvps,
		now:      time.Now,
	}
}

func (s *MeetingService) ListFuture(ctx context.Context, page int) (*model.Pagination[model.Meeting], error) {
	req := model.PageRequest{Page: page, PageSize: MeetingPageSize}
	items, total, err := s.meetings.ListFuturePublished(ctx, s.now(), req)
	if err != nil {
		return nil, err
	}
	return model.NewPagination(req, items, total), nil
}

func (s *MeetingService) ListPast(ctx context.Context, page int) (*model.Pagination[model.Meeting], error) {
	req := model.PageRequest{Page: page, PageSize: MeetingPageSize}
	items, total, err := s.meetings.ListPastPublished(ctx, s.now(), req)
	if err != nil {
		return nil, err
	}
	return model.NewPagination(req, items, total), nil
}

func (s *MeetingService) Get(ctx context.Context, id int64) (*model.Meeting, error) {
	return s.meetings.GetByID(ctx, id)
}

func (s *MeetingService) ApprovedTopics(ctx context.Context, meetingID int64) ([]model.Topic, error) {
	topics, err := s.topics.ListApproved(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if topics == nil {
		topics = []model.Topic{}
	}
	return topics, nil
}

// ListAll backs the read-only meetings API.
func (s *MeetingService) ListAll(ctx context.Context) ([]model.Meeting, error) {
	meetings, err := s.meetings.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if meetings == nil {
		meetings = []model.Meeting{}
	}
	return meetings, nil
}

// MeetingStatus is one row of the organizer status board.
type MeetingStatus struct {
	Meeting model.Meeting    `json:"meeting"`
	Counts  model.RSVPCounts `json:"counts"`
}

// Status lists upcoming published main meetings with their RSVP counts.
func (s *MeetingService) Status(ctx context.Context) ([]MeetingStatus, error) {
	meetings, err := s.meetings.ListFutureMain(ctx, s.now())
	if err != nil {
		return nil, err
	}

	board := make([]MeetingStatus, 0, len(meetings))
	if len(meetings) == 0 {
		return board, nil
	}

	ids := make([]int64, len(meetings))
	for i, m := range meetings {
		ids[i] = m.ID
	}

	counts, err := s.rsvps.CountByMeetings(ctx, ids)
	if err != nil {
		return nil, err
	}

	byMeeting := make(map[int64]model.RSVPCounts, len(counts))
	for _, c := range counts {
		byMeeting[c.MeetingID] = c
	}

	for _, m := range meetings {
		c, ok := byMeeting[m.ID]
		if !ok {
			c = model.RSVPCounts{MeetingID: m.ID}
		}
		board = append(board, MeetingStatus{Meeting: m, Counts: c})
	}
	return board, nil
}

// Timeline returns the upcoming-events timeline.
func (s *MeetingService) Timeline(ctx context.Context) ([]model.TimelineEntry, error) {
	now := s.now()

	future, _, err := s.meetings.ListFuturePublished(ctx, now, model.PageRequest{Page: 1, PageSize: timelineUpcoming})
	if err != nil {
		return nil, err
	}

	past, _, err := s.meetings.ListPastPublished(ctx, now, model.PageRequest{Page: 1, PageSize: 2})
	if err != nil {
		return nil, err
	}

	return BuildTimeline(past, future), nil
}
