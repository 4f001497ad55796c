package service

import (
	"context"
	"strings"

	"github.com/deppfellow/membership/internal/model"
	"github.com/deppfellow/membership/internal/validation"
)

type TopicInput struct {
	Title             string  `json:"title" validate:"required,notblank,max=255"`
	Description       string  `json:"description" validate:"max=5000"`
	LengthMinutes     int     `json:"length_minutes" validate:"min=0,max=240"`
	RequestedReviewer *string `json:"requested_reviewer" validate:"omitempty,email,max=254"`
}

type TopicService struct {
	meetings MeetingStore
	topics   TopicStore
}

func NewTopicService(meetings MeetingStore, topics TopicStore) *TopicService {
	return &TopicService{meetings: meetings, topics: topics}
}

// Propose submits a talk for a meeting. It stays hidden until approved.
func (s *TopicService) Propose(ctx context.Context, meetingID int64, input TopicInput) (*model.Topic, error) {
	if input.RequestedReviewer != nil && strings.TrimSpace(*input.RequestedReviewer) == "" {
		input.RequestedReviewer = nil
	}

	if err := validation.ValidateForm(input); err != nil {
		return nil, err
	}

	meeting, err := s.meetings.GetByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	return s.topics.Create(ctx, &model.Topic{
		MeetingID:         &meeting.ID,
		Title:             input.Title,
		Description:       input.Description,
		LengthMinutes:     input.LengthMinutes,
		RequestedReviewer: input.RequestedReviewer,
	})
}
