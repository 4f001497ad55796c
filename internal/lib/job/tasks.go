package job

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskRSVPConfirmation = "email:rsvp_confirmation"
	TaskMeetupSync       = "meetup:sync"
)

type RSVPConfirmationPayload struct {
	To           string `json:"to"`
	FirstName    string `json:"first_name"`
	MeetingTitle string `json:"meeting_title"`
	MeetingWhen  string `json:"meeting_when"`
	Where        string `json:"where"`
	Response     string `json:"response"`
	Status       string `json:"status"`
	ManageURL    string `json:"manage_url"`
}

func NewRSVPConfirmationTask(p RSVPConfirmationPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskRSVPConfirmation,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue(QueueEmails),
		asynq.Timeout(30*time.Second),
	), nil
}

type MeetupSyncPayload struct {
	MeetingID int64 `json:"meeting_id"`
}

// NewMeetupSyncTask builds a sync task for one meeting. Only one sync per
// meeting can be pending at a time.
func NewMeetupSyncTask(meetingID int64) (*asynq.Task, error) {
	payload, err := json.Marshal(MeetupSyncPayload{MeetingID: meetingID})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskMeetupSync,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(QueueSync),
		asynq.Timeout(2*time.Minute),
		asynq.Unique(10*time.Minute),
	), nil
}

// ParseMeetupSyncPayload decodes a sync task. Malformed payloads are
// marked to skip retries.
func ParseMeetupSyncPayload(t *asynq.Task) (MeetupSyncPayload, error) {
	var p MeetupSyncPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("failed to unmarshal meetup sync payload: %v: %w", err, asynq.SkipRetry)
	}
	if p.MeetingID <= 0 {
		return p, fmt.Errorf("invalid meeting id %d: %w", p.MeetingID, asynq.SkipRetry)
	}
	return p, nil
}
