package job

import (
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/membership/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

type fakeSender struct {
	to   string
	data email.RSVPConfirmation
	err  error
}

func (f *fakeSender) SendRSVPConfirmation(to string, data email.RSVPConfirmation) error {
	f.to = to
	f.data = data
	return f.err
}

func newTestService(sender EmailSender) *JobService {
	logger := zerolog.Nop()
	j := &JobService{logger: &logger, handlers: make(map[string]asynq.Handler)}
	j.InitHandlers(sender)
	return j
}

func TestHandleRSVPConfirmationTask(t *testing.T) {
	sender := &fakeSender{}
	j := newTestService(sender)

	task, err := NewRSVPConfirmationTask(RSVPConfirmationPayload{
		To:           "ada@example.org",
		FirstName:    "Ada",
		MeetingTitle: "May Meeting",
		Status:       "Confirmed",
		ManageURL:    "https://example.org/rsvp/k",
	})
	if err != nil {
		t.Fatalf("NewRSVPConfirmationTask() error = %v", err)
	}

	if err := j.handleRSVPConfirmationTask(context.Background(), task); err != nil {
		t.Fatalf("handleRSVPConfirmationTask() error = %v", err)
	}
	if sender.to != "ada@example.org" || sender.data.MeetingTitle != "May Meeting" || sender.data.ManageURL == "" {
		t.Errorf("sender got to=%q data=%+v", sender.to, sender.data)
	}
}

func TestHandleRSVPConfirmationTaskErrors(t *testing.T) {
	sendErr := errors.New("provider down")
	j := newTestService(&fakeSender{err: sendErr})

	task, _ := NewRSVPConfirmationTask(RSVPConfirmationPayload{To: "a@b.c"})
	if err := j.handleRSVPConfirmationTask(context.Background(), task); !errors.Is(err, sendErr) {
		t.Errorf("error = %v, want %v", err, sendErr)
	}

	bad := asynq.NewTask(TaskRSVPConfirmation, []byte("{"))
	if err := j.handleRSVPConfirmationTask(context.Background(), bad); !errors.Is(err, asynq.SkipRetry) {
		t.Errorf("error = %v, want SkipRetry", err)
	}
}

func TestParseMeetupSyncPayload(t *testing.T) {
	task, err := NewMeetupSyncTask(7)
	if err != nil {
		t.Fatalf("NewMeetupSyncTask() error = %v", err)
	}

	p, err := ParseMeetupSyncPayload(task)
	if err != nil || p.MeetingID != 7 {
		t.Errorf("ParseMeetupSyncPayload() = %+v, %v", p, err)
	}

	for _, raw := range []string{"nope", `{"meeting_id": 0}`} {
		_, err := ParseMeetupSyncPayload(asynq.NewTask(TaskMeetupSync, []byte(raw)))
		if !errors.Is(err, asynq.SkipRetry) {
			t.Errorf("payload %q: error = %v, want SkipRetry", raw, err)
		}
	}
}

func TestRegisterHandler(t *testing.T) {
	j := newTestService(nil)
	j.RegisterHandler(TaskMeetupSync, func(context.Context, *asynq.Task) error { return nil })

	if _, ok := j.handlers[TaskMeetupSync]; !ok {
		t.Error("handler not registered")
	}
}

func TestTaskTypes(t *testing.T) {
	confirm, _ := NewRSVPConfirmationTask(RSVPConfirmationPayload{To: "a@b.c"})
	sync, _ := NewMeetupSyncTask(1)

	if confirm.Type() != TaskRSVPConfirmation || sync.Type() != TaskMeetupSync {
		t.Errorf("types = %q, %q", confirm.Type(), sync.Type())
	}
}

func TestLogTaskPassesResultThrough(t *testing.T) {
	j := newTestService(nil)
	want := errors.New("boom")

	h := j.logTask(asynq.HandlerFunc(func(context.Context, *asynq.Task) error { return want }))
	if err := h.ProcessTask(context.Background(), asynq.NewTask(TaskMeetupSync, nil)); !errors.Is(err, want) {
		t.Errorf("error = %v, want %v", err, want)
	}
}
