package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/membership/internal/errs"
	"github.com/jackc/pgx/v5"
)

func TestTopicPropose(t *testing.T) {
	topics := &fakeTopics{}
	svc := NewTopicService(newFakeMeetings(meeting(1, days(3))), topics)

	reviewer := "mentor@example.org"
	got, err := svc.Propose(context.Background(), 1, TopicInput{Title: "Generics", LengthMinutes: 20, RequestedReviewer: &reviewer})
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}
	if got.Approved || got.MeetingID == nil || *got.MeetingID != 1 || *got.RequestedReviewer != reviewer {
		t.Errorf("topic = %+v", got)
	}

	blank := "  "
	got, err = svc.Propose(context.Background(), 1, TopicInput{Title: "No reviewer", RequestedReviewer: &blank})
	if err != nil {
		t.Fatalf("Propose(blank reviewer) error = %v", err)
	}
	if got.RequestedReviewer != nil {
		t.Errorf("blank reviewer stored as %q", *got.RequestedReviewer)
	}
}

func TestTopicProposeErrors(t *testing.T) {
	svc := NewTopicService(newFakeMeetings(meeting(1, days(3))), &fakeTopics{})

	bad := "not-an-email"
	_, err := svc.Propose(context.Background(), 1, TopicInput{RequestedReviewer: &bad})

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Status != http.StatusBadRequest {
		t.Fatalf("Propose() error = %v, want 400", err)
	}
	fields := map[string]bool{}
	for _, fe := range httpErr.Errors {
		fields[fe.Field] = true
	}
	if !fields["title"] || !fields["requested_reviewer"] {
		t.Errorf("field errors = %+v", httpErr.Errors)
	}

	if _, err := svc.Propose(context.Background(), 9, TopicInput{Title: "x"}); !errors.Is(err, pgx.ErrNoRows) {
		t.Errorf("Propose(unknown meeting) error = %v", err)
	}
}
