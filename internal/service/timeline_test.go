package service

import (
	"context"
	"testing"

	"github.com/deppfellow/membership/internal/model"
)

func ids(entries []model.TimelineEntry) []int64 {
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.Meeting.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBuildTimeline(t *testing.T) {
	past := []model.Meeting{meeting(10, days(-1)), meeting(9, days(-30)), meeting(8, days(-60))}

	tests := []struct {
		name   string
		past   []model.Meeting
		future []model.Meeting
		want   []int64
	}{
		{
			name: "no future keeps two past in order",
			past: past,
			want: []int64{9, 10},
		},
		{
			name:   "one future keeps two past",
			past:   past,
			future: []model.Meeting{meeting(11, days(5))},
			want:   []int64{9, 10, 11},
		},
		{
			name:   "two future keeps one past",
			past:   past,
			future: []model.Meeting{meeting(11, days(5)), meeting(12, days(35))},
			want:   []int64{10, 11, 12},
		},
		{
			name: "future capped at five",
			past: past,
			future: []model.Meeting{
				meeting(11, days(1)), meeting(12, days(2)), meeting(13, days(3)),
				meeting(14, days(4)), meeting(15, days(5)), meeting(16, days(6)),
			},
			want: []int64{10, 11, 12, 13, 14, 15},
		},
		{
			name: "single past",
			past: past[:1],
			want: []int64{10},
		},
		{
			name: "empty",
			want: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildTimeline(tt.past, tt.future)
			if !equalIDs(ids(got), tt.want) {
				t.Fatalf("ids = %v, want %v", ids(got), tt.want)
			}

			for i, e := range got {
				wantSide := model.OrientationLeft
				if i%2 == 1 {
					wantSide = model.OrientationRight
				}
				if e.NodeOrientation != wantSide {
					t.Errorf("entry %d orientation = %q, want %q", i, e.NodeOrientation, wantSide)
				}

				wantStatus := model.TimeStatusActive
				if e.Meeting.When.Before(testNow) {
					wantStatus = model.TimeStatusInactive
				}
				if e.TimeStatus != wantStatus {
					t.Errorf("entry %d status = %q, want %q", i, e.TimeStatus, wantStatus)
				}

				if i > 0 && !got[i-1].Meeting.When.Before(e.Meeting.When) {
					t.Errorf("entry %d is not after entry %d", i, i-1)
				}
			}
		})
	}
}

func TestBuildTimelineDoesNotMutateInput(t *testing.T) {
	past := []model.Meeting{meeting(2, days(-1)), meeting(1, days(-2))}
	BuildTimeline(past, nil)

	if past[0].ID != 2 || past[1].ID != 1 {
		t.Errorf("past reordered: %d, %d", past[0].ID, past[1].ID)
	}
}

func TestMeetingServiceTimeline(t *testing.T) {
	store := newFakeMeetings(
		meeting(1, days(-60)),
		meeting(2, days(-30)),
		meeting(3, days(-1)),
		meeting(4, days(10)),
		meeting(5, days(40), func(m *model.Meeting) { m.Published = false }),
	)
	svc := NewMeetingService(store, &fakeTopics{}, &fakeRSVPs{})
	svc.now = fixedClock

	got, err := svc.Timeline(context.Background())
	if err != nil {
		t.Fatalf("Timeline() error = %v", err)
	}
	if want := []int64{2, 3, 4}; !equalIDs(ids(got), want) {
		t.Errorf("ids = %v, want %v", ids(got), want)
	}
}
