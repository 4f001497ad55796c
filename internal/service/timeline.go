package service

import (
	"slices"

	"github.com/deppfellow/membership/internal/model"
)

const timelineUpcoming = 5

// BuildTimeline merges past meetings (most recent first) and upcoming
// meetings (soonest first) into one chronological list.
//
// With more than one upcoming meeting only the latest past meeting is
// kept; otherwise the latest two are. Orientation alternates starting on
// the left.
func BuildTimeline(past, future []model.Meeting) []model.TimelineEntry {
	if len(future) > timelineUpcoming {
		future = future[:timelineUpcoming]
	}

	keep := 2
	if len(future) > 1 {
		keep = 1
	}
	if len(past) < keep {
		keep = len(past)
	}

	recent := slices.Clone(past[:keep])
	slices.Reverse(recent)

	entries := make([]model.TimelineEntry, 0, len(recent)+len(future))
	for _, m := range recent {
		entries = append(entries, model.TimelineEntry{Meeting: m, TimeStatus: model.TimeStatusInactive})
	}
	for _, m := range future {
		entries = append(entries, model.TimelineEntry{Meeting: m, TimeStatus: model.TimeStatusActive})
	}

	for i := range entries {
		if i%2 == 0 {
			entries[i].NodeOrientation = model.OrientationLeft
		} else {
			entries[i].NodeOrientation = model.OrientationRight
		}
	}
	return entries
}
