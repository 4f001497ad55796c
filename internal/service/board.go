package service

import (
	"context"
	"time"

	"github.com/deppfellow/membership/internal/model"
)

// BoardService serves announcements and the job board.
type BoardService struct {
	announcements AnnouncementStore
	jobs          JobBoardStore
	now           func() time.Time
}

func NewBoardService(announcements AnnouncementStore, jobs JobBoardStore) *BoardService {
	return &BoardService{announcements: announcements, jobs: jobs, now: time.Now}
}

// Announcements returns the announcements visible right now.
func (s *BoardService) Announcements(ctx context.Context) ([]model.Announcement, error) {
	now := s.now()
	items, err := s.announcements.ListActive(ctx, now)
	if err != nil {
		return nil, err
	}

	visible := make([]model.Announcement, 0, len(items))
	for _, a := range items {
		if a.IsVisible(now) {
			visible = append(visible, a)
		}
	}
	return visible, nil
}

func (s *BoardService) Jobs(ctx context.Context) ([]model.JobPostListing, error) {
	jobs, err := s.jobs.ListApprovedJobs(ctx)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []model.JobPostListing{}
	}
	return jobs, nil
}

func (s *BoardService) Affiliations(ctx context.Context) ([]model.Affiliation, error) {
	affiliations, err := s.jobs.ListAffiliations(ctx)
	if err != nil {
		return nil, err
	}
	if affiliations == nil {
		affiliations = []model.Affiliation{}
	}
	return affiliations, nil
}
