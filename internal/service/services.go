package service

import (
	"github.com/deppfellow/membership/internal/lib/captcha"
	"github.com/deppfellow/membership/internal/lib/job"
	"github.com/deppfellow/membership/internal/lib/meetup"
	"github.com/deppfellow/membership/internal/repository"
	"github.com/deppfellow/membership/internal/server"
)

type Services struct {
	Auth      *AuthService
	Job       *job.JobService
	Meetings  *MeetingService
	RSVPs     *RSVPService
	Attendees *AttendeeService
	Home      *HomeService
	Board     *BoardService
	Profiles  *ProfileService
	Topics    *TopicService
	Meetup    *MeetupSyncService
}

// NewService wires every service and registers the task handlers they own
// with the job service.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	cfg := s.Config

	authService := NewAuthService(cfg.Auth.SecretKey, repos.Users)
	board := NewBoardService(repos.Announcements, repos.JobBoard)

	if cfg.Integration.RecaptchaSecret == "" {
		s.Logger.Warn().Msg("recaptcha_secret is empty, anonymous RSVPs only need a non-empty captcha token")
	}

	rsvps := NewRSVPService(
		repos.Meetings,
		repos.RSVPs,
		captcha.NewVerifier(cfg.Integration.RecaptchaSecret),
		s.Job.Client,
		cfg.Server.BaseURL,
		s.Logger,
	)

	meetupClient := meetup.NewClient(
		cfg.Integration.MeetupBaseURL,
		cfg.Integration.MeetupAPIKey,
		cfg.Integration.MeetupGroup,
	)
	meetupSync := NewMeetupSyncService(repos.Meetings, repos.RSVPs, meetupClient, s.Job.Client, s.Logger)
	s.Job.RegisterHandler(job.TaskMeetupSync, meetupSync.HandleTask)

	return &Services{
		Job:       s.Job,
		Auth:      authService,
		Meetings:  NewMeetingService(repos.Meetings, repos.Topics, repos.RSVPs),
		RSVPs:     rsvps,
		Attendees: NewAttendeeService(repos.Meetings, repos.RSVPs),
		Home:      NewHomeService(repos.Meetings, repos.Topics, rsvps, board),
		Board:     board,
		Profiles:  NewProfileService(repos.Profiles),
		Topics:    NewTopicService(repos.Meetings, repos.Topics),
		Meetup:    meetupSync,
	}, nil
}
