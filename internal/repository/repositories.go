package repository

import (
	"github.com/deppfellow/membership/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Meetings      *MeetingRepository
	Topics        *TopicRepository
	RSVPs         *RSVPRepository
	Users         *UserRepository
	Profiles      *ProfileRepository
	Announcements *AnnouncementRepository
	JobBoard      *JobBoardRepository
}

// NewRepositories constructs every repository over the shared pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Meetings:      NewMeetingRepository(s),
		Topics:        NewTopicRepository(s),
		RSVPs:         NewRSVPRepository(s),
		Users:         NewUserRepository(s),
		Profiles:      NewProfileRepository(s),
		Announcements: NewAnnouncementRepository(s),
		JobBoard:      NewJobBoardRepository(s),
	}
}
