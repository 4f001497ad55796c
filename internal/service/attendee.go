package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/deppfellow/membership/internal/lib/utils"
	"github.com/deppfellow/membership/internal/model"
)

const csvTimeLayout = "2006-01-02 15:04:05-07:00"

var (
	publicCSVHeader  = []string{"Last Name", "First Name", "Added"}
	privateCSVHeader = []string{"User Id", "Username", "Last Name", "First Name", "Email", "Added"}
)

type AttendeeList struct {
	Meeting   *model.Meeting   `json:"meeting"`
	Guests    int              `json:"guests"`
	Attendees []model.Attendee `json:"attendees"`
}

// CSVExport is a rendered attendee export ready to be downloaded.
type CSVExport struct {
	Filename string
	Data     []byte
}

type AttendeeService struct {
	meetings MeetingStore
	rsvps    RSVPStore
}

func NewAttendeeService(meetings MeetingStore, rsvps RSVPStore) *AttendeeService {
	return &AttendeeService{meetings: meetings, rsvps: rsvps}
}

// List returns the confirmed in-person attendees of the meeting with the
// given public key.
func (s *AttendeeService) List(ctx context.Context, meetingKey string) (*AttendeeList, error) {
	meeting, attendees, err := s.load(ctx, meetingKey)
	if err != nil {
		return nil, err
	}
	return &AttendeeList{Meeting: meeting, Guests: len(attendees), Attendees: attendees}, nil
}

// ExportCSV renders the attendee list. The private variant adds account
// and contact columns and is meant for staff only.
func (s *AttendeeService) ExportCSV(ctx context.Context, meetingKey string, private bool) (*CSVExport, error) {
	meeting, attendees, err := s.load(ctx, meetingKey)
	if err != nil {
		return nil, err
	}

	records := make([][]string, 0, len(attendees)+1)
	if private {
		records = append(records, privateCSVHeader)
	} else {
		records = append(records, publicCSVHeader)
	}

	for _, a := range attendees {
		added := a.Created.UTC().Format(csvTimeLayout)
		if !private {
			records = append(records, []string{a.LastName, a.FirstName, added})
			continue
		}

		var userID, username string
		if a.UserID != nil {
			userID = strconv.FormatInt(*a.UserID, 10)
		}
		if a.Username != nil {
			username = *a.Username
		}
		records = append(records, []string{userID, username, a.LastName, a.FirstName, a.Email, added})
	}

	var buf bytes.Buffer
	if err := utils.WriteQuotedCSV(&buf, records); err != nil {
		return nil, fmt.Errorf("failed to write attendee csv: %w", err)
	}

	return &CSVExport{Filename: ExportFilename(meeting), Data: buf.Bytes()}, nil
}

// ExportFilename names an attendee export after the meeting id and start.
func ExportFilename(meeting *model.Meeting) string {
	base := fmt.Sprintf("attendees-export-%d--%s", meeting.ID, meeting.When.UTC().Format(csvTimeLayout))
	return utils.Slugify(base) + ".csv"
}

func (s *AttendeeService) load(ctx context.Context, meetingKey string) (*model.Meeting, []model.Attendee, error) {
	meeting, err := s.meetings.GetByKey(ctx, meetingKey)
	if err != nil {
		return nil, nil, err
	}

	attendees, err := s.rsvps.ListAttendees(ctx, meeting.ID)
	if err != nil {
		return nil, nil, err
	}
	if attendees == nil {
		attendees = []model.Attendee{}
	}
	return meeting, attendees, nil
}
