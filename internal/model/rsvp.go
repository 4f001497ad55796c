package model

import "strings"

// RSVPResponse is what the attendee answered.
type RSVPResponse string

const (
	ResponseYes      RSVPResponse = "Y"
	ResponseNo       RSVPResponse = "N"
	ResponseInPerson RSVPResponse = "P"
)

var responseDisplay = map[RSVPResponse]string{
	ResponseYes:      "Yes",
	ResponseNo:       "No",
	ResponseInPerson: "In Person",
}

// Display returns the human label, or the raw value when unknown.
func (r RSVPResponse) Display() string {
	if d, ok := responseDisplay[r]; ok {
		return d
	}
	return string(r)
}

func (r RSVPResponse) Valid() bool {
	_, ok := responseDisplay[r]
	return ok
}

// RSVPStatus is the seat assignment derived on save.
type RSVPStatus string

const (
	StatusConfirmed  RSVPStatus = "confirmed"
	StatusWaitlisted RSVPStatus = "waitlisted"
)

var statusDisplay = map[RSVPStatus]string{
	StatusConfirmed:  "Confirmed",
	StatusWaitlisted: "Waitlisted",
}

func (s RSVPStatus) Display() string {
	if d, ok := statusDisplay[s]; ok {
		return d
	}
	return string(s)
}

func (s RSVPStatus) Valid() bool {
	_, ok := statusDisplay[s]
	return ok
}

// RSVP links a member or guest to a meeting. Key is the secret that lets
// its holder update the RSVP without signing in.
type RSVP struct {
	Base
	Key          string       `json:"key" db:"key"`
	MeetingID    int64        `json:"meeting_id" db:"meeting_id"`
	UserID       *int64       `json:"user_id" db:"user_id"`
	FirstName    string       `json:"first_name" db:"first_name"`
	LastName     string       `json:"last_name" db:"last_name"`
	Email        string       `json:"email" db:"email"`
	Response     RSVPResponse `json:"response" db:"response"`
	Status       RSVPStatus   `json:"status" db:"status"`
	MeetupUserID *string      `json:"meetup_user_id" db:"meetup_user_id"`
}

// FullName joins first and last name.
func (r *RSVP) FullName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// IsConfirmedInPerson reports whether the RSVP already holds a seat.
func (r *RSVP) IsConfirmedInPerson() bool {
	return r.Response == ResponseInPerson && r.Status == StatusConfirmed
}

// ResolveStatus derives the status an RSVP with the given response should
// be saved with. previous is the persisted row (nil for a new RSVP) and
// othersConfirmedInPerson counts seats held by other RSVPs. A seat that
// is already held is never given up.
func ResolveStatus(meeting *Meeting, response RSVPResponse, previous *RSVP, othersConfirmedInPerson int) RSVPStatus {
	if response != ResponseInPerson {
		return StatusConfirmed
	}
	if previous != nil && previous.IsConfirmedInPerson() {
		return StatusConfirmed
	}
	if meeting.HasCapacity(othersConfirmedInPerson) {
		return StatusConfirmed
	}
	return StatusWaitlisted
}

// Attendee is an RSVP joined with the username of its owner, if any.
type Attendee struct {
	RSVP
	Username *string `json:"username" db:"username"`
}

// RSVPCounts summarizes the RSVPs of one meeting.
type RSVPCounts struct {
	MeetingID         int64 `json:"meeting_id" db:"meeting_id"`
	Total             int   `json:"total" db:"total"`
	ConfirmedInPerson int   `json:"confirmed_in_person" db:"confirmed_in_person"`
	Waitlisted        int   `json:"waitlisted" db:"waitlisted"`
	Virtual           int   `json:"virtual" db:"virtual_total"`
	Declined          int   `json:"declined" db:"declined"`
}
