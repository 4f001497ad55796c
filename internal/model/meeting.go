package model

import "time"

// Meeting is a scheduled event members can RSVP to.
type Meeting struct {
	Base
	Key              string     `json:"key" db:"key"`
	Title            string     `json:"title" db:"title"`
	Description      string     `json:"description" db:"description"`
	When             time.Time  `json:"when" db:"when_at"`
	RegCloseDate     *time.Time `json:"reg_close_date" db:"reg_close_date"`
	Where            string     `json:"where" db:"where_name"`
	LiveStream       *string    `json:"live_stream" db:"live_stream"`
	InPersonCapacity int        `json:"in_person_capacity" db:"in_person_capacity"`
	VirtualCapacity  int        `json:"virtual_capacity" db:"virtual_capacity"`
	Published        bool       `json:"published" db:"published"`
	IsMain           bool       `json:"is_main" db:"is_main"`
	MeetupID         *string    `json:"meetup_id" db:"meetup_id"`
}

// RegistrationDeadline is reg_close_date when set, otherwise the start time.
func (m *Meeting) RegistrationDeadline() time.Time {
	if m.RegCloseDate != nil {
		return *m.RegCloseDate
	}
	return m.When
}

// CanRegister reports whether the meeting still accepts RSVPs at now.
func (m *Meeting) CanRegister(now time.Time) bool {
	return m.Published && now.Before(m.RegistrationDeadline())
}

// IsFuture reports whether the meeting has not started yet.
func (m *Meeting) IsFuture(now time.Time) bool {
	return !m.When.Before(now)
}

// HasCapacity reports whether in-person seats are limited and the
// given number of confirmed attendees has not filled them.
func (m *Meeting) HasCapacity(confirmedInPerson int) bool {
	if m.InPersonCapacity <= 0 {
		return true
	}
	return confirmedInPerson < m.InPersonCapacity
}

// Topic is a talk proposed for, or scheduled at, a meeting.
type Topic struct {
	Base
	MeetingID         *int64  `json:"meeting_id" db:"meeting_id"`
	Title             string  `json:"title" db:"title"`
	Description       string  `json:"description" db:"description"`
	LengthMinutes     int     `json:"length_minutes" db:"length_minutes"`
	Approved          bool    `json:"approved" db:"approved"`
	RequestedReviewer *string `json:"requested_reviewer" db:"requested_reviewer"`
}
