package handler

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/deppfellow/membership/internal/errs"
	"github.com/deppfellow/membership/internal/service"
	"github.com/deppfellow/membership/internal/validation"
)

// MeetingRef is a meeting id taken from a path, query, form or JSON value.
// Malformed input does not fail binding; it leaves the ref unset so the
// request is answered with 404 rather than 400.
type MeetingRef struct {
	id  int64
	set bool
}

func (r *MeetingRef) UnmarshalParam(param string) error {
	r.parse(param)
	return nil
}

func (r *MeetingRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.parse(s)
		return nil
	}
	r.parse(string(data))
	return nil
}

func (r *MeetingRef) parse(s string) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	r.id, r.set = id, err == nil && id > 0
}

// ID returns the meeting id, or a 404 when none was supplied.
func (r MeetingRef) ID() (int64, error) {
	if !r.set {
		return 0, meetingNotFound()
	}
	return r.id, nil
}

func meetingNotFound() error {
	return errs.NotFound("Meeting not found", errs.Public())
}

type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error { return nil }

type MeetingPageRequest struct {
	Page int `query:"page" validate:"min=0"`
}

func (r *MeetingPageRequest) Validate() error {
	return validation.Struct(r)
}

// MeetingIDRequest identifies a meeting by numeric path id.
type MeetingIDRequest struct {
	Meeting MeetingRef `param:"id"`
}

func (r *MeetingIDRequest) Validate() error {
	_, err := r.Meeting.ID()
	return err
}

// MeetingKeyRequest identifies a meeting by its public key.
type MeetingKeyRequest struct {
	Key string `param:"key" validate:"required"`
}

func (r *MeetingKeyRequest) Validate() error {
	return validation.Struct(r)
}

// RSVPFormRequest selects the meeting of a new RSVP form.
type RSVPFormRequest struct {
	Meeting MeetingRef `query:"meeting"`
}

func (r *RSVPFormRequest) Validate() error {
	_, err := r.Meeting.ID()
	return err
}

// CreateRSVPRequest carries a new RSVP. Field rules are checked by the
// service once the registration window is known to be open.
type CreateRSVPRequest struct {
	Meeting MeetingRef `json:"meeting" form:"meeting"`
	service.RSVPInput
}

func (r *CreateRSVPRequest) Validate() error {
	_, err := r.Meeting.ID()
	return err
}

type RSVPKeyRequest struct {
	Key string `param:"key" validate:"required"`
}

func (r *RSVPKeyRequest) Validate() error {
	return validation.Struct(r)
}

type UpdateRSVPRequest struct {
	Key string `param:"key" json:"-" validate:"required"`
	service.RSVPInput
}

func (r *UpdateRSVPRequest) Validate() error {
	if strings.TrimSpace(r.Key) == "" {
		return validation.FieldErrors{"key": "is required"}
	}
	return nil
}

type ProposeTopicRequest struct {
	Meeting MeetingRef `param:"id" json:"-"`
	service.TopicInput
}

func (r *ProposeTopicRequest) Validate() error {
	_, err := r.Meeting.ID()
	return err
}

type UpdateRoleRequest struct {
	UserID int64  `param:"user_id" json:"-" validate:"required,min=1"`
	Role   string `json:"role"`
}

func (r *UpdateRoleRequest) Validate() error {
	return validation.Struct(r)
}
