package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/deppfellow/membership/internal/errs"
	"github.com/deppfellow/membership/internal/lib/captcha"
	"github.com/deppfellow/membership/internal/lib/flash"
	"github.com/deppfellow/membership/internal/lib/job"
	"github.com/deppfellow/membership/internal/model"
	"github.com/deppfellow/membership/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"
)

const (
	RSVPUpdatedMessage = "RSVP updated successfully."

	qrCodeSize = 256
	whenLayout = "Monday, January 2 2006 at 3:04 PM MST"
)

// RSVPInitial holds the values an RSVP form starts with.
type RSVPInitial struct {
	Response  model.RSVPResponse `json:"response"`
	Meeting   int64              `json:"meeting"`
	UserID    *int64             `json:"user_id,omitempty"`
	Email     string             `json:"email"`
	FirstName string             `json:"first_name"`
	LastName  string             `json:"last_name"`
}

// RSVPForm describes the form a client renders for a meeting.
type RSVPForm struct {
	Meeting         *model.Meeting `json:"meeting"`
	Initial         RSVPInitial    `json:"initial"`
	CaptchaRequired bool           `json:"captcha_required"`
	CanRegister     bool           `json:"can_register"`
	RSVP            *model.RSVP    `json:"rsvp"`
}

type RSVPInput struct {
	FirstName string             `json:"first_name" form:"first_name" validate:"required,notblank,max=255"`
	LastName  string             `json:"last_name" form:"last_name" validate:"max=255"`
	Email     string             `json:"email" form:"email" validate:"required,email,max=254"`
	Response  model.RSVPResponse `json:"response" form:"response" validate:"required,oneof=Y N P"`
	Captcha   string             `json:"captcha" form:"captcha"`
	RemoteIP  string             `json:"-" form:"-"`
}

// RSVPResult is returned after a successful save together with the
// message to show the user.
type RSVPResult struct {
	RSVP      *model.RSVP `json:"rsvp"`
	Message   string      `json:"message"`
	Level     flash.Level `json:"level"`
	ManageURL string      `json:"manage_url"`
}

type RSVPService struct {
	meetings MeetingStore
	rsvps    RSVPStore
	captcha  captcha.Verifier
	tasks    TaskEnqueuer
	baseURL  string
	now      func() time.Time
	logger   *zerolog.Logger
}

func NewRSVPService(meetings MeetingStore, rsvps RSVPStore, verifier captcha.Verifier, tasks TaskEnqueuer,
	baseURL string, logger *zerolog.Logger,
) *RSVPService {
	return &RSVPService{
		meetings: meetings,
		rsvps:    rsvps,
		captcha:  verifier,
		tasks:    tasks,
		baseURL:  strings.TrimRight(baseURL, "/"),
		now:      time.Now,
		logger:   logger,
	}
}

// Form builds the RSVP form for whichever meeting provider supplies.
// It returns nil when the provider has no meeting.
func (s *RSVPService) Form(ctx context.Context, provider MeetingProvider, user *model.User) (*RSVPForm, error) {
	meeting, err := provider.CurrentMeeting(ctx)
	if err != nil || meeting == nil {
		return nil, err
	}

	form := &RSVPForm{
		Meeting:         meeting,
		Initial:         RSVPInitial{Response: model.ResponseYes, Meeting: meeting.ID},
		CaptchaRequired: user == nil,
		CanRegister:     meeting.CanRegister(s.now()),
	}

	if user != nil {
		id := user.ID
		form.Initial.UserID = &id
		form.Initial.Email = user.Email
		form.Initial.FirstName = user.FirstName
		form.Initial.LastName = user.LastName

		existing, err := s.rsvps.GetForUser(ctx, meeting.ID, user.ID)
		switch {
		case err == nil:
			form.RSVP = existing
		case !isNotFound(err):
			return nil, err
		}
	}

	return form, nil
}

// PrepareCreate returns the form for a new RSVP, refusing once the
// registration window has closed.
func (s *RSVPService) PrepareCreate(ctx context.Context, meetingID int64, user *model.User) (*RSVPForm, error) {
	form, err := s.Form(ctx, NewMeetingByID(s.meetings, meetingID), user)
	if err != nil {
		return nil, err
	}
	if !form.CanRegister {
		return nil, ErrRegistrationClosed
	}
	return form, nil
}

// Create records an RSVP for meetingID. A signed-in user who already has
// an RSVP for the meeting updates it instead of creating a second one,
// and their identity comes from their account. Guests must pass the CAPTCHA.
func (s *RSVPService) Create(ctx context.Context, meetingID int64, user *model.User, input RSVPInput) (*RSVPResult, error) {
	meeting, err := s.meetings.GetByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if !meeting.CanRegister(s.now()) {
		return nil, ErrRegistrationClosed
	}

	if user != nil {
		input.FirstName = firstNonEmpty(user.FirstName, input.FirstName)
		input.LastName = firstNonEmpty(user.LastName, input.LastName)
		input.Email = firstNonEmpty(user.Email, input.Email)
	}

	if err := validation.ValidateForm(input); err != nil {
		return nil, err
	}

	if user == nil {
		if err := s.verifyCaptcha(ctx, input); err != nil {
			return nil, err
		}
	}

	rsvp := &model.RSVP{
		Key:       newKey(),
		MeetingID: meeting.ID,
	}
	var previous *model.RSVP

	if user != nil {
		existing, err := s.rsvps.GetForUser(ctx, meeting.ID, user.ID)
		switch {
		case err == nil:
			snapshot := *existing
			previous = &snapshot
			rsvp = existing
		case !isNotFound(err):
			return nil, err
		}
		id := user.ID
		rsvp.UserID = &id
	}

	rsvp.FirstName = input.FirstName
	rsvp.LastName = input.LastName
	rsvp.Email = input.Email
	rsvp.Response = input.Response

	if err := s.save(ctx, meeting, rsvp, previous); err != nil {
		return nil, err
	}

	s.enqueueConfirmation(ctx, meeting, rsvp)

	level := flash.LevelSuccess
	if rsvp.Status != model.StatusConfirmed {
		level = flash.LevelWarning
	}

	return &RSVPResult{
		RSVP:      rsvp,
		Message:   "Your RSVP has been " + strings.ToUpper(rsvp.Status.Display()) + ".",
		Level:     level,
		ManageURL: s.ManageURL(rsvp.Key),
	}, nil
}

// PrepareUpdate returns the form for the RSVP identified by key. Holding
// the key is all the authorization required.
func (s *RSVPService) PrepareUpdate(ctx context.Context, key string) (*RSVPForm, error) {
	rsvp, meeting, err := s.loadByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if !meeting.CanRegister(s.now()) {
		return nil, ErrRegistrationClosed
	}

	return &RSVPForm{
		Meeting: meeting,
		Initial: RSVPInitial{
			Response:  rsvp.Response,
			Meeting:   meeting.ID,
			UserID:    rsvp.UserID,
			Email:     rsvp.Email,
			FirstName: rsvp.FirstName,
			LastName:  rsvp.LastName,
		},
		CanRegister: true,
		RSVP:        rsvp,
	}, nil
}

func (s *RSVPService) Update(ctx context.Context, key string, input RSVPInput) (*RSVPResult, error) {
	rsvp, meeting, err := s.loadByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if !meeting.CanRegister(s.now()) {
		return nil, ErrRegistrationClosed
	}

	if err := validation.ValidateForm(input); err != nil {
		return nil, err
	}

	snapshot := *rsvp
	rsvp.FirstName = input.FirstName
	rsvp.LastName = input.LastName
	rsvp.Email = input.Email
	rsvp.Response = input.Response

	if err := s.save(ctx, meeting, rsvp, &snapshot); err != nil {
		return nil, err
	}

	return &RSVPResult{
		RSVP:      rsvp,
		Message:   RSVPUpdatedMessage,
		Level:     flash.LevelSuccess,
		ManageURL: s.ManageURL(rsvp.Key),
	}, nil
}

// QRCode renders the self-service link of an RSVP as a PNG.
func (s *RSVPService) QRCode(ctx context.Context, key string) ([]byte, error) {
	rsvp, err := s.rsvps.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(s.ManageURL(rsvp.Key), qrcode.Medium, qrCodeSize)
}

func (s *RSVPService) ManageURL(key string) string {
	return s.baseURL + "/rsvp/" + key
}

func (s *RSVPService) loadByKey(ctx context.Context, key string) (*model.RSVP, *model.Meeting, error) {
	rsvp, err := s.rsvps.GetByKey(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	meeting, err := s.meetings.GetByID(ctx, rsvp.MeetingID)
	if err != nil {
		return nil, nil, err
	}
	return rsvp, meeting, nil
}

func (s *RSVPService) save(ctx context.Context, meeting *model.Meeting, rsvp *model.RSVP, previous *model.RSVP) error {
	response := rsvp.Response
	return s.rsvps.Save(ctx, rsvp, func(others int) model.RSVPStatus {
		return model.ResolveStatus(meeting, response, previous, others)
	})
}

func (s *RSVPService) verifyCaptcha(ctx context.Context, input RSVPInput) error {
	if strings.TrimSpace(input.Captcha) == "" {
		return captchaError("is required")
	}

	ok, err := s.captcha.Verify(ctx, input.Captcha, input.RemoteIP)
	if err != nil {
		return err
	}
	if !ok {
		return captchaError("is invalid")
	}
	return nil
}

func captchaError(msg string) error {
	return errs.Invalid(errs.FieldError{Field: "captcha", Error: msg})
}

// enqueueConfirmation queues the confirmation email. Failures are logged
// and do not fail the RSVP.
func (s *RSVPService) enqueueConfirmation(ctx context.Context, meeting *model.Meeting, rsvp *model.RSVP) {
	if s.tasks == nil {
		return
	}

	task, err := job.NewRSVPConfirmationTask(job.RSVPConfirmationPayload{
		To:           rsvp.Email,
		FirstName:    rsvp.FirstName,
		MeetingTitle: meeting.Title,
		MeetingWhen:  meeting.When.Format(whenLayout),
		Where:        meeting.Where,
		Response:     rsvp.Response.Display(),
		Status:       rsvp.Status.Display(),
		ManageURL:    s.ManageURL(rsvp.Key),
	})
	if err == nil {
		_, err = s.tasks.EnqueueContext(ctx, task)
	}
	if err != nil {
		s.logger.Warn().
			Err(err).
			Int64("rsvp_id", rsvp.ID).
			Msg("failed to enqueue rsvp confirmation")
	}
}

func newKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// IsRegistrationClosed reports whether err means the meeting no longer
// accepts RSVPs.
func IsRegistrationClosed(err error) bool {
	return errors.Is(err, ErrRegistrationClosed)
}
