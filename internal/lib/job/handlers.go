package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/membership/internal/lib/email"
	"github.com/hibiken/asynq"
)

type EmailSender interface {
	SendRSVPConfirmation(to string, data email.RSVPConfirmation) error
}

// InitHandlers sets the dependencies the built-in handlers need.
func (j *JobService) InitHandlers(sender EmailSender) {
	j.emailClient = sender
}

func (j *JobService) handleRSVPConfirmationTask(ctx context.Context, t *asynq.Task) error {
	var p RSVPConfirmationPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal rsvp confirmation payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().Str("to", p.To).Str("meeting", p.MeetingTitle).Logger()

	err := j.emailClient.SendRSVPConfirmation(p.To, email.RSVPConfirmation{
		FirstName:    p.FirstName,
		MeetingTitle: p.MeetingTitle,
		MeetingWhen:  p.MeetingWhen,
		Where:        p.Where,
		Response:     p.Response,
		Status:       p.Status,
		ManageURL:    p.ManageURL,
	})
	if err != nil {
		return fmt.Errorf("sending rsvp confirmation: %w", err)
	}

	log.Info().Msg("sent rsvp confirmation")
	return nil
}
