package service

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// RegistrationClosedMessage is shown to users who try to RSVP after the
// registration window of a meeting has closed.
const RegistrationClosedMessage = "Registration for this meeting is closed."

var ErrRegistrationClosed = errors.New("registration is closed")

func isNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
