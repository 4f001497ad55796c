package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/membership/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// entityNames covers tables whose singular does not read well once
// humanized.
var entityNames = map[string]string{
	"rsvps":         "RSVP",
	"user_profiles": "Profile",
	"job_posts":     "Job Post",
}

// constraintMessages gives named constraints a message users understand.
var constraintMessages = map[string]string{
	"rsvps_meeting_user_key":        "You have already responded to this meeting",
	"rsvps_meeting_meetup_user_key": "This Meetup member already has an RSVP for the meeting",
	"users_external_id_key":         "An account for this identity already exists",
}

// HandleError converts a database error into an *errs.HTTPError.
//
// An *errs.HTTPError passes through unchanged. Missing rows become 404s
// named after the table given to WrapTable, constraint violations become
// 400s and everything else is a 500.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return constraintError(FromPg(pgErr))
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		var tableErr *TableError
		if errors.As(err, &tableErr) {
			return errs.NotFound(entityName(tableErr.Table)+" not found", errs.Public())
		}
		return errs.NotFound("Resource not found")
	}

	return errs.Internal()
}

func constraintError(e *Error) error {
	entity := entityName(e.Table)
	column := constraintColumn(e)

	switch e.Code {
	case UniqueViolation:
		msg, ok := constraintMessages[e.Constraint]
		if !ok {
			field := "identifier"
			if column != "" {
				field = humanize(column)
			}
			msg = fmt.Sprintf("%s %s with this %s already exists", article(entity), entity, field)
		}
		return errs.BadRequest(msg, errs.Public(), errs.WithCode(errorCode(e.Table, "ALREADY_EXISTS")))

	case ForeignKeyViolation:
		referenced := "record"
		if strings.HasSuffix(column, "_id") {
			referenced = humanize(strings.TrimSuffix(column, "_id"))
		}
		return errs.BadRequest(fmt.Sprintf("The referenced %s does not exist", referenced),
			errs.WithCode(errorCode(e.Table, "NOT_FOUND")))

	case NotNullViolation:
		field := humanize(column)
		if field == "" {
			field = "field"
		}
		return errs.BadRequest(fmt.Sprintf("The %s is required", field), errs.Public(),
			errs.WithCode(errorCode(e.Table, "REQUIRED")),
			errs.WithFields(errs.FieldError{Field: column, Error: "is required"}))

	case CheckViolation:
		msg := "One or more values do not meet required conditions"
		if column != "" {
			msg = fmt.Sprintf("The %s value does not meet required conditions", humanize(column))
		}
		return errs.BadRequest(msg, errs.Public(), errs.WithCode(errorCode(e.Table, "INVALID")))

	case SerializationFailed, DeadlockDetected, TooManyConnections:
		return errs.Unavailable("The database is busy, please retry")
	}

	return errs.Internal()
}

// constraintColumn prefers the reported column, falling back to the
// middle of a "<table>_<column>_<suffix>" constraint name.
func constraintColumn(e *Error) string {
	if e.Column != "" {
		return e.Column
	}
	name := strings.TrimPrefix(e.Constraint, e.Table+"_")
	if name == e.Constraint {
		return ""
	}
	for _, suffix := range []string{"_key", "_fkey", "_check"} {
		if trimmed, ok := strings.CutSuffix(name, suffix); ok {
			return trimmed
		}
	}
	return ""
}

// entityName turns "meetings" into "Meeting".
func entityName(table string) string {
	if table == "" {
		return "Record"
	}
	if name, ok := entityNames[table]; ok {
		return name
	}
	return humanize(singular(table))
}

// errorCode builds codes such as RSVP_ALREADY_EXISTS.
func errorCode(table, action string) string {
	domain := "RECORD"
	if table != "" {
		domain = strings.ToUpper(singular(table))
	}
	return domain + "_" + action
}

func singular(table string) string {
	if len(table) > 1 {
		return strings.TrimSuffix(table, "s")
	}
	return table
}

// humanize turns "first_name" into "First Name".
func humanize(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

func article(noun string) string {
	if noun != "" && strings.ContainsRune("AEIOU", rune(noun[0])) {
		return "An"
	}
	return "A"
}
