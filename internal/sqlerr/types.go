package sqlerr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Code is a coarse classification of a database error.
type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
	ExclusionViolation  Code = "exclusion_violation"
	SerializationFailed Code = "serialization_failure"
	DeadlockDetected    Code = "deadlock_detected"
	TooManyConnections  Code = "too_many_connections"
)

var sqlStates = map[string]Code{
	"23502": NotNullViolation,
	"23503": ForeignKeyViolation,
	"23505": UniqueViolation,
	"23514": CheckViolation,
	"23P01": ExclusionViolation,
	"40001": SerializationFailed,
	"40P01": DeadlockDetected,
	"53300": TooManyConnections,
}

// MapCode maps a SQLSTATE onto a Code.
func MapCode(sqlState string) Code {
	if code, ok := sqlStates[sqlState]; ok {
		return code
	}
	return Other
}

// Error is the part of a Postgres error the API cares about.
type Error struct {
	Code       Code
	SQLState   string
	Message    string
	Table      string
	Column     string
	Constraint string

	pg *pgconn.PgError
}

func FromPg(src *pgconn.PgError) *Error {
	return &Error{
		Code:       MapCode(src.Code),
		SQLState:   src.Code,
		Message:    src.Message,
		Table:      src.TableName,
		Column:     src.ColumnName,
		Constraint: src.ConstraintName,
		pg:         src,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (SQLSTATE %s)", e.Message, e.SQLState)
}

func (e *Error) Unwrap() error {
	return e.pg
}

// ErrCode classifies err, looking through wrapping for either an *Error or
// a raw *pgconn.PgError.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return MapCode(pgErr.Code)
	}
	return Other
}

// TableError records which table a failed lookup ran against.
type TableError struct {
	Table string
	Err   error
}

// WrapTable tags err with table; nil stays nil.
func WrapTable(table string, err error) error {
	if err == nil {
		return nil
	}
	return &TableError{Table: table, Err: err}
}

func (e *TableError) Error() string {
	return e.Table + ": " + e.Err.Error()
}

func (e *TableError) Unwrap() error {
	return e.Err
}
