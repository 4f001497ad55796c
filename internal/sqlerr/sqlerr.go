// Package sqlerr turns Postgres failures into API errors.
//
// Repositories tag lookups with WrapTable so a missing row reads as
// "Meeting not found"; constraint violations raised by pgx become 400s
// whose message names the offending entity or field.
package sqlerr
