// Package repository holds the SQL behind every aggregate: meetings and
// their RSVPs, topics, users and profiles, announcements and the job board.
//
// Queries use pgx named arguments and scan with pgx.RowToStructByName, so
// every selected column needs a matching `db` tag on the model. Lookups of
// a single row wrap their error with sqlerr.WrapTable.
package repository
