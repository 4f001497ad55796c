// Package model holds the domain records shared by the repository,
// service and handler layers, plus the small business rules that only
// depend on a record's own fields.
package model

import "time"

// Base carries the columns every table shares.
type Base struct {
	ID       int64     `json:"id" db:"id"`
	Created  time.Time `json:"created" db:"created"`
	Modified time.Time `json:"modified" db:"modified"`
}
