// Package validation binds request input and reports invalid fields.
//
// Struct tags are checked by go-playground/validator; failures come back
// as a 400 errs.HTTPError listing each field by its json name.
package validation
