// Package errs holds the error shape every failed request is rendered
// with, plus constructors for the statuses the API returns.
//
// Handlers and services return *HTTPError values directly; anything else
// reaching the error handler is treated as an internal failure.
package errs
