// Package middleware holds the Echo middleware of the membership API:
// Clerk authentication and the staff, permission and API key guards,
// request ids, request-scoped logging, New Relic tracing, RSVP rate
// limiting and the global error handler.
package middleware
