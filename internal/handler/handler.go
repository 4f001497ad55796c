// Package handler is the HTTP layer of the membership API. Each handler
// binds and validates its request, calls one service and returns the
// result through the shared pipeline in base.go, which also turns closed
// registration windows into a flash message and a redirect home.
package handler
