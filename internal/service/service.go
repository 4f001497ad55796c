// Package service contains the business logic.
//
// It sits between the handler and repository layers: handlers pass in
// validated input, services apply the domain rules and talk to storage
// through the small interfaces declared in stores.go.
package service
