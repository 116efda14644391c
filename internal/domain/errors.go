// Package domain contains the core business entities and rules.
// These types have no knowledge of databases, HTTP, or any infrastructure concerns.
package domain

import (
	"errors"
	"fmt"
)

// Errors for common domain-level failures.
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrNotLoggedIn       = errors.New("not logged in")
	ErrUnknownField      = errors.New("unknown field")
)

// ValidationErrors is the ordered list of human-readable messages collected
// while validating one record. Order is significant: messages are surfaced to
// the client in the order the rules ran.
type ValidationErrors []string

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0]
	}
	return fmt.Sprintf("%d validation errors", len(e))
}
