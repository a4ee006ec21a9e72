// Package apperr carries the error taxonomy shared by the exchange and chat
// services. Handlers map these onto HTTP statuses with errors.Is/errors.As;
// anything else is a storage failure and surfaces as a 500.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: unknown exchange or chat id.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized: the actor is not a party to the exchange or chat.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict is reserved for a stricter transition table; the current
	// permissive state machine never returns it.
	ErrConflict = errors.New("conflict")
)

// ValidationError reports missing or malformed input. The caller can retry
// with corrected input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Missing builds the ValidationError for an absent required field.
func Missing(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "required"}
}
