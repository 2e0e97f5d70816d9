package models

import "errors"

// Sentinel errors for the chat core. Callers classify failures with
// errors.Is and wrap them with context via fmt.Errorf("%w: ...").
var (
	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden marks an actor acting on a room they do not belong to,
	// or a room that no longer accepts the action.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound marks an absent room, message, or user.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a duplicate room creation race.
	ErrConflict = errors.New("already exists")
	// ErrUnauthorized marks a missing or invalid identity on the request
	// or realtime channel.
	ErrUnauthorized = errors.New("unauthorized")
)
