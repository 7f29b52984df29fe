package session

import "errors"

var (
	// ErrNotFound is returned when no live session exists for an id.
	// Expired entries report ErrNotFound, never the stale session.
	ErrNotFound = errors.New("session not found")
	// ErrClientMismatch is returned when a session id is presented from a
	// client whose IP or User-Agent differs from the one the session was
	// bound to. The lookup fails closed.
	ErrClientMismatch = errors.New("session client binding mismatch")
	// ErrMissingIP is returned when creating a session without a client IP.
	ErrMissingIP = errors.New("client IP is required")
	// ErrIDGeneration is returned when a unique session id could not be
	// generated.
	ErrIDGeneration = errors.New("failed to generate session id")
)
