package dispatch

import "errors"

var (
	// ErrConfiguration covers malformed or conflicting registrations and
	// mappings. Raised at load time; an application failing configuration
	// must not serve traffic.
	ErrConfiguration = errors.New("invalid dispatcher configuration")
	// ErrFinalized is returned when registration continues after Finalize.
	ErrFinalized = errors.New("dispatcher is finalized")
	// ErrNotFinalized is reported when a request arrives before Finalize.
	ErrNotFinalized = errors.New("dispatcher is not finalized")
)
