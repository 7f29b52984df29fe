package routemap

import "errors"

var (
	// ErrConflict is returned when a pattern is registered twice and the
	// table has no merge function to combine the values.
	ErrConflict = errors.New("conflicting registration for pattern")
	// ErrFinalized is returned when Add is called on a finalized table.
	ErrFinalized = errors.New("table is finalized")
	// ErrEmptyPattern is returned when Add is called with an empty pattern.
	ErrEmptyPattern = errors.New("pattern must not be empty")
)
