package repositories

import "errors"

var (
	// ErrNotFound is returned when no record matches the given identifier.
	ErrNotFound = errors.New("record not found")

	// ErrNothingPersisted is returned when a write statement affected zero
	// rows.
	ErrNothingPersisted = errors.New("no rows affected")
)
