package repository

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidFilter is returned for a malformed list filter or sort.
	ErrInvalidFilter = errors.New("invalid filter")
)
