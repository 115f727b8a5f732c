package monitoring

import "errors"

var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicateEntry indicates an insert or update violated a
	// uniqueness constraint, such as registering twice for the same
	// institute or station.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrMissingParent indicates a write referenced a parent resource
	// that does not exist, such as a station for an unknown institute.
	ErrMissingParent = errors.New("referenced parent does not exist")
)
