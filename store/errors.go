package store

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when a user insert violates email uniqueness.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrConflict is returned when a conditional write lost to a concurrent
	// writer. Callers may reload and retry.
	ErrConflict = errors.New("write conflict")
	// ErrTimeout is returned when a storage call exceeded its deadline.
	// The operation may be retried.
	ErrTimeout = errors.New("storage timeout")
	// ErrUnavailable is returned for any other storage failure.
	ErrUnavailable = errors.New("storage unavailable")
)
