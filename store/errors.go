package store

import "errors"

var (
	// ErrNotFound is returned when a user account or item doesn't exist.
	ErrNotFound = errors.New("finch: not found")

	// ErrAlreadyExists is returned when creating an account whose handle is
	// already taken.
	ErrAlreadyExists = errors.New("finch: already exists")

	// ErrCounterUnderflow is returned when a counter decrement is refused
	// because the stored value is already zero. The stored value is unchanged.
	ErrCounterUnderflow = errors.New("finch: counter underflow")

	// ErrUnavailable wraps any backing-store communication failure. The store
	// does not retry internally; retry policy belongs to the caller.
	ErrUnavailable = errors.New("finch: store unavailable")

	// ErrInvalidChangeSet is returned when a profile change set fails
	// validation before any write is attempted.
	ErrInvalidChangeSet = errors.New("finch: invalid change set")
)
