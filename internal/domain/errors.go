package domain

import "errors"

// Sentinel errors shared across services and repositories. Controllers map
// these onto HTTP status codes; everything else is treated as internal.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the caller is authenticated but does not own the
	// entity the operation mutates.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput indicates a request that fails domain validation. Wrap it
	// with the field detail: fmt.Errorf("%w: title is required", ErrInvalidInput).
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyAttending indicates the user already holds a spot at the event.
	ErrAlreadyAttending = errors.New("already attending")

	// ErrEventFull indicates the event's attendee set is at capacity.
	ErrEventFull = errors.New("event full")
)
