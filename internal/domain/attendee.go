package domain

import "context"

// AttendeeRepository defines the attendance primitives of the event store.
//
// TryAddAttendee is the atomicity-critical operation: the read of the current
// attendee count/membership and the write of the new membership must be a
// single indivisible operation relative to any other concurrent
// TryAddAttendee or RemoveAttendee on the same event. No two concurrent
// callers may both be admitted when only one free slot exists, and no user is
// ever admitted twice. Implementations must only return terminal outcomes;
// internal retries or locking are invisible to the caller.
type AttendeeRepository interface {
	// TryAddAttendee admits userID to the event if and only if the user is not
	// already attending and the attendee count is below capacity. It returns
	// nil on admission, ErrAlreadyAttending, ErrEventFull, or ErrNotFound when
	// the event does not exist.
	TryAddAttendee(ctx context.Context, eventID, userID string) error

	// RemoveAttendee removes userID from the event's attendee set if present.
	// Removing an absent member is a no-op success; ErrNotFound is returned
	// only when the event itself does not exist.
	RemoveAttendee(ctx context.Context, eventID, userID string) error

	// ListEventIDsByUser returns the IDs of events the user attends, newest
	// RSVP first.
	ListEventIDsByUser(ctx context.Context, userID string) ([]string, error)
}

// AttendeeService defines self-service attendance operations. The user ID is
// always the authenticated caller's own identity; there is no
// RSVP-on-behalf-of-another.
type AttendeeService interface {
	// RSVP admits the user to the event. On success it returns the fresh event
	// state including the caller's membership. Failure outcomes: ErrNotFound,
	// ErrAlreadyAttending, ErrEventFull.
	RSVP(ctx context.Context, eventID, userID string) (*Event, error)

	// CancelRSVP removes the user's spot. Cancelling twice is not an error;
	// ErrNotFound is returned only for a missing event.
	CancelRSVP(ctx context.Context, eventID, userID string) error

	// ListMyEvents returns the events the user currently attends.
	ListMyEvents(ctx context.Context, userID string) ([]*Event, error)
}
