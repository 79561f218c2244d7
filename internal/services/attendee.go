package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventhub/internal/domain"
)

type attendeeService struct {
	eventRepo      domain.EventRepository
	attendeeRepo   domain.AttendeeRepository
	contextTimeout time.Duration
}

// NewAttendeeService creates an AttendeeService with the given repositories.
func NewAttendeeService(eventRepo domain.EventRepository, attendeeRepo domain.AttendeeRepository, timeout time.Duration) domain.AttendeeService {
	return &attendeeService{
		eventRepo:      eventRepo,
		attendeeRepo:   attendeeRepo,
		contextTimeout: timeout,
	}
}

// RSVP delegates the admission decision to the store's single atomic
// primitive. There is deliberately no pre-check against a separately fetched
// snapshot: two store round-trips would reopen the window where concurrent
// callers both observe a free slot and both write.
func (s *attendeeService) RSVP(ctx context.Context, eventID, userID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.attendeeRepo.TryAddAttendee(ctx, eventID, userID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, domain.ErrNotFound
		case errors.Is(err, domain.ErrAlreadyAttending):
			return nil, domain.ErrAlreadyAttending
		case errors.Is(err, domain.ErrEventFull):
			return nil, domain.ErrEventFull
		}
		return nil, fmt.Errorf("add attendee: %w", err)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Deleted between admission and read-back; the admission went with it.
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *attendeeService) CancelRSVP(ctx context.Context, eventID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.attendeeRepo.RemoveAttendee(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("remove attendee: %w", err)
	}
	return nil
}

func (s *attendeeService) ListMyEvents(ctx context.Context, userID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ids, err := s.attendeeRepo.ListEventIDsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list rsvp event ids: %w", err)
	}

	events := make([]*domain.Event, 0, len(ids))
	for _, id := range ids {
		event, err := s.eventRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Event deleted concurrently; skip.
				continue
			}
			return nil, fmt.Errorf("get event for rsvp: %w", err)
		}
		events = append(events, event)
	}
	return events, nil
}
