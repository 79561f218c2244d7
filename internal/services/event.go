package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventhub/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewEventService creates an EventService with the given repository.
func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, creatorID, creatorName string, input domain.CreateEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if creatorID == "" {
		return nil, fmt.Errorf("event creator is required")
	}
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}
	if strings.TrimSpace(creatorName) == "" {
		creatorName = "Organizer"
	}

	event := domain.NewEvent(
		strings.TrimSpace(input.Title),
		input.Description,
		input.Date,
		input.Time,
		input.Location,
		input.Address,
		input.ImageURL,
		input.Capacity,
		creatorID,
		creatorName,
		time.Now(),
	)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func validateCreateInput(input domain.CreateEventInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(input.Description) == "" {
		return fmt.Errorf("%w: description is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(input.Date) == "" {
		return fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(input.Time) == "" {
		return fmt.Errorf("%w: time is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(input.Location) == "" {
		return fmt.Errorf("%w: location is required", domain.ErrInvalidInput)
	}
	if input.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be a positive integer", domain.ErrInvalidInput)
	}
	return nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID, callerID string, patch domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.CreatorID != callerID {
		return nil, domain.ErrForbidden
	}
	updated, err := s.eventRepo.Update(ctx, eventID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.CreatorID != callerID {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
