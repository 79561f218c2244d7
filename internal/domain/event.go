package domain

import (
	"context"
	"time"
)

// Event represents a hostable activity with a bounded attendee capacity.
// Attendees holds the user IDs currently admitted; its size never exceeds
// Capacity in any committed state.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Time        string    `json:"time"` // HH:MM
	Location    string    `json:"location"`
	Address     string    `json:"address"`
	ImageURL    string    `json:"image_url"`
	Capacity    int       `json:"capacity"`
	CreatorID   string    `json:"creator_id"`
	CreatorName string    `json:"creator_name"`
	Attendees   []string  `json:"attendees"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewEvent returns a new Event owned by creatorID. ID is set by the repository
// on create; the attendee set starts empty.
func NewEvent(title, description, date, timeOfDay, location, address, imageURL string, capacity int, creatorID, creatorName string, createdAt time.Time) *Event {
	return &Event{
		Title:       title,
		Description: description,
		Date:        date,
		Time:        timeOfDay,
		Location:    location,
		Address:     address,
		ImageURL:    imageURL,
		Capacity:    capacity,
		CreatorID:   creatorID,
		CreatorName: creatorName,
		Attendees:   []string{},
		CreatedAt:   createdAt,
	}
}

// IsAttending reports whether userID is in the attendee set.
func (e *Event) IsAttending(userID string) bool {
	for _, id := range e.Attendees {
		if id == userID {
			return true
		}
	}
	return false
}

// EventUpdate is the allow-list of mutable descriptive fields. Nil means
// unchanged. CreatorID, Capacity, Attendees, and CreatedAt are structurally
// excluded: a patch has no way to express them.
type EventUpdate struct {
	Title       *string
	Description *string
	Date        *string
	Time        *string
	Location    *string
	Address     *string
	ImageURL    *string
}

// Empty reports whether the patch changes nothing.
func (u EventUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Date == nil && u.Time == nil &&
		u.Location == nil && u.Address == nil && u.ImageURL == nil
}

// EventRepository defines storage operations for events.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// List returns all events, newest first (created_at DESC, id DESC as a
	// stable tiebreak), each with its attendee set populated.
	List(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, id string, patch EventUpdate) (*Event, error)
	// Delete removes the event and all RSVPs it held.
	Delete(ctx context.Context, id string) error
}

// EventService defines organizer- and visitor-facing event operations.
// Creator-only operations take the caller's authenticated user ID and return
// ErrForbidden when the caller does not own the event.
type EventService interface {
	CreateEvent(ctx context.Context, creatorID, creatorName string, input CreateEventInput) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	UpdateEvent(ctx context.Context, eventID, callerID string, patch EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, eventID, callerID string) error
}

// CreateEventInput carries the descriptive payload for a new event. The
// creator's identity is never part of the input; it comes from the
// authenticated caller.
type CreateEventInput struct {
	Title       string
	Description string
	Date        string
	Time        string
	Location    string
	Address     string
	ImageURL    string
	Capacity    int
}
