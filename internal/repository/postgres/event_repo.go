package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"eventhub/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, date, time, location, address, image_url, capacity, creator_id, creator_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Date, e.Time, e.Location, e.Address,
		e.ImageURL, e.Capacity, e.CreatorID, e.CreatorName, e.CreatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, title, description, date, time, location, address, image_url, capacity, creator_id, creator_name, created_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.Description, &e.Date, &e.Time, &e.Location, &e.Address,
		&e.ImageURL, &e.Capacity, &e.CreatorID, &e.CreatorName, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	attendees, err := r.attendeesFor(ctx, []string{e.ID})
	if err != nil {
		return nil, err
	}
	e.Attendees = attendees[e.ID]
	if e.Attendees == nil {
		e.Attendees = []string{}
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT id, title, description, date, time, location, address, image_url, capacity, creator_id, creator_name, created_at
		FROM events
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	ids := make([]string, 0)
	for rows.Next() {
		e := &domain.Event{}
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.Date, &e.Time, &e.Location, &e.Address,
			&e.ImageURL, &e.Capacity, &e.CreatorID, &e.CreatorName, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.Attendees = []string{}
		events = append(events, e)
		ids = append(ids, e.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return events, nil
	}

	attendees, err := r.attendeesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range events {
		if list, ok := attendees[e.ID]; ok {
			e.Attendees = list
		}
	}
	return events, nil
}

// attendeesFor loads the attendee sets for the given event IDs in one query.
func (r *eventRepository) attendeesFor(ctx context.Context, eventIDs []string) (map[string][]string, error) {
	query := `
		SELECT event_id, user_id
		FROM event_attendees
		WHERE event_id = ANY($1)
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(eventIDs))
	if err != nil {
		return nil, fmt.Errorf("load attendees: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var eventID, userID string
		if err := rows.Scan(&eventID, &userID); err != nil {
			return nil, err
		}
		out[eventID] = append(out[eventID], userID)
	}
	return out, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id string, patch domain.EventUpdate) (*domain.Event, error) {
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}

	setClauses := []string{}
	args := []interface{}{}
	n := 1
	add := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Date != nil {
		add("date", *patch.Date)
	}
	if patch.Time != nil {
		add("time", *patch.Time)
	}
	if patch.Location != nil {
		add("location", *patch.Location)
	}
	if patch.Address != nil {
		add("address", *patch.Address)
	}
	if patch.ImageURL != nil {
		add("image_url", *patch.ImageURL)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING id, title, description, date, time, location, address, image_url, capacity, creator_id, creator_name, created_at
	`, strings.Join(setClauses, ", "), n)

	e := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&e.ID, &e.Title, &e.Description, &e.Date, &e.Time, &e.Location, &e.Address,
		&e.ImageURL, &e.Capacity, &e.CreatorID, &e.CreatorName, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	attendees, err := r.attendeesFor(ctx, []string{e.ID})
	if err != nil {
		return nil, err
	}
	e.Attendees = attendees[e.ID]
	if e.Attendees == nil {
		e.Attendees = []string{}
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// RSVPs go with the event; no orphan rows remain.
	if _, err := tx.ExecContext(ctx, `DELETE FROM event_attendees WHERE event_id = $1`, id); err != nil {
		return fmt.Errorf("delete attendees: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}
