package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventhub/internal/domain"
)

type attendeeRepository struct {
	DB *sql.DB
}

func NewAttendeeRepository(db *sql.DB) domain.AttendeeRepository {
	return &attendeeRepository{
		DB: db,
	}
}

// TryAddAttendee folds the duplicate check, the capacity check, and the
// membership write into one transaction serialized per event.
//
// SELECT ... FOR UPDATE takes a row-level exclusive lock on the event row, so
// concurrent admissions for the same event execute one at a time while
// admissions for different events proceed in parallel. Any split of these
// steps across transactions reopens the window where two callers both observe
// a free slot and both write.
func (r *attendeeRepository) TryAddAttendee(ctx context.Context, eventID, userID string) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var capacity int
	err = tx.QueryRowContext(ctx,
		`SELECT capacity FROM events WHERE id = $1 FOR UPDATE`,
		eventID,
	).Scan(&capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock event row: %w", err)
	}

	var attending bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM event_attendees WHERE event_id = $1 AND user_id = $2)`,
		eventID, userID,
	).Scan(&attending)
	if err != nil {
		return fmt.Errorf("check membership: %w", err)
	}
	if attending {
		return domain.ErrAlreadyAttending
	}

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM event_attendees WHERE event_id = $1`,
		eventID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("count attendees: %w", err)
	}
	if count >= capacity {
		return domain.ErrEventFull
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO event_attendees (event_id, user_id, created_at) VALUES ($1, $2, NOW())`,
		eventID, userID,
	)
	if err != nil {
		return fmt.Errorf("insert attendee: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *attendeeRepository) RemoveAttendee(ctx context.Context, eventID, userID string) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM event_attendees WHERE event_id = $1 AND user_id = $2`,
		eventID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete attendee: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows > 0 {
		return nil
	}

	// Nothing deleted: either the user was not attending (a no-op success) or
	// the event does not exist at all.
	var exists bool
	err = r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`,
		eventID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check event: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return nil
}

func (r *attendeeRepository) ListEventIDsByUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT event_id FROM event_attendees WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
