package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"eventhub/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestAttendeeRepository_TryAddAttendee(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		eventID string
		userID  string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name:    "admitted",
			eventID: "ev-1",
			userID:  "user-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT capacity FROM events WHERE id = \$1 FOR UPDATE`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(2))
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("ev-1", "user-1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectQuery(`SELECT COUNT`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
				mock.ExpectExec(`INSERT INTO event_attendees`).
					WithArgs("ev-1", "user-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			wantErr: nil,
		},
		{
			name:    "event not found",
			eventID: "ev-missing",
			userID:  "user-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT capacity FROM events WHERE id = \$1 FOR UPDATE`).
					WithArgs("ev-missing").
					WillReturnError(sql.ErrNoRows)
				mock.ExpectRollback()
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "already attending",
			eventID: "ev-1",
			userID:  "user-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT capacity FROM events WHERE id = \$1 FOR UPDATE`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(5))
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("ev-1", "user-1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
				mock.ExpectRollback()
			},
			wantErr: domain.ErrAlreadyAttending,
		},
		{
			name:    "event full",
			eventID: "ev-1",
			userID:  "user-2",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT capacity FROM events WHERE id = \$1 FOR UPDATE`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(2))
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("ev-1", "user-2").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectQuery(`SELECT COUNT`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
				mock.ExpectRollback()
			},
			wantErr: domain.ErrEventFull,
		},
		{
			name:    "insert failure rolls back",
			eventID: "ev-1",
			userID:  "user-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT capacity FROM events WHERE id = \$1 FOR UPDATE`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(2))
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("ev-1", "user-1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectQuery(`SELECT COUNT`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				mock.ExpectExec(`INSERT INTO event_attendees`).
					WithArgs("ev-1", "user-1").
					WillReturnError(sql.ErrConnDone)
				mock.ExpectRollback()
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewAttendeeRepository(db)
			err = repo.TryAddAttendee(ctx, tt.eventID, tt.userID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAttendeeRepository_RemoveAttendee(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		eventID string
		userID  string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name:    "removed",
			eventID: "ev-1",
			userID:  "user-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM event_attendees WHERE event_id = \$1 AND user_id = \$2`).
					WithArgs("ev-1", "user-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantErr: nil,
		},
		{
			name:    "not attending is a no-op",
			eventID: "ev-1",
			userID:  "user-2",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM event_attendees WHERE event_id = \$1 AND user_id = \$2`).
					WithArgs("ev-1", "user-2").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
			},
			wantErr: nil,
		},
		{
			name:    "event not found",
			eventID: "ev-missing",
			userID:  "user-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM event_attendees WHERE event_id = \$1 AND user_id = \$2`).
					WithArgs("ev-missing", "user-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("ev-missing").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "db error",
			eventID: "ev-1",
			userID:  "user-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM event_attendees WHERE event_id = \$1 AND user_id = \$2`).
					WithArgs("ev-1", "user-1").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewAttendeeRepository(db)
			err = repo.RemoveAttendee(ctx, tt.eventID, tt.userID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAttendeeRepository_ListEventIDsByUser(t *testing.T) {
	ctx := context.Background()

	t.Run("newest first", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT event_id FROM event_attendees WHERE user_id = \$1 ORDER BY created_at DESC`).
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows([]string{"event_id"}).AddRow("ev-2").AddRow("ev-1"))

		repo := NewAttendeeRepository(db)
		ids, err := repo.ListEventIDsByUser(ctx, "user-1")
		require.NoError(t, err)
		require.Equal(t, []string{"ev-2", "ev-1"}, ids)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rsvps returns empty slice", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT event_id FROM event_attendees WHERE user_id = \$1 ORDER BY created_at DESC`).
			WithArgs("user-2").
			WillReturnRows(sqlmock.NewRows([]string{"event_id"}))

		repo := NewAttendeeRepository(db)
		ids, err := repo.ListEventIDsByUser(ctx, "user-2")
		require.NoError(t, err)
		require.Empty(t, ids)
		require.NotNil(t, ids)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT event_id FROM event_attendees`).
			WithArgs("user-1").
			WillReturnError(sql.ErrConnDone)

		repo := NewAttendeeRepository(db)
		ids, err := repo.ListEventIDsByUser(ctx, "user-1")
		require.Error(t, err)
		require.True(t, errors.Is(err, sql.ErrConnDone))
		require.Nil(t, ids)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
