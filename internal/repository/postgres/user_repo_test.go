package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventhub/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		user    *domain.User
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "success",
			user: &domain.User{
				Email:        "alice@example.com",
				Name:         "Alice",
				PasswordHash: "hash",
				CreatedAt:    now,
				UpdatedAt:    now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("alice@example.com", "Alice", "hash", now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("user-1"))
			},
			wantID: "user-1",
		},
		{
			name: "duplicate email",
			user: &domain.User{
				Email:        "alice@example.com",
				Name:         "Alice",
				PasswordHash: "hash",
				CreatedAt:    now,
				UpdatedAt:    now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("alice@example.com", "Alice", "hash", now, now).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrDuplicateEmail,
		},
		{
			name: "db error",
			user: &domain.User{
				Email:     "alice@example.com",
				CreatedAt: now,
				UpdatedAt: now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
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
			repo := NewUserRepository(db)
			err = repo.Create(ctx, tt.user)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.user.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, name, password_hash, created_at, updated_at`).
			WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at", "updated_at"}).
				AddRow("user-1", "alice@example.com", "Alice", "hash", now, now))

		repo := NewUserRepository(db)
		got, err := repo.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, "user-1", got.ID)
		require.Equal(t, "Alice", got.Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, name, password_hash, created_at, updated_at`).
			WithArgs("missing@example.com").
			WillReturnError(sql.ErrNoRows)

		repo := NewUserRepository(db)
		got, err := repo.GetByEmail(ctx, "missing@example.com")
		require.ErrorIs(t, err, domain.ErrUserNotFound)
		require.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, name, password_hash, created_at, updated_at`).
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at", "updated_at"}).
				AddRow("user-1", "alice@example.com", "Alice", "hash", now, now))

		repo := NewUserRepository(db)
		got, err := repo.GetByID(ctx, "user-1")
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", got.Email)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, name, password_hash, created_at, updated_at`).
			WithArgs("user-missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewUserRepository(db)
		got, err := repo.GetByID(ctx, "user-missing")
		require.ErrorIs(t, err, domain.ErrUserNotFound)
		require.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
