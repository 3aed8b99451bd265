package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindsai/account-api/internal/core/domain"
)

var userColumns = []string{"id", "email", "name", "password_hash", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewUserRepository(db), mock
}

func TestCreate_AssignsID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users.*RETURNING\s+id$`).
		WithArgs("a@x.com", "N", "hash", now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	in := &domain.Credential{
		User:         domain.User{Email: "a@x.com", Name: "N", CreatedAt: now, UpdatedAt: now},
		PasswordHash: "hash",
	}
	got, err := repo.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, domain.UserID(1), got.ID)
	assert.Equal(t, "a@x.com", got.Email)
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_unique"})

	_, err := repo.Create(context.Background(), &domain.Credential{User: domain.User{Email: "a@x.com"}})
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &domain.Credential{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	assert.NotErrorIs(t, err, domain.ErrUserExists)
}

func TestFindByEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`(?s)^SELECT.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1$`).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(int64(3), "a@x.com", "N", "hash", now, now))

	got, err := repo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, domain.UserID(3), got.ID)
	assert.Equal(t, "hash", got.PasswordHash)
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT.*WHERE\s+id\s*=\s*\$1$`).
		WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`(?s)^SELECT.*FROM\s+users\s+ORDER\s+BY\s+id$`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "created_at", "updated_at"}).
			AddRow(int64(1), "a@x.com", "A", now, now).
			AddRow(int64(2), "b@x.com", "B", now, now))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.UserID(2), got[1].ID)
}

func TestList_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT.*FROM\s+users`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "created_at", "updated_at"}))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()
	name := "New"

	mock.ExpectQuery(`(?s)^UPDATE\s+users\s+SET.*RETURNING`).
		WithArgs(int64(1), sqlmock.AnyArg(), "New", sqlmock.AnyArg(), now).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(int64(1), "a@x.com", "New", "hash", now, now))

	got, err := repo.Update(context.Background(), 1, domain.UserPatch{Name: &name, UpdatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^UPDATE\s+users`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), 5, domain.UserPatch{UpdatedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdate_EmailTaken(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	email := "b@x.com"

	mock.ExpectQuery(`(?s)^UPDATE\s+users`).WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Update(context.Background(), 1, domain.UserPatch{Email: &email, UpdatedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`^DELETE\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`^DELETE\s+FROM\s+users`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), 1))
	assert.ErrorIs(t, repo.Delete(context.Background(), 1), domain.ErrUserNotFound)
}
