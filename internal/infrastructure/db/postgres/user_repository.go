package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mindsai/account-api/internal/core/domain"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// UserRepository implements ports.UserRepository on top of database/sql.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, cred *domain.Credential) (*domain.Credential, error) {
	query := `INSERT INTO users (email, name, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		cred.Email, cred.Name, cred.PasswordHash, cred.CreatedAt, cred.UpdatedAt).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	out := *cred
	out.ID = domain.UserID(id)
	return &out, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id domain.UserID) (*domain.Credential, error) {
	query := `SELECT id, email, name, password_hash, created_at, updated_at
		FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, int64(id)))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	query := `SELECT id, email, name, password_hash, created_at, updated_at
		FROM users WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT id, email, name, created_at, updated_at
		FROM users ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var (
			u  domain.User
			id int64
		)
		if err := rows.Scan(&id, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.ID = domain.UserID(id)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Update applies the non-nil fields of patch. COALESCE keeps the stored value
// for fields the caller left out.
func (r *UserRepository) Update(ctx context.Context, id domain.UserID, patch domain.UserPatch) (*domain.Credential, error) {
	query := `UPDATE users SET
		email = COALESCE($2, email),
		name = COALESCE($3, name),
		password_hash = COALESCE($4, password_hash),
		updated_at = $5
		WHERE id = $1
		RETURNING id, email, name, password_hash, created_at, updated_at`

	cred, err := r.scanOne(r.db.QueryRowContext(ctx, query,
		int64(id), nullString(patch.Email), nullString(patch.Name), nullString(patch.PasswordHash), patch.UpdatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}
	return cred, nil
}

func (r *UserRepository) Delete(ctx context.Context, id domain.UserID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, int64(id))
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) scanOne(row *sql.Row) (*domain.Credential, error) {
	var (
		cred domain.Credential
		id   int64
	)
	err := row.Scan(&id, &cred.Email, &cred.Name, &cred.PasswordHash, &cred.CreatedAt, &cred.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		if isUniqueViolation(err) {
			return nil, err
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	cred.ID = domain.UserID(id)
	return &cred, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
