package ports

import (
	"context"

	"github.com/mindsai/account-api/internal/core/domain"
)

// UserRepository is the credential store.
//
// Implementations must enforce email uniqueness atomically and report a
// violation as domain.ErrUserExists, and report a missing identity as
// domain.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, cred *domain.Credential) (*domain.Credential, error)
	FindByID(ctx context.Context, id domain.UserID) (*domain.Credential, error)
	FindByEmail(ctx context.Context, email string) (*domain.Credential, error)
	// List returns every public profile ordered by id.
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id domain.UserID, patch domain.UserPatch) (*domain.Credential, error)
	Delete(ctx context.Context, id domain.UserID) error
}
