package ports

import (
	"context"

	"github.com/mindsai/account-api/internal/core/domain"
)

// SignupInput carries the fields required to create an account.
type SignupInput struct {
	Email  string
	Secret string
	Name   string
}

// UpdateUserInput carries the optional fields an owner may change.
type UpdateUserInput struct {
	Email  *string
	Secret *string
	Name   *string
}

type UserService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	Get(ctx context.Context, id domain.UserID) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id domain.UserID, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id domain.UserID) error
}
