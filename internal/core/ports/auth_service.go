package ports

import (
	"context"
	"time"

	"github.com/mindsai/account-api/internal/core/domain"
)

// LoginResult is what a successful login hands to the transport layer.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      domain.User
}

type AuthService interface {
	Login(ctx context.Context, email, secret string) (*LoginResult, error)
	Logout(ctx context.Context, session *domain.Session) error
}
