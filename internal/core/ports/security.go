package ports

import (
	"context"
	"time"

	"github.com/mindsai/account-api/internal/core/domain"
)

// PasswordHasher hashes and verifies user secrets.
type PasswordHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, hash string) bool
}

// IssuedToken is a freshly signed session token.
type IssuedToken struct {
	Value     string
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenIssuer mints session tokens.
type TokenIssuer interface {
	Issue(id domain.UserID) (IssuedToken, error)
}

// TokenValidator resolves a session token to its identity.
type TokenValidator interface {
	Validate(token string) (domain.Session, error)
}

// SessionDenylist records sessions revoked before their natural expiry.
type SessionDenylist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
