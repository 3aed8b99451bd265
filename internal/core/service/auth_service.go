package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mindsai/account-api/internal/core/domain"
	"github.com/mindsai/account-api/internal/core/ports"
)

// AuthService implements login and logout.
type AuthService struct {
	repo      ports.UserRepository
	hasher    ports.PasswordHasher
	issuer    ports.TokenIssuer
	denylist  ports.SessionDenylist
	logger    zerolog.Logger
	dummyHash string
}

// NewAuthService wires the login flow. denylist may be nil, in which case
// logout leaves issued tokens valid until they expire.
func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, denylist ports.SessionDenylist, logger zerolog.Logger) (*AuthService, error) {
	// compared against when the email is unknown so both failure paths pay for a bcrypt run
	dummy, err := hasher.Hash("account-api-dummy-secret")
	if err != nil {
		return nil, err
	}
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		issuer:    issuer,
		denylist:  denylist,
		logger:    logger,
		dummyHash: dummy,
	}, nil
}

// Login verifies the credentials and issues a session token. An unknown email
// and a wrong secret both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, secret string) (*ports.LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || secret == "" {
		return nil, domain.ErrInvalidCredentials
	}

	cred, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(secret, s.dummyHash)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(secret, cred.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	tok, err := s.issuer.Issue(cred.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", int64(cred.ID)).Msg("user logged in")

	return &ports.LoginResult{
		Token:     tok.Value,
		ExpiresAt: tok.ExpiresAt,
		User:      cred.User,
	}, nil
}

// Logout revokes the caller's session when a denylist is configured. Without
// one, logging out is purely a matter of clearing the client's cookie.
func (s *AuthService) Logout(ctx context.Context, session *domain.Session) error {
	if s.denylist == nil || session == nil || session.TokenID == "" {
		return nil
	}
	if err := s.denylist.Revoke(ctx, session.TokenID, session.ExpiresAt); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", int64(session.UserID)).Msg("session revoked")
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
