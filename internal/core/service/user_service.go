package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/mindsai/account-api/internal/core/domain"
	"github.com/mindsai/account-api/internal/core/ports"
)

// UserService implements signup and the owner-scoped profile operations.
// Ownership itself is enforced by the HTTP guard chain before these run.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	logger zerolog.Logger
	now    func() time.Time
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, logger: logger, now: time.Now}
}

// Signup creates an account. The email check is repeated by the store's
// unique constraint, so a concurrent signup that loses the race still gets
// domain.ErrUserExists.
func (s *UserService) Signup(ctx context.Context, input ports.SignupInput) (*domain.User, error) {
	email := normalizeEmail(input.Email)

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Secret)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.Credential{
		User: domain.User{
			Email:     email,
			Name:      input.Name,
			CreatedAt: now,
			UpdatedAt: now,
		},
		PasswordHash: hash,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrUserExists) {
			s.logger.Error().Err(err).Msg("failed to create user")
		}
		return nil, err
	}

	s.logger.Info().Int64("user_id", int64(created.ID)).Msg("user signed up")

	u := created.User
	return &u, nil
}

func (s *UserService) Get(ctx context.Context, id domain.UserID) (*domain.User, error) {
	cred, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u := cred.User
	return &u, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// Update applies the non-nil fields of input. A new secret is re-hashed; a new
// email that belongs to someone else yields domain.ErrUserExists.
func (s *UserService) Update(ctx context.Context, id domain.UserID, input ports.UpdateUserInput) (*domain.User, error) {
	patch := domain.UserPatch{Name: input.Name, UpdatedAt: s.now().UTC()}

	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		existing, err := s.repo.FindByEmail(ctx, email)
		switch {
		case err == nil && existing.ID != id:
			return nil, domain.ErrUserExists
		case err != nil && !errors.Is(err, domain.ErrUserNotFound):
			return nil, err
		}
		patch.Email = &email
	}

	if input.Secret != nil {
		hash, err := s.hasher.Hash(*input.Secret)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", int64(id)).Msg("user updated")

	u := updated.User
	return &u, nil
}

func (s *UserService) Delete(ctx context.Context, id domain.UserID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", int64(id)).Msg("user deleted")
	return nil
}
