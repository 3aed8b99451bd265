package service

import (
	"context"
	"sort"

	"github.com/mindsai/account-api/internal/core/domain"
)

// stubUserRepo is an in-memory UserRepository that mirrors the uniqueness and
// not-found behaviour of the real stores.
type stubUserRepo struct {
	users     map[domain.UserID]*domain.Credential
	nextID    domain.UserID
	createErr error
	findErr   error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[domain.UserID]*domain.Credential), nextID: 1}
}

func cloneCred(c *domain.Credential) *domain.Credential {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, cred *domain.Credential) (*domain.Credential, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Email == cred.Email {
			return nil, domain.ErrUserExists
		}
	}
	c := cloneCred(cred)
	c.ID = r.nextID
	r.nextID++
	r.users[c.ID] = c
	return cloneCred(c), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id domain.UserID) (*domain.Credential, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneCred(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.Credential, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneCred(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u.User)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id domain.UserID, patch domain.UserPatch) (*domain.Credential, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	u.UpdatedAt = patch.UpdatedAt
	return cloneCred(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id domain.UserID) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}
