// Package memory holds in-process adapters used for local development and
// end-to-end tests. Nothing here survives a restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mindsai/account-api/internal/core/domain"
)

// UserRepository is a mutex-guarded credential store with sequential ids.
type UserRepository struct {
	mu      sync.RWMutex
	nextID  domain.UserID
	byID    map[domain.UserID]domain.Credential
	byEmail map[string]domain.UserID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[domain.UserID]domain.Credential),
		byEmail: make(map[string]domain.UserID),
	}
}

func (r *UserRepository) Create(_ context.Context, cred *domain.Credential) (*domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[cred.Email]; taken {
		return nil, domain.ErrUserExists
	}

	r.nextID++
	stored := *cred
	stored.ID = r.nextID
	r.byID[stored.ID] = stored
	r.byEmail[stored.Email] = stored.ID

	return &stored, nil
}

func (r *UserRepository) FindByID(_ context.Context, id domain.UserID) (*domain.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cred, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &cred, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cred := r.byID[id]
	return &cred, nil
}

func (r *UserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.byID))
	for _, cred := range r.byID {
		users = append(users, cred.User)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *UserRepository) Update(_ context.Context, id domain.UserID, patch domain.UserPatch) (*domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cred, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	if patch.Email != nil && *patch.Email != cred.Email {
		if _, taken := r.byEmail[*patch.Email]; taken {
			return nil, domain.ErrUserExists
		}
		delete(r.byEmail, cred.Email)
		cred.Email = *patch.Email
		r.byEmail[cred.Email] = id
	}
	if patch.Name != nil {
		cred.Name = *patch.Name
	}
	if patch.PasswordHash != nil {
		cred.PasswordHash = *patch.PasswordHash
	}
	cred.UpdatedAt = patch.UpdatedAt

	r.byID[id] = cred
	return &cred, nil
}

func (r *UserRepository) Delete(_ context.Context, id domain.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cred, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	delete(r.byEmail, cred.Email)
	return nil
}
