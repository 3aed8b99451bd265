package security

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/mindsai/account-api/internal/core/domain"
)

// PasswordCost is the bcrypt work factor used for every stored secret.
const PasswordCost = 10

// MaxSecretBytes is the longest secret bcrypt accepts.
const MaxSecretBytes = 72

// BcryptHasher hashes secrets with bcrypt. The salt is generated per call and
// embedded in the returned hash, so hashing the same secret twice yields
// different strings.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: PasswordCost}
}

func (h *BcryptHasher) Hash(secret string) (string, error) {
	if len(secret) > MaxSecretBytes {
		return "", domain.ErrSecretTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether secret matches hash. A malformed hash never matches.
func (h *BcryptHasher) Verify(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
