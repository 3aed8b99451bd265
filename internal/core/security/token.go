package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mindsai/account-api/internal/core/domain"
	"github.com/mindsai/account-api/internal/core/ports"
)

// TokenTTL is the lifetime of every session token and of the cookie carrying it.
const TokenTTL = 24 * time.Hour

var (
	// ErrInvalidToken is returned for any token that fails validation.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrEmptySecret is returned when the issuer is built without a signing key.
	ErrEmptySecret = errors.New("token signing secret is empty")
)

// TokenIssuer signs and validates HS256 session tokens. The signing secret is
// fixed at construction; the issuer holds no mutable state and is safe for
// concurrent use.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// TokenOption customises a TokenIssuer.
type TokenOption func(*TokenIssuer)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) TokenOption {
	return func(i *TokenIssuer) { i.now = now }
}

func NewTokenIssuer(secret []byte, opts ...TokenOption) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	i := &TokenIssuer{
		secret: append([]byte(nil), secret...),
		ttl:    TokenTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}

	i.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(i.now),
	)
	return i, nil
}

// Issue mints a token for id that expires TokenTTL from now. Claims carry
// whole seconds, so now is truncated first and exp-iat is exactly TokenTTL.
func (i *TokenIssuer) Issue(id domain.UserID) (ports.IssuedToken, error) {
	now := i.now().Truncate(time.Second)
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   strconv.FormatInt(int64(id), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return ports.IssuedToken{}, fmt.Errorf("sign token: %w", err)
	}

	return ports.IssuedToken{
		Value:     signed,
		ID:        claims.ID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Validate verifies signature and expiry and returns the session the token
// carries. Expiry is exact: a token is rejected once now reaches its exp.
func (i *TokenIssuer) Validate(token string) (domain.Session, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := i.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	})
	if err != nil || !tkn.Valid {
		return domain.Session{}, ErrInvalidToken
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return domain.Session{}, ErrInvalidToken
	}

	return domain.Session{
		UserID:    domain.UserID(id),
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
