package domain

import "errors"

var (
	// ErrUserExists is returned when an email is already registered.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound is returned when an identity no longer exists.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials covers both an unknown email and a wrong secret.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated covers a missing, malformed, expired or revoked session token.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden is returned when an authenticated caller targets another user's resource.
	ErrForbidden = errors.New("access forbidden")
	// ErrSecretTooLong is returned for secrets longer than the hasher accepts.
	ErrSecretTooLong = errors.New("secret must be at most 72 bytes")
)
