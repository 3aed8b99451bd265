package domain

import "time"

// UserID is the store-assigned identity of a user. It never changes once assigned.
type UserID int64

// User is the public profile of an account. It carries no credential material
// and is the only user shape that leaves the service layer.
type User struct {
	ID        UserID    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Credential is a User plus its stored secret hash. It only travels between
// the services and the UserRepository.
type Credential struct {
	User
	PasswordHash string `json:"-"`
}

// UserPatch lists the fields an owner may change. Nil fields are left as-is.
type UserPatch struct {
	Email        *string
	Name         *string
	PasswordHash *string
	UpdatedAt    time.Time
}

// Session is the identity resolved from a valid session token.
type Session struct {
	UserID    UserID
	TokenID   string
	ExpiresAt time.Time
}
