package auth

import (
	"time"

	"github.com/google/uuid"
)

// User represents a row in the users table. Characters, notifications and
// settings all hang off a user.
type User struct {
	ID           uuid.UUID
	Name         string
	IsSuperuser  bool
	ApiKeyPrefix string
	ApiKeyHash   string
	CreatedAt    time.Time
	RevokedAt    *time.Time
}

// Identity is stored in the request context after authentication.
type Identity struct {
	UserID      uuid.UUID
	UserName    string
	IsSuperuser bool
}
