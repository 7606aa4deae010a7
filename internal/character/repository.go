package character

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrCharacterNotFound is returned when a character record is not found.
// Lookups scoped to a user return it for foreign-owned characters too, so
// callers cannot distinguish "not yours" from "does not exist".
var ErrCharacterNotFound = errors.New("character not found")

// ErrVerifiedDuplicate is returned when creating a character whose lodestone
// ID already belongs to a verified character. Unverified duplicates are fine.
var ErrVerifiedDuplicate = errors.New("a verified character with this lodestone ID already exists")

// ErrAlreadyVerified is returned by MarkVerified when the flag was already set.
var ErrAlreadyVerified = errors.New("character is already verified")

// Repository provides operations on the characters table.
type Repository interface {
	Create(ctx context.Context, c *Character) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Character, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Character, error)
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*Character, error)
	MarkVerified(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
