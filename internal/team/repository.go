package team

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrTeamNotFound is returned when a team record is not found.
var ErrTeamNotFound = errors.New("team not found")

// ErrDuplicateInviteCode is returned when an insert collides on the invite
// code unique index. Callers regenerate and retry.
var ErrDuplicateInviteCode = errors.New("invite code already exists")

// Repository provides operations on the teams and team_members tables.
type Repository interface {
	Create(ctx context.Context, t *Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*Team, error)
	AddMember(ctx context.Context, m *Member) error
	// ImpactForCharacter returns one entry per team the character belongs to:
	// team name, current member count and whether the character leads it.
	// Read-only; ordering is not significant.
	ImpactForCharacter(ctx context.Context, characterID uuid.UUID) ([]ImpactEntry, error)
}
