package character

import (
	"time"

	"github.com/google/uuid"
)

// Character represents a row in the characters table. A character starts
// unverified; verification is one-way and happens in the background worker.
type Character struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	LodestoneID string
	Name        string
	World       string
	AvatarURL   string
	Verified    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DisplayName is the user-facing form of a character, used in notification
// texts and anywhere else the character is rendered as a string.
func (c *Character) DisplayName() string {
	return c.Name + " @ " + c.World
}
