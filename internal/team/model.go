package team

import (
	"time"

	"github.com/google/uuid"
)

// Team represents a row in the teams table.
type Team struct {
	ID         uuid.UUID
	Name       string
	InviteCode string
	TierName   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Member joins a character to a team. Each member raids on one of the
// character's BIS lists; at most the team cares which list, not its contents.
type Member struct {
	ID          uuid.UUID
	TeamID      uuid.UUID
	CharacterID uuid.UUID
	BISListID   uuid.UUID
	Lead        bool
}

// ImpactEntry is one line of the character-delete impact report: what happens
// to a single team if the character is removed from it.
type ImpactEntry struct {
	Name    string `json:"name"`
	Members int    `json:"members"`
	Lead    bool   `json:"lead"`
}
