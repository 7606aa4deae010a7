package bis

import (
	"time"

	"github.com/google/uuid"
)

// Job is one entry of the fixed job catalogue, keyed by its three-letter code.
type Job struct {
	Code     string
	Name     string
	Role     string // "tank", "heal", "dps"
	Ordering int
}

// BISList is a character's best-in-slot plan for one job. Individual gear
// slot columns are deliberately not modelled here; the list's identity and
// job are all the character and team views consume.
type BISList struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	JobCode   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
