package bis

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrJobNotFound is returned when a job code is not in the catalogue.
var ErrJobNotFound = errors.New("job not found")

// Repository provides operations on the bis_lists and jobs tables.
type Repository interface {
	CreateList(ctx context.Context, l *BISList) error
	ListByCharacter(ctx context.Context, characterID uuid.UUID) ([]BISList, error)
	GetJob(ctx context.Context, code string) (*Job, error)
	// SeedJobs inserts the fixed job catalogue if the jobs table is empty.
	// Returns the number of rows inserted.
	SeedJobs(ctx context.Context) (int, error)
}
