package notification

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrSettingsNotFound is returned when a user has no settings row. Callers
// treat this as "all notifications enabled".
var ErrSettingsNotFound = errors.New("settings not found")

// Repository provides operations on the notifications table.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Notification, error)
}

// SettingsRepository provides operations on the settings table.
type SettingsRepository interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (*Settings, error)
	Upsert(ctx context.Context, s *Settings) error
}
