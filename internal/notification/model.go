package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification types. Settings keys match these values.
const (
	TypeVerifySuccess = "verify_success"
	TypeVerifyFail    = "verify_fail"
)

// Notification represents a row in the notifications table. Rows are only
// ever written by the Notifier, never by request handlers.
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Link      string
	Text      string
	Type      string
	Read      bool
	CreatedAt time.Time
}

// Settings holds a user's preferences. Notifications maps a notification
// type to whether it is enabled; an absent key means enabled (default-on).
type Settings struct {
	UserID        uuid.UUID
	Theme         string
	Notifications map[string]bool
}

// Enabled reports whether the user receives notifications of the given type.
func (s *Settings) Enabled(notifType string) bool {
	if s == nil || s.Notifications == nil {
		return true
	}
	enabled, ok := s.Notifications[notifType]
	if !ok {
		return true
	}
	return enabled
}
