package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/savageaim/backend/internal/character"
)

// Notifier creates user-facing notifications, gated by per-user settings.
// A user who has explicitly disabled a notification type gets nothing; the
// call is a silent no-op.
type Notifier struct {
	notifRepo    Repository
	settingsRepo SettingsRepository
}

// NewNotifier creates a new Notifier.
func NewNotifier(notifRepo Repository, settingsRepo SettingsRepository) *Notifier {
	return &Notifier{
		notifRepo:    notifRepo,
		settingsRepo: settingsRepo,
	}
}

// VerifySuccess notifies a character's owner that verification succeeded.
func (n *Notifier) VerifySuccess(ctx context.Context, char *character.Character) error {
	text := fmt.Sprintf("The verification of %s has succeeded!", char.DisplayName())
	return n.send(ctx, char, TypeVerifySuccess, text)
}

// VerifyFail notifies a character's owner that verification failed, with a reason.
func (n *Notifier) VerifyFail(ctx context.Context, char *character.Character, reason string) error {
	text := fmt.Sprintf("The verification of %s has failed! Reason: %s", char.DisplayName(), reason)
	return n.send(ctx, char, TypeVerifyFail, text)
}

func (n *Notifier) send(ctx context.Context, char *character.Character, notifType, text string) error {
	settings, err := n.settingsRepo.GetByUser(ctx, char.UserID)
	if err != nil && !errors.Is(err, ErrSettingsNotFound) {
		return fmt.Errorf("loading settings: %w", err)
	}

	if !settings.Enabled(notifType) {
		slog.Debug("notification suppressed by settings",
			"userId", char.UserID, "type", notifType)
		return nil
	}

	notif := &Notification{
		UserID: char.UserID,
		Link:   fmt.Sprintf("/characters/%s/", char.ID),
		Text:   text,
		Type:   notifType,
	}

	if err := n.notifRepo.Create(ctx, notif); err != nil {
		return fmt.Errorf("creating notification: %w", err)
	}

	return nil
}
