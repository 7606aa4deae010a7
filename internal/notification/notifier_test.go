package notification_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savageaim/backend/internal/character"
	"github.com/savageaim/backend/internal/notification"
)

// --- In-memory repositories ---

type memNotifRepo struct {
	notifs []notification.Notification
}

func (m *memNotifRepo) Create(_ context.Context, n *notification.Notification) error {
	n.ID = uuid.New()
	n.Read = false
	m.notifs = append(m.notifs, *n)
	return nil
}

func (m *memNotifRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]notification.Notification, error) {
	out := []notification.Notification{}
	for _, n := range m.notifs {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

type memSettingsRepo struct {
	settings map[uuid.UUID]*notification.Settings
}

func (m *memSettingsRepo) GetByUser(_ context.Context, userID uuid.UUID) (*notification.Settings, error) {
	if s, ok := m.settings[userID]; ok {
		return s, nil
	}
	return nil, notification.ErrSettingsNotFound
}

func (m *memSettingsRepo) Upsert(_ context.Context, s *notification.Settings) error {
	if m.settings == nil {
		m.settings = map[uuid.UUID]*notification.Settings{}
	}
	m.settings[s.UserID] = s
	return nil
}

func sampleChar() *character.Character {
	return &character.Character{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		LodestoneID: "1234567890",
		Name:        "Char 1",
		World:       "Lich",
		AvatarURL:   "https://img.savageaim.com/abcde",
	}
}

func TestVerifySuccess_CreatesUnreadNotification(t *testing.T) {
	t.Parallel()

	notifRepo := &memNotifRepo{}
	settingsRepo := &memSettingsRepo{}
	n := notification.NewNotifier(notifRepo, settingsRepo)

	char := sampleChar()
	require.NoError(t, n.VerifySuccess(context.Background(), char))

	require.Len(t, notifRepo.notifs, 1)
	notif := notifRepo.notifs[0]
	assert.Equal(t, char.UserID, notif.UserID)
	assert.Equal(t, fmt.Sprintf("/characters/%s/", char.ID), notif.Link)
	assert.Equal(t, "The verification of Char 1 @ Lich has succeeded!", notif.Text)
	assert.Equal(t, "verify_success", notif.Type)
	assert.False(t, notif.Read)
}

func TestVerifyFail_IncludesReason(t *testing.T) {
	t.Parallel()

	notifRepo := &memNotifRepo{}
	settingsRepo := &memSettingsRepo{}
	n := notification.NewNotifier(notifRepo, settingsRepo)

	char := sampleChar()
	require.NoError(t, n.VerifyFail(context.Background(), char, "Already Verified!"))

	require.Len(t, notifRepo.notifs, 1)
	notif := notifRepo.notifs[0]
	assert.Equal(t, "The verification of Char 1 @ Lich has failed! Reason: Already Verified!", notif.Text)
	assert.Equal(t, "verify_fail", notif.Type)
	assert.False(t, notif.Read)
}

func TestVerifyFail_SuppressedWhenDisabled(t *testing.T) {
	t.Parallel()

	notifRepo := &memNotifRepo{}
	settingsRepo := &memSettingsRepo{}
	n := notification.NewNotifier(notifRepo, settingsRepo)

	char := sampleChar()
	require.NoError(t, n.VerifyFail(context.Background(), char, "Already Verified!"))
	require.Len(t, notifRepo.notifs, 1)

	// Disable the type and retry; no second notification may appear.
	require.NoError(t, settingsRepo.Upsert(context.Background(), &notification.Settings{
		UserID:        char.UserID,
		Theme:         "beta",
		Notifications: map[string]bool{"verify_fail": false},
	}))

	require.NoError(t, n.VerifyFail(context.Background(), char, "Already Verified!"))
	assert.Len(t, notifRepo.notifs, 1)
}

func TestNotifier_DisabledTypeDoesNotSuppressOthers(t *testing.T) {
	t.Parallel()

	notifRepo := &memNotifRepo{}
	settingsRepo := &memSettingsRepo{}
	n := notification.NewNotifier(notifRepo, settingsRepo)

	char := sampleChar()
	require.NoError(t, settingsRepo.Upsert(context.Background(), &notification.Settings{
		UserID:        char.UserID,
		Notifications: map[string]bool{"verify_fail": false},
	}))

	require.NoError(t, n.VerifySuccess(context.Background(), char))
	require.Len(t, notifRepo.notifs, 1)
	assert.Equal(t, "verify_success", notifRepo.notifs[0].Type)
}

func TestSettings_Enabled(t *testing.T) {
	t.Parallel()

	var absent *notification.Settings
	assert.True(t, absent.Enabled("verify_success"), "missing settings row means default-on")

	s := &notification.Settings{Notifications: map[string]bool{"verify_fail": false, "verify_success": true}}
	assert.False(t, s.Enabled("verify_fail"))
	assert.True(t, s.Enabled("verify_success"))
	assert.True(t, s.Enabled("team_join"), "unknown key defaults to enabled")

	empty := &notification.Settings{}
	assert.True(t, empty.Enabled("verify_fail"))
}
