package auth_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/savageaim/backend/internal/auth"
)

const testBcryptCost = 4 // low cost for fast tests

// memUserRepo is an in-memory UserRepository. FindByPrefix skips revoked
// users, matching the SQL implementation.
type memUserRepo struct {
	users map[uuid.UUID]*auth.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[uuid.UUID]*auth.User{}}
}

func (m *memUserRepo) Create(_ context.Context, user *auth.User) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now().UTC()
	m.users[user.ID] = user
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*auth.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return u, nil
}

func (m *memUserRepo) FindByPrefix(_ context.Context, prefix string) ([]auth.User, error) {
	var out []auth.User
	for _, u := range m.users {
		if u.ApiKeyPrefix == prefix && u.RevokedAt == nil {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memUserRepo) CountAll(_ context.Context) (int, error) {
	return len(m.users), nil
}

// --- GenerateKey Tests ---

func TestGenerateKey_Format(t *testing.T) {
	t.Parallel()

	svc := auth.NewService(newMemUserRepo(), testBcryptCost)

	rawKey, prefix, hash, err := svc.GenerateKey()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rawKey, "sa_"), "raw key should start with sa_")
	assert.Len(t, prefix, 8, "prefix should be 8 characters")
	assert.Equal(t, rawKey[:8], prefix, "prefix should be first 8 chars of raw key")
	assert.NotEmpty(t, hash, "hash should not be empty")

	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(rawKey))
	assert.NoError(t, err, "hash should verify against raw key")
}

func TestGenerateKey_Uniqueness(t *testing.T) {
	t.Parallel()

	svc := auth.NewService(newMemUserRepo(), testBcryptCost)

	key1, _, _, err := svc.GenerateKey()
	require.NoError(t, err)

	key2, _, _, err := svc.GenerateKey()
	require.NoError(t, err)

	assert.NotEqual(t, key1, key2, "generated keys should be unique")
}

// --- Authenticate Tests ---

func TestAuthenticate_ValidKey(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo()
	svc := auth.NewService(repo, testBcryptCost)
	ctx := context.Background()

	rawKey, prefix, hash, err := svc.GenerateKey()
	require.NoError(t, err)

	u := &auth.User{
		Name:         "authuser",
		ApiKeyPrefix: prefix,
		ApiKeyHash:   hash,
	}
	require.NoError(t, repo.Create(ctx, u))

	identity, err := svc.Authenticate(ctx, rawKey)
	require.NoError(t, err)

	assert.Equal(t, u.ID, identity.UserID)
	assert.Equal(t, "authuser", identity.UserName)
	assert.False(t, identity.IsSuperuser)
}

func TestAuthenticate_InvalidKey(t *testing.T) {
	t.Parallel()

	svc := auth.NewService(newMemUserRepo(), testBcryptCost)

	_, err := svc.Authenticate(context.Background(), "sa_invalidkeyvalue12345678901234567890")
	assert.ErrorIs(t, err, auth.ErrInvalidKey)
}

func TestAuthenticate_TooShortKey(t *testing.T) {
	t.Parallel()

	svc := auth.NewService(newMemUserRepo(), testBcryptCost)

	_, err := svc.Authenticate(context.Background(), "short")
	assert.ErrorIs(t, err, auth.ErrInvalidKey)
}

func TestAuthenticate_RevokedUser(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo()
	svc := auth.NewService(repo, testBcryptCost)
	ctx := context.Background()

	rawKey, prefix, hash, err := svc.GenerateKey()
	require.NoError(t, err)

	u := &auth.User{
		Name:         "revokeduser",
		ApiKeyPrefix: prefix,
		ApiKeyHash:   hash,
	}
	require.NoError(t, repo.Create(ctx, u))

	now := time.Now().UTC()
	u.RevokedAt = &now

	_, err = svc.Authenticate(ctx, rawKey)
	assert.ErrorIs(t, err, auth.ErrInvalidKey)
}

// --- BootstrapSuperuser Tests ---

func TestBootstrapSuperuser_EmptyTable(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo()
	svc := auth.NewService(repo, testBcryptCost)
	ctx := context.Background()

	rawKey, err := svc.BootstrapSuperuser(ctx)
	require.NoError(t, err)

	assert.NotEmpty(t, rawKey)
	assert.True(t, strings.HasPrefix(rawKey, "sa_"))

	identity, err := svc.Authenticate(ctx, rawKey)
	require.NoError(t, err)
	assert.True(t, identity.IsSuperuser)
	assert.Equal(t, "superuser", identity.UserName)
}

func TestBootstrapSuperuser_NonEmptyTable(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo()
	svc := auth.NewService(repo, testBcryptCost)
	ctx := context.Background()

	_, prefix, hash, err := svc.GenerateKey()
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, &auth.User{
		Name:         "existing-user",
		ApiKeyPrefix: prefix,
		ApiKeyHash:   hash,
	}))

	rawKey, err := svc.BootstrapSuperuser(ctx)
	require.NoError(t, err)
	assert.Empty(t, rawKey, "should return empty key when users already exist")
}

func TestBootstrapSuperuser_Idempotent(t *testing.T) {
	t.Parallel()

	svc := auth.NewService(newMemUserRepo(), testBcryptCost)
	ctx := context.Background()

	key1, err := svc.BootstrapSuperuser(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, key1)

	key2, err := svc.BootstrapSuperuser(ctx)
	require.NoError(t, err)
	assert.Empty(t, key2, "second bootstrap should return empty key")
}
