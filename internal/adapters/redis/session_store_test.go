package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/tripgate/portal-api/internal/domain/auth"
	"github.com/tripgate/portal-api/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func testSession(id string) domainauth.Session {
	return domainauth.Session{
		ID: id,
		Principal: domainauth.Principal{
			Email:           "jamie@example.com",
			DisplayName:     "Jamie Traveler",
			TenantKind:      domainauth.TenantCustomer,
			Role:            domainauth.RoleCustomer,
			AuthenticatedAt: time.Now().UTC(),
		},
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := testSession("test-session-1")
	require.NoError(t, store.Save(ctx, session))

	retrieved, err := store.Get(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, retrieved.ID)
	assert.Equal(t, session.Principal.Email, retrieved.Principal.Email)
	assert.Equal(t, session.Principal.Role, retrieved.Principal.Role)
	assert.WithinDuration(t, session.ExpiresAt, retrieved.ExpiresAt, time.Second)
}

func TestSessionStore_GetNonExistent(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	_, err := store.Get(context.Background(), "non-existent")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_Delete(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("test-session-delete")))
	require.NoError(t, store.Delete(ctx, "test-session-delete"))

	_, err := store.Get(ctx, "test-session-delete")
	assert.Equal(t, ErrNotFound, err)

	// Deleting again is a no-op.
	require.NoError(t, store.Delete(ctx, "test-session-delete"))
}

func TestSessionStore_SaveRejectsExpired(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	session := testSession("expired")
	session.ExpiresAt = time.Now().Add(-time.Minute)

	err := store.Save(context.Background(), session)
	require.Error(t, err)
}

func TestSessionStore_SaveRejectsEmptyID(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	err := store.Save(context.Background(), testSession(""))
	require.Error(t, err)
}

func TestSessionStore_CustomPrefix(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStoreWithPrefix(client, "portal_session:")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("prefixed")))

	keys, err := client.Keys(ctx, "portal_session:*").Result()
	require.NoError(t, err)
	assert.Len(t, keys, 1)
}
