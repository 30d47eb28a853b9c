package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/tripgate/portal-api/internal/domain/auth"
	"github.com/tripgate/portal-api/internal/ports"
)

func testPending(state string) domainauth.PendingAuth {
	return domainauth.PendingAuth{
		State:       state,
		Nonce:       "nonce-1",
		TenantKind:  domainauth.TenantAgent,
		RedirectURI: "/bookings",
		CreatedAt:   time.Now().UTC(),
	}
}

func TestPendingAuthStore_SaveAndConsume(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewPendingAuthStore(client, 10*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testPending("state-1")))

	p, err := store.Consume(ctx, "state-1")
	require.NoError(t, err)
	assert.Equal(t, "nonce-1", p.Nonce)
	assert.Equal(t, domainauth.TenantAgent, p.TenantKind)
	assert.Equal(t, "/bookings", p.RedirectURI)
}

func TestPendingAuthStore_ConsumeIsSingleUse(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewPendingAuthStore(client, 10*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testPending("state-once")))

	_, err := store.Consume(ctx, "state-once")
	require.NoError(t, err)

	// The second redemption is a replay, not an unknown state.
	_, err = store.Consume(ctx, "state-once")
	assert.ErrorIs(t, err, ports.ErrPendingConsumed)
}

func TestPendingAuthStore_ConsumeUnknownState(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewPendingAuthStore(client, 10*time.Minute)

	_, err := store.Consume(context.Background(), "never-issued")
	assert.ErrorIs(t, err, ports.ErrPendingNotFound)
}

func TestPendingAuthStore_EmptyState(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewPendingAuthStore(client, 10*time.Minute)
	ctx := context.Background()

	require.Error(t, store.Save(ctx, domainauth.PendingAuth{}))

	_, err := store.Consume(ctx, "")
	assert.ErrorIs(t, err, ports.ErrPendingNotFound)
}

func TestPendingAuthStore_RecordsExpire(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewPendingAuthStore(client, 10*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testPending("state-ttl")))

	ttl, err := client.TTL(ctx, "pending_auth:state-ttl").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 9*time.Minute)
	assert.LessOrEqual(t, ttl, 10*time.Minute)
}
