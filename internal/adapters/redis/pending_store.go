package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	domainauth "github.com/tripgate/portal-api/internal/domain/auth"
	"github.com/tripgate/portal-api/internal/ports"
)

// PendingAuthStore holds one record per in-flight OIDC exchange, keyed by
// the state value. Records expire via Redis TTL when the browser never
// returns from the IdP.
//
// Consume uses GETDEL so two concurrent callbacks carrying the same state
// can never both observe the record: exactly one wins, the other sees the
// consumed marker. The marker distinguishes a replayed callback from a
// state that never existed.
type PendingAuthStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewPendingAuthStore creates a pending-auth store with the given record TTL.
func NewPendingAuthStore(client redis.UniversalClient, ttl time.Duration) *PendingAuthStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &PendingAuthStore{
		client: client,
		prefix: "pending_auth:",
		ttl:    ttl,
	}
}

var _ ports.PendingAuthStore = (*PendingAuthStore)(nil)

func (s *PendingAuthStore) Save(ctx context.Context, p domainauth.PendingAuth) error {
	if p.State == "" {
		return errors.New("pending auth state cannot be empty")
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal pending auth: %w", err)
	}

	return s.client.Set(ctx, s.prefix+p.State, data, s.ttl).Err()
}

// Consume atomically removes and returns the record for state. Returns
// ErrNotFound for an unknown state and ErrConsumed when the record was
// already redeemed within the marker window.
func (s *PendingAuthStore) Consume(ctx context.Context, state string) (domainauth.PendingAuth, error) {
	if state == "" {
		return domainauth.PendingAuth{}, ports.ErrPendingNotFound
	}

	data, err := s.client.GetDel(ctx, s.prefix+state).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.PendingAuth{}, s.classifyMiss(ctx, state)
		}
		return domainauth.PendingAuth{}, fmt.Errorf("redis getdel: %w", err)
	}

	var p domainauth.PendingAuth
	if unmarshalErr := json.Unmarshal([]byte(data), &p); unmarshalErr != nil {
		return domainauth.PendingAuth{}, fmt.Errorf("unmarshal pending auth: %w", unmarshalErr)
	}

	// Mark the state consumed so a second callback is reported as replay
	// rather than an unknown state. Marker shares the record TTL.
	if markErr := s.client.Set(ctx, s.consumedKey(state), "1", s.ttl).Err(); markErr != nil {
		// The record is already gone, so single-use is preserved either way.
		return p, nil
	}

	return p, nil
}

// classifyMiss distinguishes a replayed state from one we never issued.
func (s *PendingAuthStore) classifyMiss(ctx context.Context, state string) error {
	n, err := s.client.Exists(ctx, s.consumedKey(state)).Result()
	if err == nil && n > 0 {
		return ports.ErrPendingConsumed
	}
	return ports.ErrPendingNotFound
}

func (s *PendingAuthStore) consumedKey(state string) string {
	return s.prefix + "consumed:" + state
}
