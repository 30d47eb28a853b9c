package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"sync"
	"time"

	domainauth "github.com/tripgate/portal-api/internal/domain/auth"
	"github.com/tripgate/portal-api/internal/ports"
)

// ErrSessionNotFound reports a missing session, mirroring the production store.
var ErrSessionNotFound = errors.New("session not found")

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthProvider     = (*MockAuthProvider)(nil)
	_ ports.SessionStore     = (*MemorySessionStore)(nil)
	_ ports.PendingAuthStore = (*MemoryPendingStore)(nil)
)

// MockAuthProvider simulates a tenant authority for tests.
type MockAuthProvider struct {
	AuthCodeURLFunc func(state, nonce string) string
	ExchangeFunc    func(ctx context.Context, code, nonce string) (domainauth.RawClaims, error)

	// Claims returned when ExchangeFunc is nil.
	Claims domainauth.RawClaims

	mu            sync.Mutex
	exchangeCalls int
}

// NewMockAuthProvider creates a MockAuthProvider with a sensible default identity.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		Claims: domainauth.RawClaims{
			Email:       "mock.user@example.com",
			DisplayName: "Mock User",
			UserType:    "Member",
			Raw:         map[string]any{"email": "mock.user@example.com"},
		},
	}
}

func (m *MockAuthProvider) AuthCodeURL(state, nonce string) string {
	if m.AuthCodeURLFunc != nil {
		return m.AuthCodeURLFunc(state, nonce)
	}
	return "https://mock-idp/auth?state=" + state
}

func (m *MockAuthProvider) Exchange(ctx context.Context, code, nonce string) (domainauth.RawClaims, error) {
	m.mu.Lock()
	m.exchangeCalls++
	m.mu.Unlock()

	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, code, nonce)
	}
	return m.Claims, nil
}

// ExchangeCalls reports how many times Exchange ran.
func (m *MockAuthProvider) ExchangeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exchangeCalls
}

// MemorySessionStore is an in-memory session store for tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session

	// SaveErr, GetErr, DeleteErr force failures when set.
	SaveErr   error
	GetErr    error
	DeleteErr error
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (s *MemorySessionStore) Save(_ context.Context, session domainauth.Session) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, sessionID string) (domainauth.Session, error) {
	if s.GetErr != nil {
		return domainauth.Session{}, s.GetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return domainauth.Session{}, ErrSessionNotFound
	}
	return session, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, sessionID string) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// Len reports how many sessions are stored.
func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// MemoryPendingStore is an in-memory pending-auth store for tests. Consume
// removes the record and remembers the state so replays are detectable.
type MemoryPendingStore struct {
	mu       sync.Mutex
	pending  map[string]domainauth.PendingAuth
	consumed map[string]time.Time

	SaveErr error
}

// NewMemoryPendingStore creates an empty in-memory pending-auth store.
func NewMemoryPendingStore() *MemoryPendingStore {
	return &MemoryPendingStore{
		pending:  make(map[string]domainauth.PendingAuth),
		consumed: make(map[string]time.Time),
	}
}

func (s *MemoryPendingStore) Save(_ context.Context, pending domainauth.PendingAuth) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[pending.State] = pending
	return nil
}

func (s *MemoryPendingStore) Consume(_ context.Context, state string) (domainauth.PendingAuth, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending, ok := s.pending[state]
	if !ok {
		if _, seen := s.consumed[state]; seen {
			return domainauth.PendingAuth{}, ports.ErrPendingConsumed
		}
		return domainauth.PendingAuth{}, ports.ErrPendingNotFound
	}
	delete(s.pending, state)
	s.consumed[state] = time.Now()
	return pending, nil
}
