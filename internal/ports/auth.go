package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/tripgate/portal-api/internal/domain/auth"
)

// Sentinel errors shared by PendingAuthStore implementations so the flow
// controller can distinguish an unknown state from a replayed one.
var (
	ErrPendingNotFound = errors.New("pending auth state not found")
	ErrPendingConsumed = errors.New("pending auth state already consumed")
)

// AuthorityConfig describes one OIDC issuer a tenant authenticates against.
type AuthorityConfig struct {
	IssuerURL    string
	ClientID     string
	ClientSecret string
	Scopes       []string
}

// AuthorityResolver maps a tenant kind to the authority that must
// authenticate it. Pure over static configuration loaded at startup.
type AuthorityResolver interface {
	Resolve(kind domainauth.TenantKind) (AuthorityConfig, error)
}

// AuthProvider drives the authorization-code exchange against one authority.
type AuthProvider interface {
	// AuthCodeURL builds the authorization redirect for a stored state/nonce pair.
	AuthCodeURL(state, nonce string) string

	// Exchange redeems the authorization code, verifies the ID token
	// (signature, issuer, audience, nonce), and returns the raw claims.
	Exchange(ctx context.Context, code, nonce string) (domainauth.RawClaims, error)
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// PendingAuthStore holds in-flight login correlation records. Consume is
// atomic check-and-delete: exactly one caller ever receives a given record,
// and records expire on their own when the browser never returns.
type PendingAuthStore interface {
	Save(ctx context.Context, p domainauth.PendingAuth) error
	Consume(ctx context.Context, state string) (domainauth.PendingAuth, error)
}
