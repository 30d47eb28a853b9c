package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	domainauth "github.com/tripgate/portal-api/internal/domain/auth"
	apperrors "github.com/tripgate/portal-api/internal/errors"
	"github.com/tripgate/portal-api/internal/ports"
)

// CredentialDropper releases any federated credential cached for a session.
// Implemented by CredentialFederator; kept narrow so AuthService never
// touches credential material itself.
type CredentialDropper interface {
	Drop(sessionID string)
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	// Providers holds one configured AuthProvider per tenant.
	Providers map[domainauth.TenantKind]ports.AuthProvider
	Pending   ports.PendingAuthStore
	Sessions  ports.SessionStore
	// Normalizer derives the Principal from raw claims.
	Normalizer domainauth.Normalizer
	// Credentials is optional; when set, logout and session replacement
	// also drop cached federated credentials.
	Credentials CredentialDropper
	// SessionTTL is the maximum session age from authentication.
	SessionTTL time.Duration
	// ExchangeTimeout bounds the code-for-token exchange.
	ExchangeTimeout time.Duration
	Logger          *slog.Logger
}

// AuthService orchestrates the login flow across both tenant authorities:
// it owns the pending-auth lifecycle, drives the code exchange through the
// provider the pending record names, normalizes claims, and manages the
// server-side session.
type AuthService struct {
	providers       map[domainauth.TenantKind]ports.AuthProvider
	pending         ports.PendingAuthStore
	sessions        ports.SessionStore
	normalizer      domainauth.Normalizer
	credentials     CredentialDropper
	sessionTTL      time.Duration
	exchangeTimeout time.Duration
	logger          *slog.Logger
}

var errSessionExpired = errors.New("session expired")

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	timeout := opts.ExchangeTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		providers:       opts.Providers,
		pending:         opts.Pending,
		sessions:        opts.Sessions,
		normalizer:      opts.Normalizer,
		credentials:     opts.Credentials,
		sessionTTL:      ttl,
		exchangeTimeout: timeout,
		logger:          logger,
	}
}

// BeginLoginResult contains the result of beginning a login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
}

// BeginLogin initiates an authentication flow against the requested
// tenant's authority and stores the pending correlation record.
func (s *AuthService) BeginLogin(ctx context.Context, kind domainauth.TenantKind, redirectURI string) (*BeginLoginResult, error) {
	if !kind.Valid() {
		return nil, apperrors.Configf("invalid tenant kind %q", kind)
	}
	provider, ok := s.providers[kind]
	if !ok {
		return nil, apperrors.Configf("no auth provider configured for tenant %q", kind)
	}

	state, err := generateRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("generate state: %w", err)
	}
	nonce, err := generateRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	pending := domainauth.PendingAuth{
		State:       state,
		Nonce:       nonce,
		TenantKind:  kind,
		RedirectURI: redirectURI,
		CreatedAt:   time.Now().UTC(),
	}
	if saveErr := s.pending.Save(ctx, pending); saveErr != nil {
		return nil, fmt.Errorf("save pending auth: %w", saveErr)
	}

	return &BeginLoginResult{
		AuthURL: provider.AuthCodeURL(state, nonce),
		State:   state,
	}, nil
}

// CompleteLoginInput groups the callback parameters.
type CompleteLoginInput struct {
	Code  string
	State string
	// IdpError carries the authority's error parameter when present.
	IdpError string
	// PriorSessionID is the session id the browser already carried, if
	// any; a prior session for a different identity is cleared before
	// the new one is established.
	PriorSessionID string
}

// CompleteLoginResult contains the established session and the post-login
// destination recorded at login start.
type CompleteLoginResult struct {
	Session     domainauth.Session
	RedirectURI string
}

// CompleteLogin consumes the pending record for the callback's state,
// exchanges the code against the authority chosen at login start, and
// establishes the session. The session is established atomically or not
// at all; any failure leaves no partial state behind.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*CompleteLoginResult, error) {
	if input.State == "" {
		return nil, apperrors.New(apperrors.ErrCodeStateMismatch, "state parameter is required")
	}

	// Atomic check-and-delete: exactly one callback ever redeems a state.
	pending, err := s.pending.Consume(ctx, input.State)
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrPendingConsumed):
			s.logger.WarnContext(ctx, "replayed oidc callback", "security", true)
			return nil, apperrors.New(apperrors.ErrCodeReplayedCallback, "callback state already consumed")
		case errors.Is(err, ports.ErrPendingNotFound):
			s.logger.WarnContext(ctx, "oidc callback state mismatch", "security", true)
			return nil, apperrors.New(apperrors.ErrCodeStateMismatch, "callback state does not match any pending login")
		default:
			return nil, fmt.Errorf("consume pending auth: %w", err)
		}
	}

	if input.IdpError != "" {
		return nil, apperrors.Newf(apperrors.ErrCodeIdpDenied, "identity provider denied the request: %s", input.IdpError)
	}
	if input.Code == "" {
		return nil, apperrors.New(apperrors.ErrCodeTokenExchange, "authorization code is required")
	}

	// The authority is re-read from the pending record, never from
	// anything the callback carries, to avoid authority confusion.
	provider, ok := s.providers[pending.TenantKind]
	if !ok {
		return nil, apperrors.Configf("no auth provider configured for tenant %q", pending.TenantKind)
	}

	exchangeCtx, cancel := context.WithTimeout(ctx, s.exchangeTimeout)
	defer cancel()
	claims, err := provider.Exchange(exchangeCtx, input.Code, pending.Nonce)
	if err != nil {
		return nil, err
	}

	principal, err := s.normalizer.Normalize(pending.TenantKind, claims, time.Now().UTC())
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeClaimsInvalid, "normalize claims")
	}

	session, err := s.establish(ctx, principal, input.PriorSessionID)
	if err != nil {
		return nil, err
	}

	return &CompleteLoginResult{
		Session:     session,
		RedirectURI: pending.RedirectURI,
	}, nil
}

// establish creates the server-side session record. A prior session on the
// same transport is fully cleared first when it belongs to a different
// identity; sessions are never merged across identities.
func (s *AuthService) establish(ctx context.Context, principal domainauth.Principal, priorSessionID string) (domainauth.Session, error) {
	if priorSessionID != "" {
		prior, getErr := s.sessions.Get(ctx, priorSessionID)
		if getErr == nil && prior.Principal.Email != principal.Email {
			if delErr := s.invalidate(ctx, priorSessionID); delErr != nil {
				return domainauth.Session{}, fmt.Errorf("clear prior session: %w", delErr)
			}
		}
	}

	session := domainauth.Session{
		ID:        uuid.NewString(),
		Principal: principal,
		ExpiresAt: principal.AuthenticatedAt.Add(s.sessionTTL),
	}
	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", saveErr)
	}
	return session, nil
}

// GetSession retrieves a session by ID.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	// Check if session is expired
	if time.Now().After(session.ExpiresAt) {
		if deleteErr := s.invalidate(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// Logout removes a session and its cached credential. Idempotent.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to logout
	}
	return s.invalidate(ctx, sessionID)
}

func (s *AuthService) invalidate(ctx context.Context, sessionID string) error {
	if s.credentials != nil {
		s.credentials.Drop(sessionID)
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// generateRandomString generates a cryptographically secure URL-safe random string of exact length.
func generateRandomString(length int) (string, error) {
	if length <= 0 {
		return "", nil
	}
	// Compute number of random bytes needed to produce at least 'length' base64 URL-safe chars
	nBytes := (length*3 + 3) / 4
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	if len(s) < length {
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:length], nil
}
