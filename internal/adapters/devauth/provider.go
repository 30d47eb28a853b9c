package devauth

// Package devauth provides a simple, config-driven AuthProvider for local
// development. It short-circuits the OAuth flow by redirecting back to our
// own callback; Exchange ignores the code and returns the configured claims.

import (
	"context"
	"errors"

	domainauth "github.com/tripgate/portal-api/internal/domain/auth"
	"github.com/tripgate/portal-api/internal/ports"
)

// Config controls the dev auth provider behavior.
type Config struct {
	Email    string
	UserType string
	Roles    []string
}

// Provider implements ports.AuthProvider for local development.
type Provider struct {
	claims domainauth.RawClaims
}

var _ ports.AuthProvider = (*Provider)(nil)

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	return &Provider{
		claims: domainauth.RawClaims{
			Email:       cfg.Email,
			DisplayName: "Dev User",
			UserType:    cfg.UserType,
			Roles:       append([]string(nil), cfg.Roles...),
			Raw: map[string]any{
				"email": cfg.Email,
				"iss":   "devauth",
			},
		},
	}, nil
}

// AuthCodeURL points straight back at our own callback.
func (p *Provider) AuthCodeURL(state, _ string) string {
	return "/auth/callback?code=dev&state=" + state
}

// Exchange ignores the provided code (state was already validated by the
// flow controller) and returns the configured claims.
func (p *Provider) Exchange(_ context.Context, _ string, _ string) (domainauth.RawClaims, error) {
	return p.claims, nil
}
