package oidc

// Package oidc provides the authorization-code flow adapter for one tenant
// authority. The portal builds one Provider per tenant at startup; which
// provider handles a callback is decided by the pending-auth record, never
// by anything the callback itself carries.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	jmespath "github.com/jmespath-community/go-jmespath"
	domainauth "github.com/tripgate/portal-api/internal/domain/auth"
	apperrors "github.com/tripgate/portal-api/internal/errors"
	"github.com/tripgate/portal-api/internal/ports"
	"golang.org/x/oauth2"
)

// Provider implements ports.AuthProvider against a single OIDC authority.
type Provider struct {
	config     *oauth2.Config
	httpClient *http.Client

	// go-oidc provider and verifier
	oidcProvider *gooidc.Provider
	verifier     *gooidc.IDTokenVerifier

	// rolesPath extracts application role assignments from the raw claim
	// set; authorities differ on where they put them. Validated by
	// NewProvider, evaluated per exchange.
	rolesPath string
}

var _ ports.AuthProvider = (*Provider)(nil)

// ProviderConfig holds configuration for one authority's provider.
type ProviderConfig struct {
	Authority      ports.AuthorityConfig
	RedirectURL    string
	RolesClaimPath string       // JMESPath into the raw claims; default "roles"
	HTTPClient     *http.Client // Optional, defaults to a 30s-timeout client
}

// NewProvider creates a provider for one authority, running OIDC discovery
// against its issuer.
func NewProvider(ctx context.Context, cfg ProviderConfig) (*Provider, error) {
	if cfg.Authority.IssuerURL == "" {
		return nil, apperrors.MissingField("issuer_url")
	}
	if cfg.Authority.ClientID == "" {
		return nil, apperrors.MissingField("client_id")
	}
	if cfg.Authority.ClientSecret == "" {
		return nil, apperrors.MissingField("client_secret")
	}
	if cfg.RedirectURL == "" {
		return nil, apperrors.MissingField("redirect_url")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	rolesExpr := cfg.RolesClaimPath
	if rolesExpr == "" {
		rolesExpr = "roles"
	}
	if _, err := jmespath.Compile(rolesExpr); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeConfig, "compile roles claim path %q", rolesExpr)
	}

	p := &Provider{
		httpClient: httpClient,
		rolesPath:  rolesExpr,
	}

	// Single discovery fetch per authority at startup.
	dctx := context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	issuer := strings.TrimSuffix(cfg.Authority.IssuerURL, "/")
	op, err := gooidc.NewProvider(dctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery for %s: %w", issuer, err)
	}
	p.oidcProvider = op
	p.verifier = op.Verifier(&gooidc.Config{ClientID: cfg.Authority.ClientID})

	p.config = &oauth2.Config{
		ClientID:     cfg.Authority.ClientID,
		ClientSecret: cfg.Authority.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       cfg.Authority.Scopes,
		Endpoint:     op.Endpoint(),
	}

	return p, nil
}

// AuthCodeURL builds the authorization redirect carrying the stored state
// and nonce.
func (p *Provider) AuthCodeURL(state, nonce string) string {
	return p.config.AuthCodeURL(state,
		oauth2.SetAuthURLParam("nonce", nonce),
		oauth2.SetAuthURLParam("response_type", "code"),
		oauth2.SetAuthURLParam("prompt", "select_account"),
	)
}

// Exchange redeems the authorization code against this authority's token
// endpoint and verifies the resulting ID token (signature, issuer,
// audience) plus the nonce binding to the pending login.
func (p *Provider) Exchange(ctx context.Context, code, nonce string) (domainauth.RawClaims, error) {
	if code == "" {
		return domainauth.RawClaims{}, apperrors.New(apperrors.ErrCodeTokenExchange, "authorization code is required")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return domainauth.RawClaims{}, apperrors.Wrap(err, apperrors.ErrCodeTokenExchange, "exchange code for token")
	}

	rawID, err := idTokenFromToken(token)
	if err != nil {
		return domainauth.RawClaims{}, apperrors.Wrap(err, apperrors.ErrCodeClaimsInvalid, "token response")
	}
	idTok, err := p.verifier.Verify(ctx, rawID)
	if err != nil {
		return domainauth.RawClaims{}, apperrors.Wrap(err, apperrors.ErrCodeClaimsInvalid, "verify id_token")
	}
	if nonce != "" && idTok.Nonce != nonce {
		return domainauth.RawClaims{}, apperrors.New(apperrors.ErrCodeClaimsInvalid, "id_token nonce mismatch")
	}

	var raw map[string]any
	if claimsErr := idTok.Claims(&raw); claimsErr != nil {
		return domainauth.RawClaims{}, apperrors.Wrap(claimsErr, apperrors.ErrCodeClaimsInvalid, "parse id_token claims")
	}

	return p.mapClaims(raw), nil
}

// mapClaims builds the typed RawClaims shape from the decoded claim set.
// This is the single place where IdP claim-shape differences are absorbed.
func (p *Provider) mapClaims(raw map[string]any) domainauth.RawClaims {
	c := domainauth.RawClaims{Raw: raw}

	c.Email = firstNonEmpty(
		stringClaim(raw, "email"),
		stringClaim(raw, "preferred_username"),
		stringClaim(raw, "upn"),
	)
	c.DisplayName = stringClaim(raw, "name")
	c.UserType = stringClaim(raw, "userType")
	c.Roles = p.extractRoles(raw)

	return c
}

// extractRoles evaluates the configured roles claim path over the raw
// claim set. A missing or oddly typed claim yields no roles, never an error.
func (p *Provider) extractRoles(raw map[string]any) []string {
	v, err := jmespath.Search(p.rolesPath, raw)
	if err != nil || v == nil {
		return nil
	}
	switch vv := v.(type) {
	case []any:
		roles := make([]string, 0, len(vv))
		for _, r := range vv {
			if s, ok := r.(string); ok {
				roles = append(roles, s)
			}
		}
		return roles
	case []string:
		return vv
	case string:
		return []string{vv}
	default:
		return nil
	}
}

func stringClaim(raw map[string]any, key string) string {
	if s, ok := raw[key].(string); ok {
		return s
	}
	return ""
}

// firstNonEmpty returns the first non-empty string from vals, or empty string if none.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// idTokenFromToken extracts the id_token from oauth2.Token.
func idTokenFromToken(tok *oauth2.Token) (string, error) {
	if tok == nil {
		return "", errors.New("nil token")
	}
	raw := tok.Extra("id_token")
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", errors.New("missing id_token in token response")
	}
	return s, nil
}
