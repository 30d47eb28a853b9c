package entra

// Package entra resolves tenant kinds to the OIDC authorities the portal
// authenticates against: an external consumer (CIAM) tenant for customers
// and the internal directory tenant for employees and invited partners.

import (
	"fmt"
	"strings"

	"github.com/tripgate/portal-api/config"
	domainauth "github.com/tripgate/portal-api/internal/domain/auth"
	apperrors "github.com/tripgate/portal-api/internal/errors"
	"github.com/tripgate/portal-api/internal/ports"
)

// Resolver is a pure lookup over static configuration. NewResolver
// validates every authority up front: a partially configured authority
// could otherwise leak unauthenticated redirects at first use.
type Resolver struct {
	customer ports.AuthorityConfig
	agent    ports.AuthorityConfig
}

var _ ports.AuthorityResolver = (*Resolver)(nil)

// NewResolver builds a resolver from auth configuration, failing fast on
// any missing field.
func NewResolver(cfg config.AuthConfig) (*Resolver, error) {
	customer, err := authorityFromTenant("customer", cfg.Customer, customerIssuer)
	if err != nil {
		return nil, err
	}
	customer.Scopes = []string{"openid", "profile", "email"}

	agent, err := authorityFromTenant("agent", cfg.Agent, agentIssuer)
	if err != nil {
		return nil, err
	}
	// The directory read scope lets later steps call the directory API.
	agent.Scopes = []string{"openid", "profile", "email"}
	if cfg.DirectoryReadScope != "" {
		agent.Scopes = append(agent.Scopes, cfg.DirectoryReadScope)
	}

	return &Resolver{customer: customer, agent: agent}, nil
}

// Resolve returns the authority configuration for the given tenant kind.
func (r *Resolver) Resolve(kind domainauth.TenantKind) (ports.AuthorityConfig, error) {
	switch kind {
	case domainauth.TenantCustomer:
		return r.customer, nil
	case domainauth.TenantAgent:
		return r.agent, nil
	default:
		return ports.AuthorityConfig{}, apperrors.Configf("invalid tenant kind %q", kind)
	}
}

func authorityFromTenant(prefix string, t config.TenantConfig, issuer func(string) string) (ports.AuthorityConfig, error) {
	issuerURL := strings.TrimSpace(t.IssuerURL)
	if issuerURL == "" {
		if strings.TrimSpace(t.TenantID) == "" {
			return ports.AuthorityConfig{}, apperrors.MissingField(prefix + ".tenant_id")
		}
		issuerURL = issuer(t.TenantID)
	}
	if t.ClientID == "" {
		return ports.AuthorityConfig{}, apperrors.MissingField(prefix + ".client_id")
	}
	if t.ClientSecret == "" {
		return ports.AuthorityConfig{}, apperrors.MissingField(prefix + ".client_secret")
	}
	return ports.AuthorityConfig{
		IssuerURL:    issuerURL,
		ClientID:     t.ClientID,
		ClientSecret: t.ClientSecret,
	}, nil
}

// customerIssuer builds the consumer-tenant issuer from a CIAM tenant name.
func customerIssuer(tenantID string) string {
	return fmt.Sprintf("https://%s.ciamlogin.com/%s/v2.0", tenantID, tenantID)
}

// agentIssuer builds the internal-tenant issuer from a directory id.
func agentIssuer(tenantID string) string {
	return fmt.Sprintf("https://login.microsoftonline.com/%s/v2.0", tenantID)
}
