package entra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripgate/portal-api/config"
	domainauth "github.com/tripgate/portal-api/internal/domain/auth"
	apperrors "github.com/tripgate/portal-api/internal/errors"
)

func validAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		Customer: config.TenantConfig{
			TenantID:     "tripgateconsumers",
			ClientID:     "customer-client",
			ClientSecret: "customer-secret",
		},
		Agent: config.TenantConfig{
			TenantID:     "11111111-2222-3333-4444-555555555555",
			ClientID:     "agent-client",
			ClientSecret: "agent-secret",
		},
		DirectoryReadScope: "https://graph.microsoft.com/User.Read",
	}
}

func TestNewResolver_DerivedIssuers(t *testing.T) {
	r, err := NewResolver(validAuthConfig())
	require.NoError(t, err)

	customer, err := r.Resolve(domainauth.TenantCustomer)
	require.NoError(t, err)
	assert.Equal(t, "https://tripgateconsumers.ciamlogin.com/tripgateconsumers/v2.0", customer.IssuerURL)
	assert.Equal(t, "customer-client", customer.ClientID)
	assert.Equal(t, []string{"openid", "profile", "email"}, customer.Scopes)

	agent, err := r.Resolve(domainauth.TenantAgent)
	require.NoError(t, err)
	assert.Equal(t, "https://login.microsoftonline.com/11111111-2222-3333-4444-555555555555/v2.0", agent.IssuerURL)
	assert.Equal(t, []string{"openid", "profile", "email", "https://graph.microsoft.com/User.Read"}, agent.Scopes)
}

func TestNewResolver_IssuerOverride(t *testing.T) {
	cfg := validAuthConfig()
	cfg.Customer.TenantID = ""
	cfg.Customer.IssuerURL = "https://idp.local/realms/portal"

	r, err := NewResolver(cfg)
	require.NoError(t, err)

	customer, err := r.Resolve(domainauth.TenantCustomer)
	require.NoError(t, err)
	assert.Equal(t, "https://idp.local/realms/portal", customer.IssuerURL)
}

func TestNewResolver_NoDirectoryScope(t *testing.T) {
	cfg := validAuthConfig()
	cfg.DirectoryReadScope = ""

	r, err := NewResolver(cfg)
	require.NoError(t, err)

	agent, err := r.Resolve(domainauth.TenantAgent)
	require.NoError(t, err)
	assert.Equal(t, []string{"openid", "profile", "email"}, agent.Scopes)
}

func TestNewResolver_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.AuthConfig)
	}{
		{"no customer tenant or issuer", func(c *config.AuthConfig) {
			c.Customer.TenantID = ""
			c.Customer.IssuerURL = ""
		}},
		{"no customer client id", func(c *config.AuthConfig) { c.Customer.ClientID = "" }},
		{"no customer client secret", func(c *config.AuthConfig) { c.Customer.ClientSecret = "" }},
		{"no agent tenant or issuer", func(c *config.AuthConfig) {
			c.Agent.TenantID = ""
			c.Agent.IssuerURL = ""
		}},
		{"no agent client secret", func(c *config.AuthConfig) { c.Agent.ClientSecret = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAuthConfig()
			tt.mutate(&cfg)

			_, err := NewResolver(cfg)
			require.Error(t, err)
			assert.True(t, apperrors.IsConfig(err))
		})
	}
}

func TestResolve_InvalidKind(t *testing.T) {
	r, err := NewResolver(validAuthConfig())
	require.NoError(t, err)

	_, err = r.Resolve(domainauth.TenantKind("vendor"))
	require.Error(t, err)
	assert.True(t, apperrors.IsConfig(err))
}
