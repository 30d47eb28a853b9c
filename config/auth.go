package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOIDC authenticates against the configured tenant authorities.
	AuthModeOIDC AuthMode = "oidc"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oidc", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oidc, mock)", v)
	}
}

// TenantConfig describes one OIDC authority. The issuer URL is built from
// the tenant identifier unless IssuerURL overrides it outright.
type TenantConfig struct {
	// TenantID is the authority's tenant identifier (e.g. an Entra
	// directory id or a CIAM tenant name).
	TenantID string `env:"TENANT_ID"`

	// IssuerURL overrides the issuer derived from TenantID. Useful for
	// non-standard authority hosts and for tests.
	IssuerURL string `env:"ISSUER_URL"`

	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	Email    string   `env:"EMAIL"     envDefault:"dev@example.com"`
	Tenant   string   `env:"TENANT"    envDefault:"agent"`
	UserType string   `env:"USER_TYPE" envDefault:"Member"`
	Roles    []string `env:"ROLES"     envDefault:""               envSeparator:";"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oidc"`

	// Customer is the external consumer-identity tenant.
	Customer TenantConfig `envPrefix:"CUSTOMER_"`

	// Agent is the internal B2B tenant for employees and invited partners.
	Agent TenantConfig `envPrefix:"AGENT_"`

	// RedirectURL is the OAuth callback this deployment registered with
	// both authorities.
	RedirectURL string `env:"OAUTH_REDIRECT_URL" envDefault:"http://localhost:8080/auth/callback"`

	// DirectoryReadScope is the extra scope requested on agent logins so
	// later steps may call the directory API.
	DirectoryReadScope string `env:"DIRECTORY_READ_SCOPE" envDefault:"https://graph.microsoft.com/User.Read"`

	// AdminRole is the application-role claim value that elevates an
	// agent login to admin.
	AdminRole string `env:"ADMIN_ROLE" envDefault:"Admin"`

	// RolesClaimPath is a JMESPath expression locating the application
	// role assignments inside the raw claim set. Authorities differ on
	// where they put roles ("roles", "wids", extension claims).
	RolesClaimPath string `env:"ROLES_CLAIM_PATH" envDefault:"roles"`

	// SessionTTL is the maximum session age measured from authentication.
	// Independent of the federated-credential lifetime.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"8h"`

	// PendingTTL bounds how long an abandoned login may occupy the
	// pending-auth store.
	PendingTTL time.Duration `env:"PENDING_AUTH_TTL" envDefault:"10m"`

	// ExchangeTimeout bounds the code-for-token exchange so a slow IdP
	// cannot exhaust request-handling capacity.
	ExchangeTimeout time.Duration `env:"EXCHANGE_TIMEOUT" envDefault:"10s"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = 8 * time.Hour
	}
	if a.PendingTTL <= 0 {
		a.PendingTTL = 10 * time.Minute
	}
	if a.ExchangeTimeout <= 0 {
		a.ExchangeTimeout = 10 * time.Second
	}
	if a.AdminRole == "" {
		a.AdminRole = "Admin"
	}
	if a.RolesClaimPath == "" {
		a.RolesClaimPath = "roles"
	}
}
