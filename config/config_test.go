package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthConfig_SanitizeDefaults(t *testing.T) {
	a := AuthConfig{}
	a.Sanitize()

	assert.Equal(t, 8*time.Hour, a.SessionTTL)
	assert.Equal(t, 10*time.Minute, a.PendingTTL)
	assert.Equal(t, 10*time.Second, a.ExchangeTimeout)
	assert.Equal(t, "Admin", a.AdminRole)
	assert.Equal(t, "roles", a.RolesClaimPath)
}

func TestAuthConfig_SanitizeKeepsValid(t *testing.T) {
	a := AuthConfig{
		SessionTTL:      time.Hour,
		PendingTTL:      5 * time.Minute,
		ExchangeTimeout: 3 * time.Second,
		AdminRole:       "PortalAdministrator",
		RolesClaimPath:  "wids",
	}
	a.Sanitize()

	assert.Equal(t, time.Hour, a.SessionTTL)
	assert.Equal(t, "PortalAdministrator", a.AdminRole)
	assert.Equal(t, "wids", a.RolesClaimPath)
}

func TestStorageConfig_SanitizeCredentialTTLBounds(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{"zero", 0, time.Hour},
		{"below floor", 5 * time.Minute, time.Hour},
		{"at floor", 15 * time.Minute, 15 * time.Minute},
		{"normal", 2 * time.Hour, 2 * time.Hour},
		{"above ceiling", 24 * time.Hour, time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := StorageConfig{CredentialTTL: tt.in}
			s.Sanitize()
			assert.Equal(t, tt.want, s.CredentialTTL)
		})
	}
}

func TestAppConfig_EnvDefaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.False(t, cfg.IsDev)
	assert.Equal(t, AuthModeOIDC, cfg.Auth.Mode)
	assert.Equal(t, 8*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "us-east-1", cfg.Storage.Region)
	assert.Equal(t, 15*time.Minute, cfg.Storage.PresignTTL)
}

func TestAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("AUTH_MODE", "mock")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("STORAGE_BUCKET", "tripgate-docs")
	t.Setenv("DB_HOST", "db.internal")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, AuthModeMock, cfg.Auth.Mode)
	assert.Equal(t, 2*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "tripgate-docs", cfg.Storage.Bucket)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
}
