package devauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_RequiresEmail(t *testing.T) {
	_, err := NewProvider(Config{})
	require.Error(t, err)
}

func TestProvider_AuthCodeURL(t *testing.T) {
	p, err := NewProvider(Config{Email: "dev@example.com"})
	require.NoError(t, err)

	url := p.AuthCodeURL("abc123", "nonce")
	assert.Equal(t, "/auth/callback?code=dev&state=abc123", url)
}

func TestProvider_ExchangeReturnsConfiguredClaims(t *testing.T) {
	p, err := NewProvider(Config{
		Email:    "agent@tripgate.example",
		UserType: "Member",
		Roles:    []string{"Admin"},
	})
	require.NoError(t, err)

	claims, err := p.Exchange(context.Background(), "ignored-code", "ignored-nonce")
	require.NoError(t, err)
	assert.Equal(t, "agent@tripgate.example", claims.Email)
	assert.Equal(t, "Member", claims.UserType)
	assert.Equal(t, []string{"Admin"}, claims.Roles)
}

func TestProvider_RolesCopied(t *testing.T) {
	roles := []string{"Admin"}
	p, err := NewProvider(Config{Email: "dev@example.com", Roles: roles})
	require.NoError(t, err)

	roles[0] = "mutated"
	claims, err := p.Exchange(context.Background(), "c", "n")
	require.NoError(t, err)
	assert.Equal(t, []string{"Admin"}, claims.Roles)
}
