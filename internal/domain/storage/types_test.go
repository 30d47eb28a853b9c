package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFederatedCredential_Expired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cred := FederatedCredential{ExpiresAt: now.Add(time.Hour)}

	assert.False(t, cred.Expired(now))
	assert.False(t, cred.Expired(now.Add(59*time.Minute)))
	assert.True(t, cred.Expired(now.Add(time.Hour)))
	assert.True(t, cred.Expired(now.Add(2*time.Hour)))
}
