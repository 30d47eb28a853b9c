package storage

// Package storage contains domain types for document storage and the
// short-lived credentials that scope access to it.

import (
	"time"

	domainauth "github.com/tripgate/portal-api/internal/domain/auth"
)

// FederatedCredential is a temporary, role-scoped object-storage
// credential obtained by exchanging an authenticated role. The key
// material is opaque and must never be logged or persisted beyond the
// owning session.
type FederatedCredential struct {
	AccessKey    string
	SecretKey    string
	SessionToken string
	ExpiresAt    time.Time
	// ScopeRole records the role the credential was issued for; a
	// credential issued for one role is never reused for another.
	ScopeRole domainauth.Role
}

// Expired reports whether the credential is invalid at t.
func (c FederatedCredential) Expired(t time.Time) bool {
	return !t.Before(c.ExpiresAt)
}

// Object describes one stored document.
type Object struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Operation classifies a document-store access for authorization.
type Operation string

const (
	OpRead   Operation = "read"
	OpMutate Operation = "mutate"
)
