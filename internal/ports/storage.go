package ports

import (
	"context"
	"time"

	domainauth "github.com/tripgate/portal-api/internal/domain/auth"
	domainstorage "github.com/tripgate/portal-api/internal/domain/storage"
)

// CredentialBroker exchanges a resolved role for temporary scoped
// object-storage credentials (AssumeRole-style).
type CredentialBroker interface {
	Assume(ctx context.Context, role domainauth.Role, email string) (domainstorage.FederatedCredential, error)
}

// DocumentStore is the object-storage collaborator. Every call carries
// the federated credential of the current role; no static administrative
// credential is ever used for customer or agent document operations.
type DocumentStore interface {
	List(ctx context.Context, cred domainstorage.FederatedCredential, prefix string) ([]domainstorage.Object, error)
	Put(ctx context.Context, cred domainstorage.FederatedCredential, key string, body []byte, contentType string) error
	Delete(ctx context.Context, cred domainstorage.FederatedCredential, key string) error
	PresignGet(ctx context.Context, cred domainstorage.FederatedCredential, key string, ttl time.Duration) (string, error)
}

// RelationshipDirectory answers which customer folders an agent may
// reach. It is an external collaborator; a nil directory means agents
// only see the shared agents/ prefix.
type RelationshipDirectory interface {
	CustomersFor(ctx context.Context, agentEmail string) ([]string, error)
}
