package service

import (
	"context"
	"sync"
	"time"

	domainauth "github.com/tripgate/portal-api/internal/domain/auth"
	domainstorage "github.com/tripgate/portal-api/internal/domain/storage"
	apperrors "github.com/tripgate/portal-api/internal/errors"
	"github.com/tripgate/portal-api/internal/ports"
	"golang.org/x/sync/singleflight"
)

// expiryLeeway is how early a cached credential is treated as expired, so
// a request never starts with a credential about to lapse mid-call.
const expiryLeeway = time.Minute

// CredentialFederator exchanges a session's role for temporary storage
// credentials and caches them per session until expiry.
//
// Retry policy: re-obtaining happens only on expiry, never on error. A
// federation fault is surfaced to the caller as-is; serving a stale or
// absent credential must not silently grant or deny access.
type CredentialFederator struct {
	broker ports.CredentialBroker
	now    func() time.Time

	mu    sync.Mutex
	cache map[string]domainstorage.FederatedCredential

	// group collapses concurrent first-access federation calls for the
	// same session into a single AssumeRole call.
	group singleflight.Group
}

// NewCredentialFederator constructs a federator over the given broker.
func NewCredentialFederator(broker ports.CredentialBroker) *CredentialFederator {
	return &CredentialFederator{
		broker: broker,
		now:    time.Now,
		cache:  make(map[string]domainstorage.FederatedCredential),
	}
}

// Obtain returns the session's credential, federating a fresh one on
// first access or when the cached one has expired. A credential issued
// for one role is never served for another.
func (f *CredentialFederator) Obtain(ctx context.Context, sessionID string, role domainauth.Role, email string) (domainstorage.FederatedCredential, error) {
	if sessionID == "" {
		return domainstorage.FederatedCredential{}, apperrors.New(apperrors.ErrCodeFederation, "session id is required")
	}

	if cred, ok := f.cached(sessionID, role); ok {
		return cred, nil
	}

	v, err, _ := f.group.Do(sessionID, func() (any, error) {
		// Re-check under the flight: a concurrent caller may have
		// populated the cache while we queued.
		if cred, ok := f.cached(sessionID, role); ok {
			return cred, nil
		}

		cred, assumeErr := f.broker.Assume(ctx, role, email)
		if assumeErr != nil {
			return nil, assumeErr
		}

		f.mu.Lock()
		f.cache[sessionID] = cred
		f.mu.Unlock()
		return cred, nil
	})
	if err != nil {
		return domainstorage.FederatedCredential{}, err
	}

	cred, ok := v.(domainstorage.FederatedCredential)
	if !ok || cred.ScopeRole != role {
		// A concurrent flight for the same session with a different role
		// would indicate session-store corruption; refuse rather than
		// serve a cross-role credential.
		return domainstorage.FederatedCredential{}, apperrors.Newf(apperrors.ErrCodeFederation, "credential role scope mismatch for session")
	}

	return cred, nil
}

// Drop discards the cached credential for a session. Called on logout and
// session replacement; idempotent.
func (f *CredentialFederator) Drop(sessionID string) {
	f.mu.Lock()
	delete(f.cache, sessionID)
	f.mu.Unlock()
}

func (f *CredentialFederator) cached(sessionID string, role domainauth.Role) (domainstorage.FederatedCredential, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cred, ok := f.cache[sessionID]
	if !ok {
		return domainstorage.FederatedCredential{}, false
	}
	if cred.ScopeRole != role || cred.Expired(f.now().Add(expiryLeeway)) {
		delete(f.cache, sessionID)
		return domainstorage.FederatedCredential{}, false
	}
	return cred, true
}
