package service

import (
	"context"
	"fmt"
	"time"

	domainauth "github.com/tripgate/portal-api/internal/domain/auth"
	domainstorage "github.com/tripgate/portal-api/internal/domain/storage"
	"github.com/tripgate/portal-api/internal/ports"
)

// DocumentServiceOptions groups dependencies for DocumentService.
type DocumentServiceOptions struct {
	Authorizer *AccessAuthorizer
	Federator  *CredentialFederator
	Store      ports.DocumentStore
	// PresignTTL is how long download links stay valid.
	PresignTTL time.Duration
}

// DocumentService performs document operations on behalf of a session.
// Every operation authorizes the requested path first, then acts with the
// session's federated credential — never a static one.
type DocumentService struct {
	authorizer *AccessAuthorizer
	federator  *CredentialFederator
	store      ports.DocumentStore
	presignTTL time.Duration
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(opts DocumentServiceOptions) *DocumentService {
	ttl := opts.PresignTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &DocumentService{
		authorizer: opts.Authorizer,
		federator:  opts.Federator,
		store:      opts.Store,
		presignTTL: ttl,
	}
}

// List returns objects under prefix; an empty prefix defaults to the
// principal's home folder.
func (s *DocumentService) List(ctx context.Context, sess domainauth.Session, prefix string) ([]domainstorage.Object, error) {
	if prefix == "" {
		prefix = HomePrefix(sess.Principal)
	}
	// Admin listing the bucket root has no prefix to authorize.
	if prefix != "" {
		if err := s.authorizer.Authorize(ctx, sess.Principal, prefix, domainstorage.OpRead); err != nil {
			return nil, err
		}
	} else if sess.Principal.Role != domainauth.RoleAdmin {
		return nil, fmt.Errorf("no home prefix for role %s", sess.Principal.Role)
	}

	cred, err := s.obtain(ctx, sess)
	if err != nil {
		return nil, err
	}
	return s.store.List(ctx, cred, prefix)
}

// Upload stores a document at key.
func (s *DocumentService) Upload(ctx context.Context, sess domainauth.Session, key string, body []byte, contentType string) error {
	if err := s.authorizer.Authorize(ctx, sess.Principal, key, domainstorage.OpMutate); err != nil {
		return err
	}
	cred, err := s.obtain(ctx, sess)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, cred, key, body, contentType)
}

// Delete removes the document at key.
func (s *DocumentService) Delete(ctx context.Context, sess domainauth.Session, key string) error {
	if err := s.authorizer.Authorize(ctx, sess.Principal, key, domainstorage.OpMutate); err != nil {
		return err
	}
	cred, err := s.obtain(ctx, sess)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, cred, key)
}

// DownloadLink returns a presigned GET URL for key.
func (s *DocumentService) DownloadLink(ctx context.Context, sess domainauth.Session, key string) (string, error) {
	if err := s.authorizer.Authorize(ctx, sess.Principal, key, domainstorage.OpRead); err != nil {
		return "", err
	}
	cred, err := s.obtain(ctx, sess)
	if err != nil {
		return "", err
	}
	return s.store.PresignGet(ctx, cred, key, s.presignTTL)
}

func (s *DocumentService) obtain(ctx context.Context, sess domainauth.Session) (domainstorage.FederatedCredential, error) {
	return s.federator.Obtain(ctx, sess.ID, sess.Principal.Role, sess.Principal.Email)
}
