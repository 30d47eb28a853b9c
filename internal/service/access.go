package service

import (
	"context"
	"strings"

	domainauth "github.com/tripgate/portal-api/internal/domain/auth"
	domainstorage "github.com/tripgate/portal-api/internal/domain/storage"
	apperrors "github.com/tripgate/portal-api/internal/errors"
	"github.com/tripgate/portal-api/internal/ports"
)

// AccessAuthorizer decides allow/deny for one resource path against one
// principal. It runs on every resource access: the role never changes
// within a session, but the requested path changes on every call.
type AccessAuthorizer struct {
	// relationships is optional; when nil, agents only reach the shared
	// agents/ prefix.
	relationships ports.RelationshipDirectory
}

// NewAccessAuthorizer constructs the authorizer. relationships may be nil.
func NewAccessAuthorizer(relationships ports.RelationshipDirectory) *AccessAuthorizer {
	return &AccessAuthorizer{relationships: relationships}
}

// Authorize returns nil to allow, or a denial AppError (path_traversal or
// role_not_permitted). Denials are binary; a denied path is never
// rewritten to an allowed one.
func (a *AccessAuthorizer) Authorize(ctx context.Context, p domainauth.Principal, resourcePath string, op domainstorage.Operation) error {
	if hasTraversal(resourcePath) {
		return apperrors.Deny(apperrors.ErrCodePathTraversal, "resource path contains a parent-directory segment")
	}

	if op == domainstorage.OpMutate && !p.Role.CanMutate() {
		return apperrors.Deny(apperrors.ErrCodeRoleNotPermitted, "role has no write capability")
	}

	if p.Role == domainauth.RoleAdmin {
		return nil
	}

	for _, prefix := range a.allowedPrefixes(ctx, p) {
		if strings.HasPrefix(resourcePath, prefix) {
			return nil
		}
	}

	return apperrors.Deny(apperrors.ErrCodePathTraversal, "resource path is outside the role's folder")
}

// HomePrefix returns the folder a principal's listings default to.
// Admin has no restriction and gets the bucket root.
func HomePrefix(p domainauth.Principal) string {
	switch p.Role {
	case domainauth.RoleCustomer:
		return "customers/" + SanitizeEmailSegment(p.Email) + "/"
	case domainauth.RoleEmployeeAgent, domainauth.RoleGuestAgent:
		return "agents/"
	default:
		return ""
	}
}

func (a *AccessAuthorizer) allowedPrefixes(ctx context.Context, p domainauth.Principal) []string {
	switch p.Role {
	case domainauth.RoleCustomer:
		return []string{"customers/" + SanitizeEmailSegment(p.Email) + "/"}
	case domainauth.RoleEmployeeAgent, domainauth.RoleGuestAgent:
		prefixes := []string{"agents/"}
		if a.relationships != nil {
			customers, err := a.relationships.CustomersFor(ctx, p.Email)
			if err == nil {
				for _, c := range customers {
					prefixes = append(prefixes, "customers/"+SanitizeEmailSegment(c)+"/")
				}
			}
			// A directory failure narrows access to agents/ rather than
			// widening it.
		}
		return prefixes
	default:
		return nil
	}
}

// hasTraversal reports whether the path could escape its folder prefix.
func hasTraversal(p string) bool {
	if p == "" {
		return true
	}
	if strings.HasPrefix(p, "/") || strings.Contains(p, "\\") {
		return true
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." || seg == "." {
			return true
		}
	}
	return false
}

// SanitizeEmailSegment lower-cases an email and strips characters that
// carry meaning in object keys, so it is safe as a single path segment.
func SanitizeEmailSegment(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	var b strings.Builder
	b.Grow(len(email))
	for _, r := range email {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9',
			r == '@', r == '.', r == '_', r == '-', r == '+':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
