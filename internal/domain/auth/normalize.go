package auth

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// Normalizer derives a Principal from the raw claim set an authority
// returned. It is pure: no I/O, and identical input always yields an
// identical Principal.
type Normalizer struct {
	// AdminRole is the application-role claim value that elevates an
	// agent-tenant login to admin. Defaults to "Admin" when empty.
	AdminRole string
}

// DefaultAdminRole is the admin application-role claim value used when
// none is configured.
const DefaultAdminRole = "Admin"

// Normalize maps a raw claim set plus the tenant that authenticated it
// into a canonical Principal.
//
// Rules:
//   - email is required and must be syntactically valid; it is stored
//     lower-cased.
//   - customer tenant always yields RoleCustomer.
//   - agent tenant: the admin application role dominates; otherwise a
//     Guest user type yields RoleGuestAgent and anything else (including
//     an absent userType claim) yields RoleEmployeeAgent.
func (n Normalizer) Normalize(kind TenantKind, claims RawClaims, at time.Time) (Principal, error) {
	if !kind.Valid() {
		return Principal{}, fmt.Errorf("unknown tenant kind %q", kind)
	}

	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if email == "" {
		return Principal{}, fmt.Errorf("email claim is missing")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return Principal{}, fmt.Errorf("email claim %q is not a valid address: %w", email, err)
	}

	p := Principal{
		Email:           email,
		DisplayName:     strings.TrimSpace(claims.DisplayName),
		TenantKind:      kind,
		ClaimsRaw:       claims.Raw,
		AuthenticatedAt: at,
	}

	if kind == TenantCustomer {
		p.Role = RoleCustomer
		return p, nil
	}

	// Agent tenant: not all IdPs populate userType for member accounts,
	// so absence defaults to Member rather than failing.
	p.UserType = UserTypeMember
	if claims.UserType == string(UserTypeGuest) {
		p.UserType = UserTypeGuest
	}

	switch {
	case n.hasAdminRole(claims.Roles):
		// Admin dominates the employee/guest distinction; UserType is
		// retained for display only.
		p.Role = RoleAdmin
	case p.UserType == UserTypeGuest:
		p.Role = RoleGuestAgent
	default:
		p.Role = RoleEmployeeAgent
	}

	return p, nil
}

func (n Normalizer) hasAdminRole(roles []string) bool {
	adminRole := n.AdminRole
	if adminRole == "" {
		adminRole = DefaultAdminRole
	}
	for _, r := range roles {
		if r == adminRole {
			return true
		}
	}
	return false
}
