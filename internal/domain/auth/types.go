package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// TenantKind identifies which identity authority authenticated a user.
// It is chosen at login start and never changes mid-session.
type TenantKind string

const (
	// TenantCustomer is the external consumer identity tenant used by
	// public customers of the booking portal.
	TenantCustomer TenantKind = "customer"
	// TenantAgent is the internal B2B tenant used by employees and
	// invited partner agents.
	TenantAgent TenantKind = "agent"
)

// Valid reports whether the tenant kind is one of the known values.
func (k TenantKind) Valid() bool {
	return k == TenantCustomer || k == TenantAgent
}

// UserType distinguishes internal employees from B2B-invited partners
// within the agent tenant. It carries no meaning for customer logins.
type UserType string

const (
	UserTypeMember UserType = "Member"
	UserTypeGuest  UserType = "Guest"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
type Role string

const (
	RoleCustomer      Role = "customer"
	RoleEmployeeAgent Role = "employeeAgent"
	RoleGuestAgent    Role = "guestAgent"
	RoleAdmin         Role = "admin"
)

// IsAgentFamily reports whether the role was derived through the agent tenant.
func (r Role) IsAgentFamily() bool {
	return r == RoleEmployeeAgent || r == RoleGuestAgent || r == RoleAdmin
}

// CanMutate reports whether the role may upload or delete documents.
// Customers are read-only.
func (r Role) CanMutate() bool {
	return r.IsAgentFamily()
}

// RawClaims is the typed claim shape adapters produce from an ID token.
// Raw retains the full claim set for audit; authorization decisions only
// ever read the explicit fields during normalization.
type RawClaims struct {
	Email       string
	DisplayName string
	UserType    string   // "Member", "Guest", or empty when the IdP omits it
	Roles       []string // application role assignments (e.g. "Admin")
	Raw         map[string]any
}

// Principal is the canonical record of who is authenticated and with
// what role. Email is lower-cased and immutable after login.
type Principal struct {
	Email           string         `json:"email"`
	DisplayName     string         `json:"display_name"`
	TenantKind      TenantKind     `json:"tenant_kind"`
	UserType        UserType       `json:"user_type,omitempty"`
	Role            Role           `json:"role"`
	ClaimsRaw       map[string]any `json:"claims_raw,omitempty"`
	AuthenticatedAt time.Time      `json:"authenticated_at"`
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier, never the serialized principal.
type Session struct {
	ID        string    `json:"id"`
	Principal Principal `json:"principal"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAdmin reports whether the session principal holds the admin role.
func (s Session) IsAdmin() bool { return s.Principal.Role == RoleAdmin }

// PendingAuth is the transient correlation record for one in-flight
// OIDC exchange. It is keyed by State, consumed exactly once, and
// reclaimed by TTL when the browser never returns from the IdP.
type PendingAuth struct {
	State       string     `json:"state"`
	Nonce       string     `json:"nonce"`
	TenantKind  TenantKind `json:"tenant_kind"`
	RedirectURI string     `json:"redirect_uri"`
	CreatedAt   time.Time  `json:"created_at"`
}
