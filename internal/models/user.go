package models

// Role is the closed set of authorization roles.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleUser   Role = "user"
	RoleViewer Role = "viewer"
)

// Roles lists every valid role.
func Roles() []Role { return []Role{RoleAdmin, RoleUser, RoleViewer} }

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleViewer:
		return true
	}
	return false
}

// BootstrapAdminID is the seeded administrator. It can never be deleted.
const BootstrapAdminID uint = 1

// User represents an entry of the identity store.
type User struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	// Credential is whatever the configured verifier stores (plaintext or a
	// bcrypt hash). Persisted, never rendered by the HTTP layer.
	Credential string `json:"credential,omitempty"`
	Role       Role   `json:"role"`
}

// IsBootstrapAdmin reports whether u is the protected administrator.
func (u *User) IsBootstrapAdmin() bool { return u.ID == BootstrapAdminID }

// Redacted returns a copy without the credential.
func (u User) Redacted() User {
	u.Credential = ""
	return u
}
