package shared

import "github.com/google/uuid"

// Role identifies which identity space a principal belongs to.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Principal is the authenticated caller of an operation. It is resolved
// once at the HTTP boundary and passed explicitly into services so that
// no operation reads ambient session state.
type Principal struct {
	ID   uuid.UUID
	Role Role
}

// IsAdmin reports whether the principal is an administrator.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
