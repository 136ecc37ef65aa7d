package domain

import "time"

// Role enumerates the closed set of user roles.
type Role string

const (
	RoleTenant     Role = "tenant"
	RoleManager    Role = "manager"
	RoleTechnician Role = "technician"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleTenant, RoleManager, RoleTechnician:
		return true
	}
	return false
}

// User is an account in the property: a tenant, the manager, or a technician.
// Role is immutable after creation; IsApproved flips to true exactly once via
// the manager approval action.
type User struct {
	ID             string
	Username       string
	FullName       string
	Email          string
	PhoneNumber    string
	CredentialHash string
	Role           Role
	IsApproved     bool
	CreatedAt      time.Time
}
