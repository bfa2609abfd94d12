package models

// Role defines a staff account role
type Role string

const (
	RoleSuperAdmin Role = "super-admin"
	RoleAdmin      Role = "admin"
	RoleInstructor Role = "instructor"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleInstructor:
		return true
	}
	return false
}
