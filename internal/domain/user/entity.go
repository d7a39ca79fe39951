package user

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

// ResetLookupOrder is the order accounts are searched when a reset request
// does not name a role.
var ResetLookupOrder = []Role{RoleEmployee, RoleHR, RoleAdmin}

// ParseRole validates a role string.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleAdmin, RoleHR, RoleEmployee:
		return r, true
	}
	return "", false
}

// Account is the credential slice shared by admins, HR staff and employees.
type Account struct {
	ID           string
	Username     string
	Email        *string
	PasswordHash string
	Role         Role
}
