package models

// Roles recognized by the access-control layer. RoleRegionalAdmin passes every
// role check system-wide.
const (
	RoleSecretary     = "secretary"
	RoleAccountant    = "accountant"
	RoleGroupAdmin    = "group_admin"
	RoleRegionalAdmin = "regional_admin"
)

// ValidRole reports whether role is one of the recognized role names.
func ValidRole(role string) bool {
	switch role {
	case RoleSecretary, RoleAccountant, RoleGroupAdmin, RoleRegionalAdmin:
		return true
	}
	return false
}
