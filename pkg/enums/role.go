package enums

import "fmt"

// Role represents a StockMaster permissions role.
type Role string

const (
	RoleSuperAdmin  Role = "superadmin"
	RoleGodownAdmin Role = "godownadmin"
	RoleShopAdmin   Role = "shopadmin"
)

var validRoles = []Role{
	RoleSuperAdmin,
	RoleGodownAdmin,
	RoleShopAdmin,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// IsLocationScoped reports whether the role is bound to a single godown/shop.
func (r Role) IsLocationScoped() bool {
	return r == RoleGodownAdmin || r == RoleShopAdmin
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
