package domain

import "time"

// Role is the closed enumeration of backend roles.
// Permission derivation keys off this value alone; there are no per-user
// overrides.
type Role string

const (
	// RoleSuperAdmin is the top-level administrative role. It is the only
	// role permitted to preview other roles via role switching.
	RoleSuperAdmin Role = "super_admin"
	// RoleAdmin is a full administrative role without role switching.
	RoleAdmin Role = "admin"
	// RoleSales manages sales and customers.
	RoleSales Role = "sales"
	// RoleMarketer manages marketing campaigns and customers.
	RoleMarketer Role = "marketer"
	// RoleFinanceManager manages payroll, expenses, and financial views.
	RoleFinanceManager Role = "finance_manager"
)

// Roles lists every defined role, in display order.
func Roles() []Role {
	return []Role{RoleSuperAdmin, RoleAdmin, RoleSales, RoleMarketer, RoleFinanceManager}
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleSales, RoleMarketer, RoleFinanceManager:
		return true
	default:
		return false
	}
}

// String returns the wire value of the role.
func (r Role) String() string {
	return string(r)
}

// User represents a backend user: identity, role, and profile fields.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      Role      `json:"role"`
	Status    string    `json:"status,omitempty"`
	HireDate  string    `json:"hire_date,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}
