// Package authz derives UI-facing capabilities from a user's role.
//
// Derivation is a pure, total function of the role: every defined role maps
// to a fully-populated capability record, and an absent or unrecognized role
// maps to all-false. Capabilities are never cached across a role change; the
// session controller recomputes them on every user transition.
package authz

import "github.com/opsdeskhq/opsdesk/internal/domain"

// Capabilities is the fixed record of named booleans gating UI sections.
type Capabilities struct {
	ManageStaff      bool `json:"manage_staff"`
	ManagePayroll    bool `json:"manage_payroll"`
	ViewFinancials   bool `json:"view_financials"`
	ManageProduction bool `json:"manage_production"`
	ManageSales      bool `json:"manage_sales"`
	ManageMarketing  bool `json:"manage_marketing"`
	ManageExpenses   bool `json:"manage_expenses"`
	ViewAllData      bool `json:"view_all_data"`
	ManageCustomers  bool `json:"manage_customers"`
}

// Capability names a single capability for guard declarations and messages.
type Capability string

const (
	CapManageStaff      Capability = "manage_staff"
	CapManagePayroll    Capability = "manage_payroll"
	CapViewFinancials   Capability = "view_financials"
	CapManageProduction Capability = "manage_production"
	CapManageSales      Capability = "manage_sales"
	CapManageMarketing  Capability = "manage_marketing"
	CapManageExpenses   Capability = "manage_expenses"
	CapViewAllData      Capability = "view_all_data"
	CapManageCustomers  Capability = "manage_customers"
)

// Derive maps a role to its capability record. Unknown roles get all-false.
func Derive(role domain.Role) Capabilities {
	switch role {
	case domain.RoleSuperAdmin, domain.RoleAdmin:
		return Capabilities{
			ManageStaff:      true,
			ManagePayroll:    true,
			ViewFinancials:   true,
			ManageProduction: true,
			ManageSales:      true,
			ManageMarketing:  true,
			ManageExpenses:   true,
			ViewAllData:      true,
			ManageCustomers:  true,
		}
	case domain.RoleSales:
		return Capabilities{
			ManageSales:     true,
			ManageCustomers: true,
		}
	case domain.RoleMarketer:
		return Capabilities{
			ManageMarketing: true,
			ManageCustomers: true,
		}
	case domain.RoleFinanceManager:
		return Capabilities{
			ManagePayroll:  true,
			ViewFinancials: true,
			ManageExpenses: true,
		}
	default:
		return Capabilities{}
	}
}

// DeriveForUser maps a nullable user to capabilities. A nil user means an
// anonymous session and yields all-false.
func DeriveForUser(u *domain.User) Capabilities {
	if u == nil {
		return Capabilities{}
	}
	return Derive(u.Role)
}

// Has reports whether the named capability is granted.
func (c Capabilities) Has(cap Capability) bool {
	switch cap {
	case CapManageStaff:
		return c.ManageStaff
	case CapManagePayroll:
		return c.ManagePayroll
	case CapViewFinancials:
		return c.ViewFinancials
	case CapManageProduction:
		return c.ManageProduction
	case CapManageSales:
		return c.ManageSales
	case CapManageMarketing:
		return c.ManageMarketing
	case CapManageExpenses:
		return c.ManageExpenses
	case CapViewAllData:
		return c.ViewAllData
	case CapManageCustomers:
		return c.ManageCustomers
	default:
		return false
	}
}

// Granted lists the names of all granted capabilities, in declaration order.
func (c Capabilities) Granted() []Capability {
	all := []Capability{
		CapManageStaff, CapManagePayroll, CapViewFinancials,
		CapManageProduction, CapManageSales, CapManageMarketing,
		CapManageExpenses, CapViewAllData, CapManageCustomers,
	}
	var granted []Capability
	for _, cap := range all {
		if c.Has(cap) {
			granted = append(granted, cap)
		}
	}
	return granted
}
