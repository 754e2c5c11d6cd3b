package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opsdeskhq/opsdesk/internal/domain"
)

func TestDeriveAdministrativeRolesGetEverything(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin} {
		caps := Derive(role)
		assert.Len(t, caps.Granted(), 9, "%s grants every capability", role)
	}
}

func TestDeriveScopedRoles(t *testing.T) {
	tests := []struct {
		role    domain.Role
		granted []Capability
	}{
		{domain.RoleSales, []Capability{CapManageSales, CapManageCustomers}},
		{domain.RoleMarketer, []Capability{CapManageMarketing, CapManageCustomers}},
		{domain.RoleFinanceManager, []Capability{CapManagePayroll, CapViewFinancials, CapManageExpenses}},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			caps := Derive(tt.role)
			assert.ElementsMatch(t, tt.granted, caps.Granted())
		})
	}
}

func TestDeriveUnknownRoleIsAllFalse(t *testing.T) {
	assert.Empty(t, Derive(domain.Role("intern")).Granted())
	assert.Empty(t, Derive("").Granted())
}

func TestDeriveForUserNilIsAllFalse(t *testing.T) {
	assert.Empty(t, DeriveForUser(nil).Granted())
}

func TestDeriveIsDeterministic(t *testing.T) {
	for _, role := range domain.Roles() {
		assert.Equal(t, Derive(role), Derive(role))
	}
}

func TestHasUnknownCapability(t *testing.T) {
	caps := Derive(domain.RoleSuperAdmin)
	assert.False(t, caps.Has(Capability("launch_rockets")))
}

func TestScopedRolesNeverSeeFinancials(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleSales, domain.RoleMarketer} {
		caps := Derive(role)
		assert.False(t, caps.ViewFinancials, "%s must not view financials", role)
		assert.False(t, caps.ManagePayroll)
		assert.False(t, caps.ViewAllData)
	}
}
