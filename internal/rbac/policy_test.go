package rbac

import "testing"

// The customers/vehicles matrix is the published contract; every
// (role, permission) pair is asserted exactly.
func TestMatrixCustomersAndVehicles(t *testing.T) {
	all := []Permission{
		PermCustomersList, PermCustomersView, PermCustomersCreate, PermCustomersUpdate, PermCustomersDelete,
		PermVehiclesList, PermVehiclesView, PermVehiclesCreate, PermVehiclesUpdate, PermVehiclesDelete,
	}

	allowed := map[Role]map[Permission]bool{
		RoleAdmin: {
			PermCustomersList: true, PermCustomersView: true, PermCustomersCreate: true, PermCustomersUpdate: true, PermCustomersDelete: true,
			PermVehiclesList: true, PermVehiclesView: true, PermVehiclesCreate: true, PermVehiclesUpdate: true, PermVehiclesDelete: true,
		},
		RoleManager: {
			PermCustomersList: true, PermCustomersView: true, PermCustomersCreate: true, PermCustomersUpdate: true, PermCustomersDelete: true,
			PermVehiclesList: true, PermVehiclesView: true, PermVehiclesCreate: true, PermVehiclesUpdate: true, PermVehiclesDelete: true,
		},
		RoleReceptionist: {
			PermCustomersList: true, PermCustomersView: true, PermCustomersCreate: true, PermCustomersUpdate: true,
			PermVehiclesList: true, PermVehiclesView: true, PermVehiclesCreate: true, PermVehiclesUpdate: true,
		},
		RoleTechnician: {
			PermCustomersList: true, PermCustomersView: true,
			PermVehiclesList: true, PermVehiclesView: true, PermVehiclesUpdate: true,
		},
		RoleAccountant: {},
	}

	for _, role := range Roles() {
		for _, perm := range all {
			want := allowed[role][perm]
			if got := HasPermission(role, perm); got != want {
				t.Errorf("HasPermission(%s, %s) = %v, want %v", role, perm, got, want)
			}
		}
	}
}

func TestUnknownRoleDeniedEverything(t *testing.T) {
	for _, perm := range PermissionsForRole(RoleAdmin) {
		if HasPermission(Role("intern"), perm) {
			t.Errorf("unknown role should not have %s", perm)
		}
	}
	if PermissionsForRole(Role("intern")) != nil {
		t.Error("unknown role should have nil permissions")
	}
}

func TestAccountantBillingSurface(t *testing.T) {
	should := []Permission{
		PermInsuranceList, PermInsuranceView,
		PermEstimatesList, PermEstimatesView,
	}
	shouldNot := []Permission{
		PermInsuranceCreate, PermInsuranceUpdate, PermInsuranceDelete,
		PermEstimatesCreate, PermEstimatesUpdate, PermEstimatesDelete, PermEstimatesApprove,
		PermAuditList,
	}

	for _, perm := range should {
		if !HasPermission(RoleAccountant, perm) {
			t.Errorf("accountant should have %s", perm)
		}
	}
	for _, perm := range shouldNot {
		if HasPermission(RoleAccountant, perm) {
			t.Errorf("accountant should NOT have %s", perm)
		}
	}
}

func TestInsuranceDeleteIsAdminOnly(t *testing.T) {
	for _, role := range Roles() {
		want := role == RoleAdmin
		if got := HasPermission(role, PermInsuranceDelete); got != want {
			t.Errorf("HasPermission(%s, %s) = %v, want %v", role, PermInsuranceDelete, got, want)
		}
	}
}

func TestEstimateApproval(t *testing.T) {
	for _, role := range Roles() {
		want := role == RoleAdmin || role == RoleManager
		if got := HasPermission(role, PermEstimatesApprove); got != want {
			t.Errorf("HasPermission(%s, %s) = %v, want %v", role, PermEstimatesApprove, got, want)
		}
	}
}

func TestIsValidRole(t *testing.T) {
	for _, role := range Roles() {
		if !IsValidRole(string(role)) {
			t.Errorf("%s should be a valid role", role)
		}
	}
	if IsValidRole("superuser") {
		t.Error("superuser should not be a valid role")
	}
}
