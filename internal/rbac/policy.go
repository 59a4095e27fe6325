// Package rbac holds the static role-based authorisation policy.
package rbac

// Role is one of the five fixed staff roles.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleManager      Role = "manager"
	RoleReceptionist Role = "receptionist"
	RoleTechnician   Role = "technician"
	RoleAccountant   Role = "accountant"
)

// Permission names a (resource, action) pair.
type Permission string

const (
	PermCustomersList   Permission = "customers:list"
	PermCustomersView   Permission = "customers:view"
	PermCustomersCreate Permission = "customers:create"
	PermCustomersUpdate Permission = "customers:update"
	PermCustomersDelete Permission = "customers:delete"

	PermVehiclesList   Permission = "vehicles:list"
	PermVehiclesView   Permission = "vehicles:view"
	PermVehiclesCreate Permission = "vehicles:create"
	PermVehiclesUpdate Permission = "vehicles:update"
	PermVehiclesDelete Permission = "vehicles:delete"

	PermInsuranceList   Permission = "insurance_companies:list"
	PermInsuranceView   Permission = "insurance_companies:view"
	PermInsuranceCreate Permission = "insurance_companies:create"
	PermInsuranceUpdate Permission = "insurance_companies:update"
	PermInsuranceDelete Permission = "insurance_companies:delete"

	PermEstimatesList    Permission = "estimates:list"
	PermEstimatesView    Permission = "estimates:view"
	PermEstimatesCreate  Permission = "estimates:create"
	PermEstimatesUpdate  Permission = "estimates:update"
	PermEstimatesDelete  Permission = "estimates:delete"
	PermEstimatesApprove Permission = "estimates:approve"

	PermAuditList Permission = "audit:list"
)

// rolePermissions maps each role to its granted permissions.
// This is the single source of truth for the authorisation model;
// there is no wildcard and no inheritance between roles.
var rolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermCustomersList, PermCustomersView, PermCustomersCreate, PermCustomersUpdate, PermCustomersDelete,
		PermVehiclesList, PermVehiclesView, PermVehiclesCreate, PermVehiclesUpdate, PermVehiclesDelete,
		PermInsuranceList, PermInsuranceView, PermInsuranceCreate, PermInsuranceUpdate, PermInsuranceDelete,
		PermEstimatesList, PermEstimatesView, PermEstimatesCreate, PermEstimatesUpdate, PermEstimatesDelete, PermEstimatesApprove,
		PermAuditList,
	},
	RoleManager: {
		PermCustomersList, PermCustomersView, PermCustomersCreate, PermCustomersUpdate, PermCustomersDelete,
		PermVehiclesList, PermVehiclesView, PermVehiclesCreate, PermVehiclesUpdate, PermVehiclesDelete,
		PermInsuranceList, PermInsuranceView, PermInsuranceCreate, PermInsuranceUpdate,
		PermEstimatesList, PermEstimatesView, PermEstimatesCreate, PermEstimatesUpdate, PermEstimatesDelete, PermEstimatesApprove,
	},
	RoleReceptionist: {
		PermCustomersList, PermCustomersView, PermCustomersCreate, PermCustomersUpdate,
		PermVehiclesList, PermVehiclesView, PermVehiclesCreate, PermVehiclesUpdate,
		PermInsuranceList, PermInsuranceView,
		PermEstimatesList, PermEstimatesView, PermEstimatesCreate, PermEstimatesUpdate,
	},
	RoleTechnician: {
		PermCustomersList, PermCustomersView,
		PermVehiclesList, PermVehiclesView, PermVehiclesUpdate,
		PermInsuranceList, PermInsuranceView,
		PermEstimatesList, PermEstimatesView,
	},
	// Accountant has no customer or vehicle access yet; the role exists
	// for the billing surface (insurance companies, estimates).
	RoleAccountant: {
		PermInsuranceList, PermInsuranceView,
		PermEstimatesList, PermEstimatesView,
	},
}

// HasPermission returns true if the given role grants the permission.
// Unknown roles are denied everything.
func HasPermission(role Role, perm Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}

// PermissionsForRole returns a copy of all permissions granted to a role,
// nil for unknown roles.
func PermissionsForRole(role Role) []Permission {
	perms := rolePermissions[role]
	if perms == nil {
		return nil
	}
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// Roles returns the five known roles.
func Roles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleReceptionist, RoleTechnician, RoleAccountant}
}

// IsValidRole reports whether the name is one of the fixed roles.
func IsValidRole(name string) bool {
	_, ok := rolePermissions[Role(name)]
	return ok
}
