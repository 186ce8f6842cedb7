// config/security_config.go
package config

import "carrotrent-backend/internal/domain"

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
)

// Route names shared by the router and the security table.
const (
	RouteAccountRegister   = "account.register"
	RouteAccountLogin      = "account.login"
	RouteAccountVerify     = "account.verify"
	RouteAccountUnverified = "account.unverified"
	RouteAccountEmployee   = "account.register.employee"

	RouteVehicleCreate  = "vehicle.create"
	RouteVehicleUpdate  = "vehicle.update"
	RouteVehicleDelete  = "vehicle.delete"
	RouteVehicleList    = "vehicle.list"
	RouteVehicleGet     = "vehicle.get"
	RouteVehicleFilters = "vehicle.filters"

	RouteDepartmentList = "department.list"
	RouteDepartmentGet  = "department.get"

	RouteRentCreate         = "rent.create"
	RouteRentListMine       = "rent.my"
	RouteRentListMyArchived = "rent.my.archived"
	RouteRentGet            = "rent.get"
	RouteRentCancel         = "rent.cancel"
	RouteRentIssue          = "rent.issue"
	RouteRentReceive        = "rent.receive"
	RouteDepartmentRents    = "department.rents"
	RouteDepartmentArchived = "department.rents.archived"
	RouteHealth             = "health"
	RouteMetrics            = "metrics"
)

// RouteSecurity describes who may call a route. An empty Roles list admits
// every authenticated user.
type RouteSecurity struct {
	Level SecurityLevel
	Roles []domain.Role
}

func (s RouteSecurity) Allows(role domain.Role) bool {
	if s.Level == SecurityPublic || len(s.Roles) == 0 {
		return true
	}
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

var (
	staffRoles   = []domain.Role{domain.RoleEmployee, domain.RoleManager}
	managerRoles = []domain.Role{domain.RoleManager}
	clientRoles  = []domain.Role{domain.RoleClient}
	viewerRoles  = []domain.Role{domain.RoleClient, domain.RoleEmployee, domain.RoleManager}
)

// EndpointSecurityConfig maps route names to their required security
var EndpointSecurityConfig = map[string]RouteSecurity{
	// Account - Public
	RouteAccountRegister: {Level: SecurityPublic},
	RouteAccountLogin:    {Level: SecurityPublic},

	// Account - Staff
	RouteAccountVerify:     {Level: SecurityAccess, Roles: staffRoles},
	RouteAccountUnverified: {Level: SecurityAccess, Roles: staffRoles},

	// Account - Manager
	RouteAccountEmployee: {Level: SecurityAccess, Roles: managerRoles},

	// Vehicle
	RouteVehicleList:    {Level: SecurityPublic},
	RouteVehicleGet:     {Level: SecurityPublic},
	RouteVehicleFilters: {Level: SecurityPublic},
	RouteVehicleCreate:  {Level: SecurityAccess, Roles: managerRoles},
	RouteVehicleUpdate:  {Level: SecurityAccess, Roles: staffRoles},
	RouteVehicleDelete:  {Level: SecurityAccess, Roles: managerRoles},

	// Rent
	RouteRentCreate:         {Level: SecurityAccess, Roles: clientRoles},
	RouteRentListMine:       {Level: SecurityAccess, Roles: clientRoles},
	RouteRentListMyArchived: {Level: SecurityAccess, Roles: clientRoles},
	RouteRentGet:            {Level: SecurityAccess, Roles: viewerRoles},
	RouteRentCancel:         {Level: SecurityAccess, Roles: viewerRoles},
	RouteRentIssue:          {Level: SecurityAccess, Roles: staffRoles},
	RouteRentReceive:        {Level: SecurityAccess, Roles: staffRoles},

	// Department
	RouteDepartmentList:     {Level: SecurityPublic},
	RouteDepartmentGet:      {Level: SecurityPublic},
	RouteDepartmentRents:    {Level: SecurityAccess, Roles: staffRoles},
	RouteDepartmentArchived: {Level: SecurityAccess, Roles: staffRoles},

	// Operational
	RouteHealth:  {Level: SecurityPublic},
	RouteMetrics: {Level: SecurityPublic},
}

// GetRouteSecurity returns the security settings for a given route name
func GetRouteSecurity(route string) RouteSecurity {
	if sec, exists := EndpointSecurityConfig[route]; exists {
		return sec
	}
	// Default to highest security for unknown endpoints
	return RouteSecurity{Level: SecurityAccess}
}
