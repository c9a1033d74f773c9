package constants

const (
	RoleWorker     = "worker"
	RoleSupervisor = "supervisor"
	RoleOperator   = "operator"
)

// AllowedRoles: any authenticated principal.
var AllowedRoles = []string{RoleWorker, RoleSupervisor, RoleOperator}

// StaffRoles: may record attendance and inspect shift rosters.
var StaffRoles = []string{RoleSupervisor, RoleOperator}
