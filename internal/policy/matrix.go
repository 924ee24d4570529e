package policy

import (
	"fmt"

	"github.com/diewo77/costopro/gate"
	"github.com/diewo77/costopro/internal/models"
)

// Resource types guarded by the matrix.
const (
	ResourcePricing  = "pricing"
	ResourceCatalog  = "catalog"
	ResourceUser     = "user"
	ResourceSettings = "settings"
)

// Operations checked by the services.
var (
	OpComputePricing = gate.NewPermission(ResourcePricing, gate.ActionCompute)
	OpSaveRecord     = gate.NewPermission(ResourceCatalog, gate.ActionCreate)
	OpDeleteRecord   = gate.NewPermission(ResourceCatalog, gate.ActionDelete)
	OpListCatalog    = gate.NewPermission(ResourceCatalog, gate.ActionList)
	OpListUsers      = gate.NewPermission(ResourceUser, gate.ActionList)
	OpCreateUser     = gate.NewPermission(ResourceUser, gate.ActionCreate)
	OpDeleteUser     = gate.NewPermission(ResourceUser, gate.ActionDelete)
	OpUpdateRate     = gate.NewPermission(ResourceSettings, gate.ActionUpdate)
)

// roleProfiles is the single capability table. A role absent from it has
// no permission at all.
var roleProfiles = map[models.Role]*gate.StaticProfile{
	models.RoleAdmin: gate.NewStaticProfile(string(models.RoleAdmin), gate.PermissionSuperAdmin),
	models.RoleUser: gate.NewStaticProfile(string(models.RoleUser),
		OpComputePricing,
		OpSaveRecord,
		OpDeleteRecord,
		OpListCatalog,
		OpListUsers,
		OpUpdateRate,
	),
	models.RoleViewer: gate.NewStaticProfile(string(models.RoleViewer),
		OpComputePricing,
		OpListCatalog,
		OpListUsers,
	),
}

// ProfileFor returns the permission profile of role, or nil for an unknown role.
func ProfileFor(role models.Role) gate.Profile {
	p, ok := roleProfiles[role]
	if !ok {
		return nil
	}
	return p
}

// Can reports whether role may perform op.
func Can(role models.Role, op gate.Permission) bool {
	p := ProfileFor(role)
	return p != nil && p.HasPermission(op)
}

// Authorize returns nil when role may perform op, ErrAuthorization otherwise.
func Authorize(role models.Role, op gate.Permission) error {
	if !Can(role, op) {
		return fmt.Errorf("%w: role %q cannot %s", ErrAuthorization, role, op)
	}
	return nil
}
