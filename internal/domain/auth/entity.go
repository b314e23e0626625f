package auth

import "backoffice-client/internal/domain/shared"

// Role is a global role tag derived from the backend user record.
type Role string

const (
	RoleSuperAdmin    Role = "superadmin"
	RolePlatformAdmin Role = "platform_admin"
	RoleAdmin         Role = "admin"
	RoleUser          Role = "user"
)

// OrgRole is an organization-scoped role normalized into a fixed vocabulary.
type OrgRole string

const (
	OrgRoleAdministrador OrgRole = "administrador"
	OrgRoleGerente       OrgRole = "gerente"
	OrgRoleContador      OrgRole = "contador"
	OrgRoleAlmacenista   OrgRole = "almacenista"
	OrgRoleVendedor      OrgRole = "vendedor"
)

// FlexID is re-exported so auth DTOs read naturally.
type FlexID = shared.FlexID

// User is the normalized identity the rest of the application trusts.
type User struct {
	ID             FlexID             `json:"id"`
	Username       string             `json:"username"`
	Email          string             `json:"email"`
	NombreCompleto string             `json:"nombre_completo,omitempty"`
	Roles          []Role             `json:"roles"`
	OrgRoles       map[string]OrgRole `json:"org_roles,omitempty"`
	EmpresaID      string             `json:"empresa_id,omitempty"`
	EmpresaNombre  string             `json:"empresa_nombre,omitempty"`
	TenantID       string             `json:"tenant_id,omitempty"` // compat alias of EmpresaID
	Permissions    []string           `json:"permissions,omitempty"`
}

// HasRole reports whether the user carries the given global role.
func (u *User) HasRole(role Role) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Session pairs the normalized user with the opaque bearer credential.
// Mutated only by whole replacement, never field by field.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
