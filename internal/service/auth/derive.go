package auth

import (
	"strings"

	domain "backoffice-client/internal/domain/auth"
)

// DeriveGlobalRoles maps a raw backend user record to the normalized role
// set. Precedence: an explicit non-empty roles list wins outright; a
// superuser without company is a global superadmin; staff with a company is
// that company's admin; everyone else is a plain user.
func DeriveGlobalRoles(u *domain.UserDTO) []domain.Role {
	if len(u.GlobalRoles) > 0 {
		return append([]domain.Role(nil), u.GlobalRoles...)
	}
	if u.IsSuperuser && u.EmpresaID == "" {
		return []domain.Role{domain.RoleSuperAdmin, domain.RolePlatformAdmin}
	}
	if u.IsStaff && u.EmpresaID != "" {
		return []domain.Role{domain.RoleAdmin}
	}
	return []domain.Role{domain.RoleUser}
}

// MapUser converts an untrusted backend record into the normalized identity.
func MapUser(u *domain.UserDTO) domain.User {
	roles := DeriveGlobalRoles(u)

	tenantID := u.TenantID.String()
	if tenantID == "" {
		tenantID = u.EmpresaID.String() // compat
	}

	user := domain.User{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		NombreCompleto: u.NombreCompleto,
		Roles:          roles,
		OrgRoles:       ParseOrgRoles(u.OrgRoles),
		EmpresaID:      u.EmpresaID.String(),
		EmpresaNombre:  u.EmpresaNombre,
		TenantID:       tenantID,
	}
	if user.HasRole(domain.RoleSuperAdmin) {
		user.Permissions = []string{"*"}
	}
	return user
}

// ParseOrgRoles buckets free-form backend org-role strings into the fixed
// vocabulary the UI filters on. Unknown strings fall back to vendedor.
func ParseOrgRoles(raw map[string]string) map[string]domain.OrgRole {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]domain.OrgRole, len(raw))
	for key, value := range raw {
		s := strings.ToLower(value)
		switch {
		case strings.Contains(s, "admin"):
			out[key] = domain.OrgRoleAdministrador
		case strings.Contains(s, "geren"), strings.Contains(s, "manager"):
			out[key] = domain.OrgRoleGerente
		case strings.Contains(s, "cont"):
			out[key] = domain.OrgRoleContador
		case strings.Contains(s, "almac"), strings.Contains(s, "store"), strings.Contains(s, "stock"):
			out[key] = domain.OrgRoleAlmacenista
		default:
			out[key] = domain.OrgRoleVendedor
		}
	}
	return out
}
