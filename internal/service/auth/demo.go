package auth

import (
	domain "backoffice-client/internal/domain/auth"
)

// Fixed demo accounts for local evaluation and test fixtures. They bypass
// the network entirely and are only reachable when cfg.DemoMode is on.

const (
	demoSuperAdminToken   = "demo-superadmin-token"
	demoCompanyAdminToken = "demo-company-admin-token"

	demoSuperAdminEmail    = "admin@plataforma.com"
	demoSuperAdminPassword = "superadmin123"

	demoCompanyAdminEmail    = "vagner@gmail.com"
	demoCompanyAdminPassword = "sssssssssssssssssssss"
)

// Superadmin: global scope, no company.
var demoSuperAdminUser = domain.User{
	ID:             "superadmin_1",
	Username:       "superadmin",
	Email:          demoSuperAdminEmail,
	NombreCompleto: "Super Administrador",
	Roles:          []domain.Role{domain.RoleSuperAdmin, domain.RolePlatformAdmin},
	Permissions:    []string{"*"},
}

// Company admin: scoped to exactly one company.
var demoCompanyAdminUser = domain.User{
	ID:             "admin_empresa_1",
	Username:       "vagner",
	Email:          demoCompanyAdminEmail,
	NombreCompleto: "Vagner Merlin",
	Roles:          []domain.Role{domain.RoleAdmin},
	EmpresaID:      "1",
	EmpresaNombre:  "Empresa Demo S.A.",
	TenantID:       "1",
}

// matchDemoCredentials resolves a canned session for the two fixed pairs.
func matchDemoCredentials(email, password string) (*domain.Session, string, bool) {
	switch {
	case email == demoSuperAdminEmail && password == demoSuperAdminPassword:
		return &domain.Session{Token: demoSuperAdminToken, User: demoSuperAdminUser},
			"Login exitoso como Superadmin (modo demo)", true
	case email == demoCompanyAdminEmail && password == demoCompanyAdminPassword:
		return &domain.Session{Token: demoCompanyAdminToken, User: demoCompanyAdminUser},
			"Login exitoso como Admin de Empresa (modo demo)", true
	}
	return nil, "", false
}

// demoSessionForToken lets profile refresh recognize a demo token without a
// round trip.
func demoSessionForToken(token string) (*domain.Session, bool) {
	switch token {
	case demoSuperAdminToken:
		return &domain.Session{Token: token, User: demoSuperAdminUser}, true
	case demoCompanyAdminToken:
		return &domain.Session{Token: token, User: demoCompanyAdminUser}, true
	}
	return nil, false
}
