package auth

import (
	"context"

	domain "backoffice-client/internal/domain/auth"
	xerrors "backoffice-client/internal/pkg/errors"
)

// Pure predicates over the current session. No I/O.

// IsSuperAdmin reports whether the current session has global scope.
func (s *Service) IsSuperAdmin() bool {
	sess := s.Current()
	return sess != nil && sess.User.HasRole(domain.RoleSuperAdmin)
}

// IsCompanyAdmin reports whether the current session administers exactly
// one company.
func (s *Service) IsCompanyAdmin() bool {
	sess := s.Current()
	return sess != nil && sess.User.HasRole(domain.RoleAdmin) && sess.User.EmpresaID != ""
}

// CanAccessAllCompanies is an alias of IsSuperAdmin kept for callers that
// read better with it.
func (s *Service) CanAccessAllCompanies() bool {
	return s.IsSuperAdmin()
}

// CompanyScope returns "" for superadmin (unscoped) and the company id
// otherwise.
func (s *Service) CompanyScope() string {
	if s.IsSuperAdmin() {
		return ""
	}
	sess := s.Current()
	if sess == nil {
		return ""
	}
	return sess.User.EmpresaID
}

// HasCompanyAccess is true for superadmin, otherwise iff the argument
// string-equals the session's company id.
func (s *Service) HasCompanyAccess(empresaID string) bool {
	if s.IsSuperAdmin() {
		return true
	}
	sess := s.Current()
	return sess != nil && sess.User.EmpresaID == empresaID
}

// SwitchCompany persists an operational scope override for superadmins and
// triggers the reload hook. It is a context switch, not a session change:
// user and roles are untouched. Any other caller is rejected before any
// store write happens.
func (s *Service) SwitchCompany(ctx context.Context, empresaID string) error {
	if !s.IsSuperAdmin() {
		return xerrors.ErrNotSuperAdmin
	}
	if err := s.store.Set(ctx, KeyCurrentCompany, empresaID); err != nil {
		return xerrors.Wrap(err, "failed to persist company override")
	}
	if s.opts.Reload != nil {
		s.opts.Reload()
	}
	return nil
}

// CurrentTenant is the operational scope resource services partition by:
// the superadmin's override when one is set, else the session's company.
func (s *Service) CurrentTenant(ctx context.Context) string {
	if s.IsSuperAdmin() {
		if v, err := s.store.Get(ctx, KeyCurrentCompany); err == nil && v != "" {
			return v
		}
		return ""
	}
	return s.CompanyScope()
}
