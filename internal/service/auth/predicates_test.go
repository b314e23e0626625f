package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "backoffice-client/internal/domain/auth"
	xerrors "backoffice-client/internal/pkg/errors"
)

func sessionFor(user domain.User) *domain.Session {
	return &domain.Session{Token: "t", User: user}
}

func TestPredicates(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		svc, _ := newTestService(t, nil, Options{})
		assert.False(t, svc.IsSuperAdmin())
		assert.False(t, svc.IsCompanyAdmin())
		assert.Empty(t, svc.CompanyScope())
		assert.False(t, svc.HasCompanyAccess("1"))
	})

	t.Run("superadmin", func(t *testing.T) {
		svc, _ := newTestService(t, nil, Options{})
		svc.setSession(sessionFor(demoSuperAdminUser))

		assert.True(t, svc.IsSuperAdmin())
		assert.True(t, svc.CanAccessAllCompanies())
		assert.False(t, svc.IsCompanyAdmin())
		assert.Empty(t, svc.CompanyScope())
		assert.True(t, svc.HasCompanyAccess("1"))
		assert.True(t, svc.HasCompanyAccess("999"))
	})

	t.Run("company admin", func(t *testing.T) {
		svc, _ := newTestService(t, nil, Options{})
		svc.setSession(sessionFor(demoCompanyAdminUser))

		assert.False(t, svc.IsSuperAdmin())
		assert.True(t, svc.IsCompanyAdmin())
		assert.Equal(t, "1", svc.CompanyScope())
		assert.True(t, svc.HasCompanyAccess("1"))
		assert.False(t, svc.HasCompanyAccess("2"))
	})
}

func TestSwitchCompany(t *testing.T) {
	ctx := context.Background()

	t.Run("superadmin switch persists and reloads", func(t *testing.T) {
		reloaded := false
		svc, st := newTestService(t, nil, Options{Reload: func() { reloaded = true }})
		svc.setSession(sessionFor(demoSuperAdminUser))

		require.NoError(t, svc.SwitchCompany(ctx, "42"))
		assert.True(t, reloaded)

		v, err := st.Get(ctx, KeyCurrentCompany)
		require.NoError(t, err)
		assert.Equal(t, "42", v)
		assert.Equal(t, "42", svc.CurrentTenant(ctx))
	})

	t.Run("non-superadmin rejected before any write", func(t *testing.T) {
		svc, st := newTestService(t, nil, Options{})
		svc.setSession(sessionFor(demoCompanyAdminUser))

		err := svc.SwitchCompany(ctx, "42")
		assert.ErrorIs(t, err, xerrors.ErrNotSuperAdmin)
		_, gerr := st.Get(ctx, KeyCurrentCompany)
		assert.ErrorIs(t, gerr, xerrors.ErrNotFound)
	})
}

func TestCurrentTenant(t *testing.T) {
	ctx := context.Background()

	t.Run("superadmin without override is unscoped", func(t *testing.T) {
		svc, _ := newTestService(t, nil, Options{})
		svc.setSession(sessionFor(demoSuperAdminUser))
		assert.Empty(t, svc.CurrentTenant(ctx))
	})

	t.Run("company admin ignores any override", func(t *testing.T) {
		svc, st := newTestService(t, nil, Options{})
		svc.setSession(sessionFor(demoCompanyAdminUser))
		require.NoError(t, st.Set(ctx, KeyCurrentCompany, "42"))
		assert.Equal(t, "1", svc.CurrentTenant(ctx))
	})
}
