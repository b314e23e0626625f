package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"backoffice-client/internal/apiclient"
	domain "backoffice-client/internal/domain/auth"
	xerrors "backoffice-client/internal/pkg/errors"
	"backoffice-client/internal/store"
)

func newTestService(t *testing.T, handler http.Handler, opts Options) (*Service, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	baseURL := "http://127.0.0.1:0" // unreachable unless a server is given
	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		baseURL = srv.URL
	}
	api := apiclient.New(baseURL, TokenSource(st), zap.NewNop())
	return NewService(api, st, zap.NewNop(), opts), st
}

func TestLoginDemoCredentials(t *testing.T) {
	ctx := context.Background()

	t.Run("superadmin pair", func(t *testing.T) {
		svc, st := newTestService(t, nil, Options{DemoMode: true})

		res := svc.Login(ctx, demoSuperAdminEmail, demoSuperAdminPassword)
		require.True(t, res.Success)
		require.NotNil(t, res.Session)
		assert.Equal(t, demoSuperAdminToken, res.Session.Token)
		assert.True(t, res.Session.User.HasRole(domain.RoleSuperAdmin))
		assert.Empty(t, res.EmpresaID)

		tok, err := st.Get(ctx, KeyToken)
		require.NoError(t, err)
		assert.Equal(t, demoSuperAdminToken, tok)
		_, err = st.Get(ctx, KeyEmpresaID)
		assert.ErrorIs(t, err, xerrors.ErrNotFound)
	})

	t.Run("company admin pair", func(t *testing.T) {
		svc, st := newTestService(t, nil, Options{DemoMode: true})

		res := svc.Login(ctx, demoCompanyAdminEmail, demoCompanyAdminPassword)
		require.True(t, res.Success)
		assert.Equal(t, "1", res.EmpresaID)
		assert.True(t, res.Session.User.HasRole(domain.RoleAdmin))

		id, err := st.Get(ctx, KeyEmpresaID)
		require.NoError(t, err)
		assert.Equal(t, "1", id)
	})

	t.Run("demo pairs inert when demo mode is off", func(t *testing.T) {
		svc, _ := newTestService(t, nil, Options{DemoMode: false})

		res := svc.Login(ctx, demoSuperAdminEmail, demoSuperAdminPassword)
		assert.False(t, res.Success)
		assert.Nil(t, svc.Current())
	})
}

func TestLoginAgainstBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("nested user payload", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"token": "tok-1",
				"message": "Login exitoso",
				"user": {"id": 7, "username": "ana", "email": "ana@acme.com", "is_staff": true},
				"empresa_id": 3,
				"empresa_nombre": "Acme"
			}`))
		})
		svc, st := newTestService(t, mux, Options{})

		res := svc.Login(ctx, "ana@acme.com", "secret")
		require.True(t, res.Success, res.Message)
		assert.Equal(t, "Login exitoso", res.Message)
		assert.Equal(t, "3", res.EmpresaID)
		assert.Equal(t, "Acme", res.Session.User.EmpresaNombre)

		tok, err := st.Get(ctx, KeyToken)
		require.NoError(t, err)
		assert.Equal(t, "tok-1", tok)
	})

	t.Run("flattened payload", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"token": "tok-2", "user_id": "11", "is_staff": true, "empresa_id": "4"}`))
		})
		svc, _ := newTestService(t, mux, Options{})

		res := svc.Login(ctx, "x@y.com", "secret")
		require.True(t, res.Success, res.Message)
		assert.Equal(t, "11", res.Session.User.ID.String())
		// login email fills the blank the flattened payload left.
		assert.Equal(t, "x@y.com", res.Session.User.Email)
		assert.Equal(t, "Login exitoso", res.Message)
	})

	t.Run("missing token rejected despite HTTP 200", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"message": "ok"}`))
		})
		svc, _ := newTestService(t, mux, Options{})

		res := svc.Login(ctx, "x@y.com", "secret")
		assert.False(t, res.Success)
	})

	t.Run("non-superadmin without company rejected despite HTTP 200", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"token": "tok-3", "user": {"id": 1, "is_staff": true}}`))
		})
		svc, st := newTestService(t, mux, Options{})

		res := svc.Login(ctx, "x@y.com", "secret")
		require.False(t, res.Success)
		assert.Equal(t, xerrors.ErrNoCompany.Error(), res.Message)
		assert.Nil(t, svc.Current())
		_, err := st.Get(ctx, KeyToken)
		assert.ErrorIs(t, err, xerrors.ErrNotFound)
	})

	t.Run("backend field error surfaces in message", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"email": ["Este campo es requerido."]}`))
		})
		svc, _ := newTestService(t, mux, Options{})

		res := svc.Login(ctx, "", "secret")
		require.False(t, res.Success)
		assert.Equal(t, "Error en email: Este campo es requerido.", res.Message)
	})

	t.Run("unreachable backend", func(t *testing.T) {
		svc, _ := newTestService(t, nil, Options{})

		res := svc.Login(ctx, "x@y.com", "secret")
		require.False(t, res.Success)
		assert.Contains(t, res.Message, "no se pudo conectar con el servidor")
	})
}

func TestLogoutClearsMirror(t *testing.T) {
	ctx := context.Background()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/logout/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": "Logout exitoso"}`))
	})
	svc, st := newTestService(t, mux, Options{DemoMode: true})

	res := svc.Login(ctx, demoSuperAdminEmail, demoSuperAdminPassword)
	require.True(t, res.Success)
	require.NoError(t, svc.SwitchCompany(ctx, "3"))

	navigated := false
	svc.opts.NavigateHome = func() { navigated = true }

	out := svc.Logout(ctx)
	assert.True(t, out.Success)
	assert.True(t, navigated)
	assert.Nil(t, svc.Current())

	for _, key := range sessionKeys {
		_, err := st.Get(ctx, key)
		assert.ErrorIs(t, err, xerrors.ErrNotFound, key)
	}
	// The operational override survives logout on purpose.
	v, err := st.Get(ctx, KeyCurrentCompany)
	require.NoError(t, err)
	assert.Equal(t, "3", v)
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()

	t.Run("no stored token means anonymous", func(t *testing.T) {
		svc, _ := newTestService(t, nil, Options{})
		svc.Bootstrap(ctx)
		assert.Nil(t, svc.Current())
	})

	t.Run("demo token restored without network", func(t *testing.T) {
		svc, st := newTestService(t, nil, Options{DemoMode: true})
		require.NoError(t, st.Set(ctx, KeyToken, demoCompanyAdminToken))

		svc.Bootstrap(ctx)
		sess := svc.Current()
		require.NotNil(t, sess)
		assert.Equal(t, "vagner", sess.User.Username)
	})

	t.Run("rejected token clears the whole mirror", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/profile/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail": "Token inválido"}`))
		})
		svc, st := newTestService(t, mux, Options{})
		require.NoError(t, st.Set(ctx, KeyToken, "stale-token"))
		require.NoError(t, st.Set(ctx, KeyMe, `{"id":"1"}`))

		svc.Bootstrap(ctx)
		assert.Nil(t, svc.Current())
		_, err := st.Get(ctx, KeyToken)
		assert.ErrorIs(t, err, xerrors.ErrNotFound)
		_, err = st.Get(ctx, KeyMe)
		assert.ErrorIs(t, err, xerrors.ErrNotFound)
	})

	t.Run("valid token refreshes the profile", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/profile/", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer good-token", r.Header.Get("Authorization"))
			w.Write([]byte(`{"user": {"id": 8, "username": "ana", "is_staff": true, "empresa_id": 2}}`))
		})
		svc, st := newTestService(t, mux, Options{})
		require.NoError(t, st.Set(ctx, KeyToken, "good-token"))

		svc.Bootstrap(ctx)
		sess := svc.Current()
		require.NotNil(t, sess)
		assert.Equal(t, "good-token", sess.Token)
		assert.Equal(t, "2", sess.User.EmpresaID)
	})
}

func TestPersistSessionSuperadminDropsCompanyKeys(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t, nil, Options{})

	// Stale company keys from an earlier scoped session.
	require.NoError(t, st.Set(ctx, KeyEmpresaID, "9"))
	require.NoError(t, st.Set(ctx, KeyTenantID, "9"))

	sess := &domain.Session{Token: "t", User: demoSuperAdminUser}
	require.NoError(t, svc.persistSession(ctx, sess))

	_, err := st.Get(ctx, KeyEmpresaID)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
	_, err = st.Get(ctx, KeyTenantID)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)

	perms, err := st.Get(ctx, KeyPermissions)
	require.NoError(t, err)
	assert.Equal(t, `["*"]`, perms)
}
