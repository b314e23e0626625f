package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"backoffice-client/internal/apiclient"
	domain "backoffice-client/internal/domain/user"
	xerrors "backoffice-client/internal/pkg/errors"
	"backoffice-client/internal/store"
)

func newTestService(t *testing.T, handler http.Handler) (*Service, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	baseURL := "http://127.0.0.1:0"
	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		baseURL = srv.URL
	}
	api := apiclient.New(baseURL, func() string { return "" }, zap.NewNop())
	return NewService(api, st, zap.NewNop()), st
}

func TestCreateWalksEndpoints(t *testing.T) {
	ctx := context.Background()

	t.Run("later endpoint spelling wins", func(t *testing.T) {
		var hits []string
		mux := http.NewServeMux()
		// Only the modern path exists on this deployment.
		mux.HandleFunc("/api/users/", func(w http.ResponseWriter, r *http.Request) {
			hits = append(hits, r.URL.Path)
			json.NewEncoder(w).Encode(domain.CreateResponse{ID: "31", Username: "ana"})
		})
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			hits = append(hits, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail": "Not found."}`))
		})
		svc, st := newTestService(t, mux)

		resp, err := svc.Create(ctx, &domain.CreatePayload{Username: "ana", Email: "ana@x.com"})
		require.NoError(t, err)
		assert.Equal(t, "31", resp.ID.String())
		// The legacy spellings were tried first.
		assert.Contains(t, hits, "/api/User/user/")
		assert.Contains(t, hits, "/api/users/")

		// Nothing was saved locally.
		var local []domain.CreateResponse
		assert.False(t, store.GetJSON(ctx, st, keyLocalUsers, &local))
	})

	t.Run("extended fields patched and echoed back", func(t *testing.T) {
		var patched map[string]interface{}
		mux := http.NewServeMux()
		mux.HandleFunc("/api/User/user/", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(domain.CreateResponse{ID: "5", Username: "ana"})
		})
		mux.HandleFunc("/api/User/user/5/profile/", func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&patched))
			w.Write([]byte(`{}`))
		})
		svc, _ := newTestService(t, mux)

		resp, err := svc.Create(ctx, &domain.CreatePayload{
			Username: "ana", Email: "ana@x.com",
			Telefono: "70123456", Cargo: "Contadora",
		})
		require.NoError(t, err)
		require.NotNil(t, patched)
		assert.Equal(t, "Contadora", patched["cargo"])
		assert.Equal(t, "Contadora", resp.Cargo)
		assert.Equal(t, "70123456", resp.Telefono)
	})

	t.Run("all endpoints down saves locally", func(t *testing.T) {
		svc, st := newTestService(t, nil)

		resp, err := svc.Create(ctx, &domain.CreatePayload{Username: "ana", Email: "ana@x.com", IsActive: true})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID.String())
		assert.Equal(t, "Usuario creado localmente (backend no disponible)", resp.Message)

		var local []domain.CreateResponse
		require.True(t, store.GetJSON(ctx, st, keyLocalUsers, &local))
		require.Len(t, local, 1)
	})

	t.Run("invalid payload rejected before the network", func(t *testing.T) {
		svc, _ := newTestService(t, nil)
		_, err := svc.Create(ctx, &domain.CreatePayload{Username: "ana", Email: "bad"})
		assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
	})
}

func TestListNormalizesEnvelopes(t *testing.T) {
	ctx := context.Background()
	active := true
	inactive := false

	t.Run("drf envelope", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/User/user", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "true", r.URL.Query().Get("is_active"))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"results": []domain.DTO{
					{ID: "1", Username: "root", IsSuperuser: true, IsActive: &active},
					{ID: "2", Username: "ana", IsStaff: true, IsActive: &active},
					{ID: "3", NombreCompleto: "Luis Mamani", IsActive: &inactive},
				},
				"count": 30,
				"page":  2,
			})
		})
		svc, _ := newTestService(t, mux)

		page, err := svc.List(ctx, domain.ListParams{Activo: domain.ActiveOnly, Page: 2})
		require.NoError(t, err)
		assert.Equal(t, 30, page.Count)
		assert.Equal(t, 2, page.Page)
		require.Len(t, page.Results, 3)
		assert.Equal(t, domain.UIRoleSuperAdmin, page.Results[0].Role)
		assert.Equal(t, domain.UIRoleAdmin, page.Results[1].Role)
		assert.Equal(t, domain.UIRoleUser, page.Results[2].Role)
		assert.Equal(t, "Luis Mamani", page.Results[2].Nombre)
		assert.False(t, page.Results[2].Activo)
	})

	t.Run("bare array defaults to active", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/User/user", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]domain.DTO{{ID: "1", Username: "ana"}})
		})
		svc, _ := newTestService(t, mux)

		page, err := svc.List(ctx, domain.ListParams{})
		require.NoError(t, err)
		require.Len(t, page.Results, 1)
		assert.True(t, page.Results[0].Activo)
		assert.Equal(t, 1, page.Count)
	})
}

func TestListLocalFallback(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, nil)

	seed := []*domain.CreatePayload{
		{Username: "ana", FirstName: "Ana", LastName: "Quispe", Email: "ana@x.com", IsActive: true, IsStaff: true},
		{Username: "luis", FirstName: "Luis", LastName: "Mamani", Email: "luis@x.com", IsActive: false},
		{Username: "root", Email: "root@x.com", IsActive: true, IsSuperuser: true},
	}
	for _, p := range seed {
		_, err := svc.Create(ctx, p)
		require.NoError(t, err)
	}

	t.Run("search matches name fields", func(t *testing.T) {
		page, err := svc.List(ctx, domain.ListParams{Search: "mamani"})
		require.NoError(t, err)
		require.Len(t, page.Results, 1)
		assert.Equal(t, "luis", page.Results[0].Username)
		assert.Equal(t, "Luis Mamani", page.Results[0].Nombre)
	})

	t.Run("active filter", func(t *testing.T) {
		page, err := svc.List(ctx, domain.ListParams{Activo: domain.InactiveOnly})
		require.NoError(t, err)
		require.Len(t, page.Results, 1)
		assert.Equal(t, "luis", page.Results[0].Username)
	})

	t.Run("roles adapted from flags", func(t *testing.T) {
		page, err := svc.List(ctx, domain.ListParams{Search: "root"})
		require.NoError(t, err)
		require.Len(t, page.Results, 1)
		assert.Equal(t, domain.UIRoleSuperAdmin, page.Results[0].Role)
	})

	t.Run("pagination", func(t *testing.T) {
		page, err := svc.List(ctx, domain.ListParams{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, page.Count)
		assert.Len(t, page.Results, 1)
	})
}

func TestSetActive(t *testing.T) {
	ctx := context.Background()

	t.Run("backend patch", func(t *testing.T) {
		var gotBody map[string]bool
		mux := http.NewServeMux()
		mux.HandleFunc("/api/User/user/9/", func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Write([]byte(`{}`))
		})
		svc, _ := newTestService(t, mux)

		require.NoError(t, svc.SetActive(ctx, "9", false))
		assert.Equal(t, map[string]bool{"is_active": false}, gotBody)
	})

	t.Run("local fallback toggles the saved record", func(t *testing.T) {
		svc, _ := newTestService(t, nil)
		resp, err := svc.Create(ctx, &domain.CreatePayload{Username: "ana", Email: "a@x.com", IsActive: true})
		require.NoError(t, err)

		require.NoError(t, svc.SetActive(ctx, resp.ID.String(), false))
		page, err := svc.List(ctx, domain.ListParams{})
		require.NoError(t, err)
		require.Len(t, page.Results, 1)
		assert.False(t, page.Results[0].Activo)
	})
}
