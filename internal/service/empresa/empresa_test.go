package empresa

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
	xerrors "backoffice-client/internal/pkg/errors"
)

func newTestService(t *testing.T, handler http.Handler) *Service {
	t.Helper()
	baseURL := "http://127.0.0.1:0"
	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		baseURL = srv.URL
	}
	return NewService(apiclient.New(baseURL, func() string { return "" }, zap.NewNop()), zap.NewNop())
}

func TestExtractList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"bare array", `[{"id": 1, "razon_social": "Acme S.A."}]`, 1},
		{"results key", `{"results": [{"id": 1}, {"id": 2}]}`, 2},
		{"data key", `{"data": [{"id": 1}]}`, 1},
		{"empresas key", `{"empresas": [{"id": 1}]}`, 1},
		{"items key", `{"items": [{"id": 1}]}`, 1},
		{"unknown shape", `{"other": 5}`, 0},
		{"garbage", `"x"`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, extractList(json.RawMessage(tt.raw)), tt.want)
		})
	}
}

func TestList(t *testing.T) {
	t.Run("normalized listing", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/empresa/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results": [{"id": 1, "razon_social": "Acme S.A.", "activo": true}]}`))
		})
		svc := newTestService(t, mux)

		list, err := svc.List(context.Background())
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Acme S.A.", list[0].RazonSocial)
	})

	t.Run("unreachable backend is an error", func(t *testing.T) {
		svc := newTestService(t, nil)
		_, err := svc.List(context.Background())
		assert.ErrorIs(t, err, xerrors.ErrNetworkUnreachable)
	})
}

func TestGet(t *testing.T) {
	ctx := context.Background()

	t.Run("wrapped envelope", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/empresa/3/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"empresa": {"id": 3, "razon_social": "Beta SRL"}}`))
		})
		svc := newTestService(t, mux)

		e, err := svc.Get(ctx, "3")
		require.NoError(t, err)
		require.NotNil(t, e)
		assert.Equal(t, "Beta SRL", e.RazonSocial)
	})

	t.Run("bare object", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/empresa/3/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id": 3, "razon_social": "Beta SRL"}`))
		})
		svc := newTestService(t, mux)

		e, err := svc.Get(ctx, "3")
		require.NoError(t, err)
		require.NotNil(t, e)
		assert.Equal(t, "3", e.ID.String())
	})

	t.Run("lookup failure degrades to nil", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail": "No encontrado."}`))
		})
		svc := newTestService(t, mux)

		e, err := svc.Get(ctx, "99")
		require.NoError(t, err)
		assert.Nil(t, e)
	})
}

func TestGetSuscripcion(t *testing.T) {
	ctx := context.Background()

	t.Run("first of several records", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/suscripcion/", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "3", r.URL.Query().Get("empresa"))
			w.Write([]byte(`[{"id": 1, "enum_plan": "BASICO"}, {"id": 2, "enum_plan": "PREMIUM"}]`))
		})
		svc := newTestService(t, mux)

		sub, err := svc.GetSuscripcion(ctx, "3")
		require.NoError(t, err)
		require.NotNil(t, sub)
		assert.Equal(t, "BASICO", sub.EnumPlan)
	})

	t.Run("results envelope", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/suscripcion/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results": [{"id": 1, "enum_plan": "PROFESIONAL"}]}`))
		})
		svc := newTestService(t, mux)

		sub, err := svc.GetSuscripcion(ctx, "3")
		require.NoError(t, err)
		require.NotNil(t, sub)
		assert.Equal(t, "PROFESIONAL", sub.EnumPlan)
	})

	t.Run("single object with id", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/suscripcion/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id": 7, "enum_plan": "BASICO"}`))
		})
		svc := newTestService(t, mux)

		sub, err := svc.GetSuscripcion(ctx, "3")
		require.NoError(t, err)
		require.NotNil(t, sub)
		assert.Equal(t, "7", sub.ID.String())
	})

	t.Run("empty listing and failures degrade to nil", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/suscripcion/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		})
		svc := newTestService(t, mux)
		sub, err := svc.GetSuscripcion(ctx, "3")
		require.NoError(t, err)
		assert.Nil(t, sub)

		offline := newTestService(t, nil)
		sub, err = offline.GetSuscripcion(ctx, "3")
		require.NoError(t, err)
		assert.Nil(t, sub)
	})
}
