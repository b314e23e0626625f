package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClientRequests(t *testing.T) {
	ctx := context.Background()

	t.Run("bearer header and query encoding", func(t *testing.T) {
		var got *http.Request
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Clone(r.Context())
			w.Write([]byte(`{"ok": true}`))
		}))
		defer srv.Close()

		c := New(srv.URL+"/", func() string { return "tok" }, zap.NewNop())

		var out struct {
			OK bool `json:"ok"`
		}
		err := c.Get(ctx, "/api/clients/", url.Values{"search": {"juan pérez"}}, &out)
		require.NoError(t, err)
		assert.True(t, out.OK)
		assert.Equal(t, "Bearer tok", got.Header.Get("Authorization"))
		assert.Equal(t, "juan pérez", got.URL.Query().Get("search"))
	})

	t.Run("WithoutAuth drops the bearer", func(t *testing.T) {
		var auth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth = r.Header.Get("Authorization")
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		c := New(srv.URL, func() string { return "tok" }, zap.NewNop())
		require.NoError(t, c.Post(ctx, "/api/auth/login/", map[string]string{"email": "x"}, nil, WithoutAuth()))
		assert.Empty(t, auth)
	})

	t.Run("WithHeader skips empty values", func(t *testing.T) {
		var tenant []string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenant = r.Header.Values("X-Tenant-ID")
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		c := New(srv.URL, func() string { return "" }, zap.NewNop())
		require.NoError(t, c.Get(ctx, "/a", nil, nil, WithHeader("X-Tenant-ID", "")))
		assert.Empty(t, tenant)
		require.NoError(t, c.Get(ctx, "/a", nil, nil, WithHeader("X-Tenant-ID", "7")))
		assert.Equal(t, []string{"7"}, tenant)
	})

	t.Run("4xx maps to APIError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail": "No encontrado."}`))
		}))
		defer srv.Close()

		c := New(srv.URL, func() string { return "" }, zap.NewNop())
		err := c.Get(ctx, "/missing", nil, nil)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
		assert.Equal(t, "No encontrado.", apiErr.Error())
	})

	t.Run("connection failure maps to network error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // nothing listening anymore

		c := New(srv.URL, func() string { return "" }, zap.NewNop())
		err := c.Get(ctx, "/a", nil, nil)
		assert.True(t, IsNetwork(err))
	})

	t.Run("empty body with out is fine", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		c := New(srv.URL, func() string { return "" }, zap.NewNop())
		var out map[string]string
		assert.NoError(t, c.Delete(ctx, "/a"))
		assert.NoError(t, c.Get(ctx, "/a", nil, &out))
	})
}
