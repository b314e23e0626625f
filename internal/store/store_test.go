package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xerrors "backoffice-client/internal/pkg/errors"
)

// Both drivers must satisfy the same contract.
func drivers(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()

	for name, st := range drivers(t) {
		t.Run(name, func(t *testing.T) {
			_, err := st.Get(ctx, "missing")
			assert.ErrorIs(t, err, xerrors.ErrNotFound)

			require.NoError(t, st.Set(ctx, "a", "1"))
			v, err := st.Get(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, "1", v)

			require.NoError(t, st.Delete(ctx, "a"))
			_, err = st.Get(ctx, "a")
			assert.ErrorIs(t, err, xerrors.ErrNotFound)

			// Delete of an absent key is not an error.
			require.NoError(t, st.Delete(ctx, "a"))
		})
	}
}

func TestStoreBatch(t *testing.T) {
	ctx := context.Background()

	for name, st := range drivers(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.Set(ctx, "stale", "x"))
			require.NoError(t, st.Batch(ctx,
				map[string]string{"a": "1", "b": "2"},
				[]string{"stale", "never-existed"},
			))

			v, err := st.Get(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, "1", v)
			v, err = st.Get(ctx, "b")
			require.NoError(t, err)
			assert.Equal(t, "2", v)
			_, err = st.Get(ctx, "stale")
			assert.ErrorIs(t, err, xerrors.ErrNotFound)
		})
	}
}

func TestFileStorePersistence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	st, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, st.Batch(ctx, map[string]string{"auth.token": "tok"}, nil))

	// A fresh instance sees the flushed state.
	st2, err := NewFileStore(path)
	require.NoError(t, err)
	v, err := st2.Get(ctx, "auth.token")
	require.NoError(t, err)
	assert.Equal(t, "tok", v)
}

func TestFileStoreCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	st, err := NewFileStore(path)
	require.NoError(t, err)
	_, err = st.Get(context.Background(), "anything")
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	type payload struct {
		Name string `json:"name"`
	}

	var out payload
	assert.False(t, GetJSON(ctx, st, "missing", &out))

	require.NoError(t, SetJSON(ctx, st, "p", payload{Name: "ana"}))
	require.True(t, GetJSON(ctx, st, "p", &out))
	assert.Equal(t, "ana", out.Name)

	// Corrupt entries read as misses, never as errors.
	require.NoError(t, st.Set(ctx, "p", "{broken"))
	assert.False(t, GetJSON(ctx, st, "p", &out))
}
