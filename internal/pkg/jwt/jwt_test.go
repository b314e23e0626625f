package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	m := NewManager(Config{Secret: "test-secret", Issuer: "backoffice-demo"})

	token, err := m.Generate("1", "vagner@gmail.com", true, false, "1")
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.Subject)
	assert.Equal(t, "vagner@gmail.com", claims.Email)
	assert.True(t, claims.IsStaff)
	assert.False(t, claims.IsSuperuser)
	assert.Equal(t, "1", claims.EmpresaID)
	assert.NotEmpty(t, claims.ID)
}

func TestVerifyRejections(t *testing.T) {
	m := NewManager(Config{Secret: "test-secret", Issuer: "backoffice-demo"})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Verify("not-a-token")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewManager(Config{Secret: "other-secret", Issuer: "backoffice-demo"})
		token, err := other.Generate("1", "x@y.com", false, false, "")
		require.NoError(t, err)
		_, err = m.Verify(token)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewManager(Config{Secret: "test-secret", Issuer: "someone-else"})
		token, err := other.Generate("1", "x@y.com", false, false, "")
		require.NoError(t, err)
		_, err = m.Verify(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		short := NewManager(Config{Secret: "test-secret", Issuer: "backoffice-demo", TTL: -time.Minute})
		token, err := short.Generate("1", "x@y.com", false, false, "")
		require.NoError(t, err)
		_, err = m.Verify(token)
		assert.Error(t, err)
	})
}
