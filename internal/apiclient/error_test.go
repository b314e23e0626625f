package apiclient

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xerrors "backoffice-client/internal/pkg/errors"
)

func TestAPIErrorMessagePriority(t *testing.T) {
	tests := []struct {
		name string
		err  APIError
		want string
	}{
		{
			name: "email field outranks everything",
			err: APIError{
				Status: 400,
				Fields: map[string][]string{
					"username": {"Ya existe."},
					"email":    {"Este campo es requerido."},
				},
				Detail: "detalle",
			},
			want: "Error en email: Este campo es requerido.",
		},
		{
			name: "password ahead of other fields",
			err: APIError{
				Status: 400,
				Fields: map[string][]string{
					"apellido": {"Inválido."},
					"password": {"Demasiado corta."},
				},
			},
			want: "Error en password: Demasiado corta.",
		},
		{
			name: "other fields in sorted order",
			err: APIError{
				Status: 400,
				Fields: map[string][]string{
					"zona":     {"z"},
					"apellido": {"a"},
				},
			},
			want: "Error en apellido: a",
		},
		{
			name: "detail next",
			err:  APIError{Status: 401, Detail: "Token inválido"},
			want: "Token inválido",
		},
		{
			name: "message after detail",
			err:  APIError{Status: 400, Msg: "rechazado"},
			want: "rechazado",
		},
		{
			name: "error key after message",
			err:  APIError{Status: 400, ErrMsg: "fallo"},
			want: "fallo",
		},
		{
			name: "raw body next",
			err:  APIError{Status: 502, Raw: "Bad Gateway"},
			want: "Bad Gateway",
		},
		{
			name: "generic line last",
			err:  APIError{Status: 503},
			want: "solicitud rechazada (HTTP 503)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestDecodeAPIError(t *testing.T) {
	t.Run("field arrays and detail", func(t *testing.T) {
		err := decodeAPIError(400, []byte(`{"detail": "no", "email": ["requerido"], "extra": 5}`))
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 400, apiErr.Status)
		assert.Equal(t, []string{"requerido"}, apiErr.Fields["email"])
		assert.Equal(t, "no", apiErr.Detail)
		assert.NotContains(t, apiErr.Fields, "extra")
	})

	t.Run("short non-json body kept verbatim", func(t *testing.T) {
		err := decodeAPIError(502, []byte("upstream down"))
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "upstream down", apiErr.Error())
	})

	t.Run("long non-json body dropped", func(t *testing.T) {
		body := make([]byte, 500)
		for i := range body {
			body[i] = 'x'
		}
		err := decodeAPIError(500, body)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "solicitud rechazada (HTTP 500)", apiErr.Error())
	})
}

func TestIsNetworkAndHumanize(t *testing.T) {
	netErr := networkError(errors.New("dial tcp: connection refused"))
	assert.True(t, IsNetwork(netErr))
	assert.False(t, IsNetwork(&APIError{Status: 500}))
	assert.False(t, IsNetwork(nil))

	assert.Equal(t, "fallback", Humanize(nil, "fallback"))
	assert.Equal(t, xerrors.ErrNetworkUnreachable.Error()+".", Humanize(netErr, "fallback"))
	assert.Equal(t, "Token inválido", Humanize(&APIError{Status: 401, Detail: "Token inválido"}, "fallback"))
	assert.Equal(t, "plain failure", Humanize(errors.New("plain failure"), "fallback"))
}
