package shared

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexIDUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want FlexID
	}{
		{"string", `"42"`, "42"},
		{"number", `42`, "42"},
		{"float keeps shape", `4.5`, "4.5"},
		{"null", `null`, ""},
		{"empty string", `""`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexID
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &f))
			assert.Equal(t, tt.want, f)
		})
	}
}

func TestFlexIDMarshal(t *testing.T) {
	out, err := json.Marshal(FlexID("42"))
	require.NoError(t, err)
	assert.Equal(t, `42`, string(out))

	out, err = json.Marshal(FlexID("abc-1"))
	require.NoError(t, err)
	assert.Equal(t, `"abc-1"`, string(out))

	out, err = json.Marshal(FlexID(""))
	require.NoError(t, err)
	assert.Equal(t, `null`, string(out))
}
