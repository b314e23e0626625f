package store

import (
	"context"
	"encoding/json"
)

// GetJSON decodes the value at key into out. Absence and decode failures
// both report false: the mirror is advisory and a corrupt entry is treated
// as a miss, never as an error.
func GetJSON(ctx context.Context, s Store, key string, out interface{}) bool {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false
	}
	return true
}

// SetJSON serializes v under key.
func SetJSON(ctx context.Context, s Store, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, string(raw))
}
