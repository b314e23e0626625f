// Package shared holds the few types every domain area speaks.
package shared

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexID absorbs backend ids that arrive either as JSON numbers or strings.
// The empty string means "absent" (null tenant, missing id).
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) MarshalJSON() ([]byte, error) {
	if f == "" {
		return []byte("null"), nil
	}
	// Preserve numeric shape when the value round-trips as an integer.
	if _, err := strconv.ParseInt(string(f), 10, 64); err == nil {
		return []byte(f), nil
	}
	return json.Marshal(string(f))
}

func (f FlexID) String() string { return string(f) }
