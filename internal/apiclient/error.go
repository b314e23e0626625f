package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	xerrors "backoffice-client/internal/pkg/errors"
)

// APIError is a structured backend rejection. Message resolution order:
// field-keyed validation arrays first (email and password ahead of the
// rest), then the detail/message/error payload keys, then a generic line.
type APIError struct {
	Status int
	Fields map[string][]string
	Detail string
	Msg    string
	ErrMsg string
	Raw    string
}

func (e *APIError) Error() string {
	if field, first, ok := e.firstFieldError(); ok {
		return fmt.Sprintf("Error en %s: %s", field, first)
	}
	for _, candidate := range []string{e.Detail, e.Msg, e.ErrMsg} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	if strings.TrimSpace(e.Raw) != "" {
		return e.Raw
	}
	return fmt.Sprintf("solicitud rechazada (HTTP %d)", e.Status)
}

func (e *APIError) firstFieldError() (field, message string, ok bool) {
	if len(e.Fields) == 0 {
		return "", "", false
	}
	// email and password carry the blame first, the rest in stable order.
	names := []string{"email", "password"}
	var others []string
	for name := range e.Fields {
		if name != "email" && name != "password" {
			others = append(others, name)
		}
	}
	sort.Strings(others)
	names = append(names, others...)

	for _, name := range names {
		if msgs := e.Fields[name]; len(msgs) > 0 {
			return name, msgs[0], true
		}
	}
	return "", "", false
}

func networkError(err error) error {
	return fmt.Errorf("%w: %v", xerrors.ErrNetworkUnreachable, err)
}

func decodeAPIError(status int, raw []byte) error {
	apiErr := &APIError{Status: status, Fields: map[string][]string{}}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		// Non-JSON bodies are surfaced verbatim when short, dropped otherwise.
		body := strings.TrimSpace(string(raw))
		if len(body) <= 200 {
			apiErr.Raw = body
		}
		return apiErr
	}

	for key, value := range payload {
		switch key {
		case "detail":
			apiErr.Detail = asString(value)
		case "message":
			apiErr.Msg = asString(value)
		case "error":
			apiErr.ErrMsg = asString(value)
		default:
			var msgs []string
			if err := json.Unmarshal(value, &msgs); err == nil && len(msgs) > 0 {
				apiErr.Fields[key] = msgs
			}
		}
	}
	return apiErr
}

func asString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}

// IsNetwork reports whether err was a transport-level failure.
func IsNetwork(err error) bool {
	return errors.Is(err, xerrors.ErrNetworkUnreachable)
}

// Humanize converts any error from this client into a user-facing message.
func Humanize(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if IsNetwork(err) {
		return xerrors.ErrNetworkUnreachable.Error() + "."
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}
