package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

const fallbackMessage = "request failed"

// Error is a non-2xx answer from the API. The server reports failures in
// several shapes: a bare string, a {"detail": ...} object, a
// non_field_errors list, a plain list, or a field-keyed mapping of
// validation messages. Message flattens whichever shape arrived.
type Error struct {
	StatusCode int
	Payload    json.RawMessage
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message())
}

func (e *Error) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// Message extracts a human-readable message from the payload, in order of
// preference: detail field, non_field_errors list, plain list, field-keyed
// mapping rendered as "field: message" pairs, the raw payload, then a
// fixed fallback.
func (e *Error) Message() string {
	if len(e.Payload) == 0 {
		return fallbackMessage
	}

	var str string
	if err := json.Unmarshal(e.Payload, &str); err == nil && str != "" {
		return str
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(e.Payload, &obj); err == nil {
		if raw, ok := obj["detail"]; ok {
			if msg := flatten(raw); msg != "" {
				return msg
			}
		}
		if raw, ok := obj["non_field_errors"]; ok {
			if msg := flatten(raw); msg != "" {
				return msg
			}
		}
		if len(obj) > 0 {
			keys := make([]string, 0, len(obj))
			for k := range obj {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			parts := make([]string, 0, len(keys))
			for _, k := range keys {
				parts = append(parts, fmt.Sprintf("%s: %s", k, flatten(obj[k])))
			}
			return strings.Join(parts, "; ")
		}
	}

	var list []json.RawMessage
	if err := json.Unmarshal(e.Payload, &list); err == nil {
		if msg := flatten(e.Payload); msg != "" {
			return msg
		}
	}

	if msg := strings.TrimSpace(string(e.Payload)); msg != "" {
		return msg
	}
	return fallbackMessage
}

// flatten renders a payload fragment as plain text: strings lose their
// quotes, lists join with ", ", everything else stays as raw JSON.
func flatten(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			parts = append(parts, flatten(item))
		}
		return strings.Join(parts, ", ")
	}
	return strings.TrimSpace(string(raw))
}

// IsUnauthorized reports whether err is an API 401, the signal that the
// stored session is no longer valid.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Unauthorized()
}

// ErrorMessage returns the API-provided message when err came from the
// server, or err's own text for transport failures.
func ErrorMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
