package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrUnauthorized reports that the remote API rejected the session token.
// The client evicts the stored token before returning it.
var ErrUnauthorized = errors.New("api: unauthorized")

// Error is a structured error parsed from a non-2xx API response. Servers
// report either a human-readable message, a field-keyed validation map, or
// both; unparseable bodies leave only the status.
type Error struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: request failed with status %d", e.Status)
}

// Detail renders the server-reported failure for display: the message when
// present, otherwise the validation map serialized to JSON, otherwise "".
func (e *Error) Detail() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Fields) > 0 {
		if raw, err := json.Marshal(e.Fields); err == nil {
			return string(raw)
		}
	}
	return ""
}

// FieldMessages flattens the validation map into "field: message" lines,
// sorted by field for stable output.
func (e *Error) FieldMessages() []string {
	if len(e.Fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var out []string
	for _, key := range keys {
		for _, msg := range e.Fields[key] {
			msg = strings.TrimSpace(msg)
			if msg == "" {
				continue
			}
			out = append(out, key+": "+msg)
		}
	}
	return out
}

// Detail extracts a display message from any error returned by the client:
// the server-reported detail when the error carries one, otherwise "".
// Callers fall back to their own generic wording on "".
func Detail(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail()
	}
	return ""
}

type errorEnvelope struct {
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
}

func parseErrorBody(status int, body []byte) *Error {
	apiErr := &Error{Status: status}
	if len(body) == 0 {
		return apiErr
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(envelope.Message)

	if len(envelope.Errors) > 0 {
		fields := make(map[string][]string)
		if err := json.Unmarshal(envelope.Errors, &fields); err == nil {
			apiErr.Fields = normalizeFieldErrors(fields)
		} else {
			// some backends send {field: "message"} instead of {field: [..]}
			var flat map[string]string
			if err := json.Unmarshal(envelope.Errors, &flat); err == nil {
				fields = make(map[string][]string, len(flat))
				for key, msg := range flat {
					fields[key] = []string{msg}
				}
				apiErr.Fields = normalizeFieldErrors(fields)
			}
		}
	}
	return apiErr
}

func normalizeFieldErrors(fields map[string][]string) map[string][]string {
	out := make(map[string][]string, len(fields))
	for key, messages := range fields {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		var clean []string
		seen := make(map[string]struct{}, len(messages))
		for _, msg := range messages {
			msg = strings.TrimSpace(msg)
			if msg == "" {
				continue
			}
			if _, dup := seen[msg]; dup {
				continue
			}
			seen[msg] = struct{}{}
			clean = append(clean, msg)
		}
		if len(clean) > 0 {
			out[key] = clean
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// IsNotFound reports whether err is an API error with a 404 status.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
