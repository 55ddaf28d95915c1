package apisdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var (
	// ErrTransport wraps failures where no response reached us.
	ErrTransport = errors.New("apisdk: transport failure")

	// ErrNoRefreshToken marks a 401 that could not be recovered because no
	// refresh token was held.
	ErrNoRefreshToken = errors.New("apisdk: no refresh token held")

	// ErrRefreshFailed marks a 401 whose token refresh was rejected.
	ErrRefreshFailed = errors.New("apisdk: token refresh failed")

	// ErrUnexpectedResponse is returned when a 2xx body is not what the
	// endpoint documents.
	ErrUnexpectedResponse = errors.New("apisdk: unexpected response")
)

// APIError is a non-2xx response. Payload is the raw body so form-level
// callers can pull field errors out of it; Message is the normalized text
// that was also pushed as a notice.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Payload    []byte
	Message    string

	// cause is set when a 401 ended in terminal auth failure.
	cause error
}

func newAPIError(method, path string, status int, payload []byte) *APIError {
	return &APIError{
		StatusCode: status,
		Method:     method,
		Path:       path,
		Payload:    payload,
		Message:    Normalize(payload, status),
	}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

// Unwrap exposes ErrNoRefreshToken or ErrRefreshFailed for a 401 that
// could not be recovered.
func (e *APIError) Unwrap() error { return e.cause }

// Unauthorized reports whether this is a 401.
func (e *APIError) Unauthorized() bool { return e.StatusCode == http.StatusUnauthorized }

// FieldErrors pulls per-field messages out of a DRF validation payload.
// The {"success": false, "errors": {...}} envelope used by the register
// endpoint is unwrapped first. Non-object payloads return nil.
func (e *APIError) FieldErrors() map[string][]string {
	obj, ok := decodeObject(e.Payload)
	if !ok {
		return nil
	}
	if nested, ok := unwrapErrors(obj); ok {
		obj = nested
	}

	out := make(map[string][]string, obj.Len())
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		if successFlag(pair.Key, pair.Value) {
			continue
		}
		if msgs := messages(pair.Value); len(msgs) > 0 {
			out[pair.Key] = msgs
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func decodeObject(raw []byte) (*orderedmap.OrderedMap[string, json.RawMessage], bool) {
	p := decodePayload(raw)
	if p.kind != payloadObject {
		return nil, false
	}
	return p.object, true
}

// messages flattens a field value (string or list of strings) to text.
func messages(raw json.RawMessage) []string {
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, item := range list {
			out = append(out, toText(item))
		}
		return out
	}
	if isNull(raw) {
		return nil
	}
	return []string{toText(raw)}
}
