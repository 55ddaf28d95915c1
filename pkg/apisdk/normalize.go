package apisdk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type payloadKind int

const (
	payloadEmpty  payloadKind = iota // nothing, null, "", false or 0
	payloadText                      // a JSON string, or a body that isn't JSON
	payloadObject                    // a JSON object, field order preserved
	payloadList                      // a top-level JSON array
	payloadScalar                    // any other truthy JSON value
)

// payload is an error body decoded without assuming a schema.
type payload struct {
	kind   payloadKind
	text   string
	object *orderedmap.OrderedMap[string, json.RawMessage]
	list   []json.RawMessage
}

func decodePayload(raw []byte) payload {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return payload{kind: payloadEmpty}
	}
	if !json.Valid(trimmed) {
		return payload{kind: payloadText, text: string(raw)}
	}
	if !truthy(trimmed) {
		return payload{kind: payloadEmpty}
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return payload{kind: payloadText, text: s}
		}
	case '{':
		obj := orderedmap.New[string, json.RawMessage]()
		if err := json.Unmarshal(trimmed, obj); err == nil {
			return payload{kind: payloadObject, object: obj}
		}
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err == nil {
			return payload{kind: payloadList, list: list}
		}
	}
	return payload{kind: payloadScalar, text: string(trimmed)}
}

// Normalize turns a backend error body into one human-readable line (or
// one line per field). It never panics and never returns "".
//
//	{"detail": "Not found."}                      -> Not found.
//	{"non_field_errors": ["a", "b"]}             -> a, b
//	{"name": ["Required."], "plt": ["Bad."]}     -> name: Required.\nplt: Bad.
func Normalize(raw []byte, status int) string {
	p := decodePayload(raw)

	var msg string
	switch p.kind {
	case payloadText:
		msg = p.text
	case payloadObject:
		msg = normalizeObject(p.object)
	case payloadList:
		msg = joinList(p.list)
	}

	if msg == "" {
		return failedMessage(status)
	}
	return msg
}

func failedMessage(status int) string {
	if status > 0 {
		return fmt.Sprintf("Request failed (%d).", status)
	}
	return "Request failed."
}

func normalizeObject(obj *orderedmap.OrderedMap[string, json.RawMessage]) string {
	if v, ok := obj.Get("detail"); ok && truthy(v) {
		return toText(v)
	}
	if v, ok := obj.Get("non_field_errors"); ok && truthy(v) {
		return toList(v)
	}
	if nested, ok := unwrapErrors(obj); ok {
		return normalizeObject(nested)
	}

	lines := make([]string, 0, obj.Len())
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		if isNull(pair.Value) || successFlag(pair.Key, pair.Value) {
			continue
		}
		lines = append(lines, pair.Key+": "+toList(pair.Value))
	}
	return strings.Join(lines, "\n")
}

// unwrapErrors returns the inner object of a {"success": ..., "errors": {...}}
// wrapper. Objects carrying any other key are not wrappers.
func unwrapErrors(obj *orderedmap.OrderedMap[string, json.RawMessage]) (*orderedmap.OrderedMap[string, json.RawMessage], bool) {
	v, ok := obj.Get("errors")
	if !ok {
		return nil, false
	}
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key != "errors" && pair.Key != "success" {
			return nil, false
		}
	}
	return decodeObject(v)
}

// successFlag matches the boolean "success" marker the accounts endpoints
// add to their replies. A "success" field carrying messages is a field.
func successFlag(key string, raw json.RawMessage) bool {
	if key != "success" {
		return false
	}
	v := string(bytes.TrimSpace(raw))
	return v == "true" || v == "false"
}

// toList joins array entries with ", "; anything else goes through toText.
func toList(raw json.RawMessage) string {
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return toText(raw)
	}
	return joinList(list)
}

func joinList(list []json.RawMessage) string {
	parts := make([]string, 0, len(list))
	for _, item := range list {
		parts = append(parts, toText(item))
	}
	return strings.Join(parts, ", ")
}

// toText renders strings verbatim and everything else as compact JSON.
func toText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if isNull(raw) {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func isNull(raw []byte) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// truthy follows the usual dynamic-language rules: null, false, 0 and ""
// are falsy; every object and array (even empty) is truthy.
func truthy(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	switch string(raw) {
	case "null", "false", `""`:
		return false
	}
	if c := raw[0]; c == '-' || (c >= '0' && c <= '9') {
		var f float64
		if err := json.Unmarshal(raw, &f); err == nil {
			return f != 0
		}
	}
	return true
}
