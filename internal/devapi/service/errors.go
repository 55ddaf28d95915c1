package service

import (
	"errors"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var (
	ErrNotFound           = errors.New("service: not found")
	ErrInvalidCredentials = errors.New("service: invalid credentials")
	ErrTokenInvalid       = errors.New("service: token is invalid or expired")
)

// NonFieldErrors is the key DRF uses for object-level validation errors.
const NonFieldErrors = "non_field_errors"

// ValidationError carries per-field messages in the order they were added,
// serialized the way DRF does: {"field": ["message", ...]}.
type ValidationError struct {
	Fields *orderedmap.OrderedMap[string, []string]
}

// Invalid starts a ValidationError with one message.
func Invalid(field, msg string) *ValidationError {
	return (&ValidationError{}).Add(field, msg)
}

// Add appends msg to field and returns e for chaining.
func (e *ValidationError) Add(field, msg string) *ValidationError {
	if e.Fields == nil {
		e.Fields = orderedmap.New[string, []string]()
	}
	prev, _ := e.Fields.Get(field)
	e.Fields.Set(field, append(prev, msg))
	return e
}

// OrNil returns nil when nothing was added, so callers can build errors
// field by field and return the result directly.
func (e *ValidationError) OrNil() error {
	if e == nil || e.Fields == nil || e.Fields.Len() == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("service: validation failed")
	if e.Fields == nil {
		return b.String()
	}
	for pair := e.Fields.Oldest(); pair != nil; pair = pair.Next() {
		b.WriteString("; ")
		b.WriteString(pair.Key)
		b.WriteString(": ")
		b.WriteString(strings.Join(pair.Value, ", "))
	}
	return b.String()
}

// ErrorList is a validation failure raised outside field validation. DRF
// renders those as a bare JSON list.
type ErrorList []string

func (e ErrorList) Error() string {
	return "service: " + strings.Join(e, ", ")
}
