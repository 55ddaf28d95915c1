package apisdk_test

import (
	"testing"

	"github.com/aussiebroadwan/fireme/pkg/apisdk"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{"empty body", "", 500, "Request failed (500)."},
		{"empty body no status", "", 0, "Request failed."},
		{"whitespace", "  \n", 502, "Request failed (502)."},
		{"json null", "null", 400, "Request failed (400)."},
		{"json string", `"Something broke"`, 400, "Something broke"},
		{"not json", "<h1>Bad Gateway</h1>", 502, "<h1>Bad Gateway</h1>"},
		{"detail", `{"detail": "Not found."}`, 404, "Not found."},
		{"detail wins over fields", `{"name": ["x"], "detail": "Nope."}`, 403, "Nope."},
		{"detail object", `{"detail": {"code": "x"}}`, 400, `{"code":"x"}`},
		{"non field errors", `{"non_field_errors": ["a", "b"]}`, 400, "a, b"},
		{"single field", `{"search_term": ["This field is required."]}`, 400, "search_term: This field is required."},
		{"fields keep order", `{"plt": ["Bad."], "name": ["Required.", "Too short."]}`, 400, "plt: Bad.\nname: Required., Too short."},
		{"field as string", `{"ends_at": "End time must be greater than start time"}`, 400, "ends_at: End time must be greater than start time"},
		{"null field skipped", `{"a": null, "b": ["x"]}`, 400, "b: x"},
		{"empty object", `{}`, 400, "Request failed (400)."},
		{"success envelope", `{"success": false, "error": "Invalid Credentials Provided!"}`, 401, "error: Invalid Credentials Provided!"},
		{"errors envelope", `{"success": false, "errors": {"username": ["Taken."]}}`, 400, "username: Taken."},
		{"success field with messages", `{"success": ["Must be true."]}`, 400, "success: Must be true."},
		{"errors beside other fields", `{"errors": {"a": ["x"]}, "name": ["Required."]}`, 400, `errors: {"a":["x"]}` + "\nname: Required."},
		{"errors wrapper without flag", `{"errors": {"a": ["x"]}}`, 400, "a: x"},
		{"top level list", `["a", "b"]`, 400, "a, b"},
		{"number", `42`, 400, "Request failed (400)."},
		{"false", `false`, 400, "Request failed (400)."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, apisdk.Normalize([]byte(tt.body), tt.status))
		})
	}
}

func TestFieldErrors(t *testing.T) {
	t.Parallel()

	t.Run("field map", func(t *testing.T) {
		e := &apisdk.APIError{StatusCode: 400, Payload: []byte(`{"search_term": ["This field is required."], "plt": "Bad."}`)}
		require.Equal(t, map[string][]string{
			"search_term": {"This field is required."},
			"plt":         {"Bad."},
		}, e.FieldErrors())
	})

	t.Run("register envelope", func(t *testing.T) {
		e := &apisdk.APIError{StatusCode: 400, Payload: []byte(`{"success": false, "errors": {"email": ["Enter a valid email address."]}}`)}
		require.Equal(t, map[string][]string{"email": {"Enter a valid email address."}}, e.FieldErrors())
	})

	t.Run("success as a field", func(t *testing.T) {
		e := &apisdk.APIError{StatusCode: 400, Payload: []byte(`{"success": ["Must be true."], "errors": ["Bad."]}`)}
		require.Equal(t, map[string][]string{
			"success": {"Must be true."},
			"errors":  {"Bad."},
		}, e.FieldErrors())
	})

	t.Run("not an object", func(t *testing.T) {
		e := &apisdk.APIError{StatusCode: 500, Payload: []byte("oops")}
		require.Nil(t, e.FieldErrors())
	})
}
