package httpx

import (
	"net/http"
	"strings"
)

// SetBearer sets the Authorization header. An empty token removes it.
func SetBearer(h http.Header, token string) {
	if token == "" {
		h.Del("Authorization")
		return
	}
	h.Set("Authorization", "Bearer "+token)
}

// BearerToken extracts the token from an Authorization header.
func BearerToken(h http.Header) (string, bool) {
	authz := h.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	return tok, tok != ""
}
