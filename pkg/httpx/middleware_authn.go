package httpx

import (
	"net/http"

	"github.com/aussiebroadwan/fireme/pkg/jwtx"
	"github.com/aussiebroadwan/fireme/pkg/slogx"
)

// AuthnMiddleware rejects requests without a valid access token. Failures
// use the same 401 body SimpleJWT produces so clients can't tell the
// difference.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := BearerToken(r.Header)
			if !ok {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
				WriteDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Debug("jwt verify failed", "err", err)
				w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
				WriteJSON(w, http.StatusUnauthorized, map[string]string{
					"detail": "Given token not valid for any token type",
					"code":   "token_not_valid",
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithAuth(ctx, claims)))
		})
	}
}
