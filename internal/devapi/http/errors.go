package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/fireme/internal/devapi/service"
	"github.com/aussiebroadwan/fireme/pkg/httpx"
	"github.com/aussiebroadwan/fireme/pkg/slogx"
)

// writeError renders a service error the way DRF would.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *service.ValidationError
		list service.ErrorList
	)
	switch {
	case errors.As(err, &verr):
		httpx.WriteJSON(w, http.StatusBadRequest, verr.Fields)
	case errors.As(err, &list):
		httpx.WriteJSON(w, http.StatusBadRequest, []string(list))
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteDetail(w, http.StatusNotFound, "Not found.")
	case errors.Is(err, service.ErrTokenInvalid):
		httpx.WriteJSON(w, http.StatusUnauthorized, map[string]string{
			"detail": "Token is invalid or expired",
			"code":   "token_not_valid",
		})
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteDetail(w, http.StatusInternalServerError, "A server error occurred.")
	}
}

// decode reads the JSON body into v, answering 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httpx.DecodeJSON(r, v); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, fmt.Sprintf("JSON parse error - %v", err))
		return false
	}
	return true
}

// pathID parses the {id} wildcard. A malformed id is a 404, as it is for
// DRF's integer routes.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.WriteDetail(w, http.StatusNotFound, "Not found.")
		return 0, false
	}
	return id, true
}

// owner is the authenticated user; AuthnMiddleware guarantees it is set.
func owner(r *http.Request) int64 {
	id, _ := httpx.UserIDFromContext(r.Context())
	return id
}

func queryInt(r *http.Request, key string) int64 {
	v, _ := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	return v
}
