package http

import (
	"net/http"

	"github.com/aussiebroadwan/fireme/internal/devapi/service"
	"github.com/aussiebroadwan/fireme/pkg/apisdk"
	"github.com/aussiebroadwan/fireme/pkg/httpx"
	"github.com/aussiebroadwan/fireme/pkg/slogx"
)

type PlatformsHandler struct {
	Service *service.Service
}

type disconnectRequest struct {
	ExternalAccountID string              `json:"external_account_id"`
	OAuthVersion      apisdk.OAuthVersion `json:"oauth_version"`
}

// HandleList godoc
//
//	@Summary	List platforms
//	@Tags		Platforms
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	apisdk.Platform
//	@Router		/api/platforms/ [get]
func (h *PlatformsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.Service.ListPlatforms(r.Context(), owner(r)))
}

// HandleUpsertApp godoc
//
//	@Summary	Store the platform app's client id and secret
//	@Tags		Platforms
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int						true	"Platform id"
//	@Param		request	body		apisdk.AppUpsertRequest	true	"App credentials"
//	@Success	201		{object}	map[string]bool
//	@Failure	400		{object}	map[string][]string
//	@Router		/api/platforms/{id}/app/ [post]
func (h *PlatformsHandler) HandleUpsertApp(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req apisdk.AppUpsertRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Service.UpsertApp(r.Context(), owner(r), id, req); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

// HandleAppInfo godoc
//
//	@Summary	Report whether an app is configured
//	@Tags		Platforms
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"Platform id"
//	@Success	200	{object}	apisdk.AppInfo
//	@Router		/api/platforms/{id}/app_info/ [get]
func (h *PlatformsHandler) HandleAppInfo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	info, err := h.Service.AppInfo(r.Context(), owner(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, info)
}

// HandleConnect godoc
//
//	@Summary	Connect user credentials to a platform
//	@Tags		Platforms
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int									true	"Platform id"
//	@Param		request	body		apisdk.ConnectCredentialsRequest	true	"Credentials"
//	@Success	201		{object}	apisdk.ConnectCredentialsResponse
//	@Failure	400		{object}	map[string][]string
//	@Router		/api/platforms/{id}/connect_credentials/ [post]
func (h *PlatformsHandler) HandleConnect(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req apisdk.ConnectCredentialsRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.Service.ConnectCredentials(r.Context(), owner(r), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, resp)
}

// HandleDisconnect godoc
//
//	@Summary	Remove platform connections
//	@Tags		Platforms
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int					true	"Platform id"
//	@Param		request	body		disconnectRequest	false	"Optional filters"
//	@Success	200		{object}	apisdk.DisconnectResponse
//	@Router		/api/platforms/{id}/disconnect/ [post]
func (h *PlatformsHandler) HandleDisconnect(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req disconnectRequest
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}
	n, err := h.Service.Disconnect(r.Context(), owner(r), id, req.ExternalAccountID, req.OAuthVersion)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if claims, ok := httpx.ClaimsFromContext(r.Context()); ok {
		slogx.FromContext(r.Context()).Info("platform connections removed",
			"user", claims.Username, "platform", id, "count", n)
	}
	httpx.WriteJSON(w, http.StatusOK, apisdk.DisconnectResponse{Success: true, Count: n})
}

// HandleConnections godoc
//
//	@Summary	List the caller's platform connections
//	@Tags		Platforms
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	map[string][]apisdk.Connection	"{results: [...]}"
//	@Router		/api/platforms/connections/ [get]
func (h *PlatformsHandler) HandleConnections(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string][]apisdk.Connection{
		"results": h.Service.Connections(r.Context(), owner(r)),
	})
}
