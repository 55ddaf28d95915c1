package http

import (
	"net/http"

	"github.com/aussiebroadwan/fireme/internal/devapi/service"
	"github.com/aussiebroadwan/fireme/pkg/apisdk"
	"github.com/aussiebroadwan/fireme/pkg/httpx"
)

type CampaignsHandler struct {
	Service *service.Service
}

// HandleList godoc
//
//	@Summary	List campaigns
//	@Tags		Campaigns
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	apisdk.Campaign
//	@Router		/api/campaigns/ [get]
func (h *CampaignsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.Service.ListCampaigns(r.Context(), owner(r)))
}

// HandleGet godoc
//
//	@Summary	Get a campaign
//	@Tags		Campaigns
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"Campaign id"
//	@Success	200	{object}	apisdk.Campaign
//	@Failure	404	{object}	map[string]string
//	@Router		/api/campaigns/{id}/ [get]
func (h *CampaignsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := h.Service.GetCampaign(r.Context(), owner(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

// HandleCreate godoc
//
//	@Summary	Create a campaign
//	@Tags		Campaigns
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		apisdk.CreateCampaignRequest	true	"Campaign"
//	@Success	201		{object}	apisdk.Campaign
//	@Failure	400		{object}	map[string][]string
//	@Router		/api/campaigns/ [post]
func (h *CampaignsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req apisdk.CreateCampaignRequest
	if !decode(w, r, &req) {
		return
	}
	c, err := h.Service.CreateCampaign(r.Context(), owner(r), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, c)
}

// HandleListQueries godoc
//
//	@Summary	List search queries
//	@Tags		Queries
//	@Produce	json
//	@Security	BearerAuth
//	@Param		campaign	query	int	false	"Only queries of this campaign"
//	@Success	200			{array}	apisdk.Query
//	@Router		/api/queries/ [get]
func (h *CampaignsHandler) HandleListQueries(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.Service.ListQueries(r.Context(), owner(r), queryInt(r, "campaign")))
}

// HandleCreateQuery godoc
//
//	@Summary	Add a search query to a campaign
//	@Tags		Queries
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		apisdk.CreateQueryRequest	true	"Query"
//	@Success	201		{object}	apisdk.Query
//	@Failure	400		{object}	map[string][]string
//	@Router		/api/queries/ [post]
func (h *CampaignsHandler) HandleCreateQuery(w http.ResponseWriter, r *http.Request) {
	var req apisdk.CreateQueryRequest
	if !decode(w, r, &req) {
		return
	}
	q, err := h.Service.CreateQuery(r.Context(), owner(r), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, q)
}
