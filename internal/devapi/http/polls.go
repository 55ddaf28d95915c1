package http

import (
	"net/http"

	"github.com/aussiebroadwan/fireme/internal/devapi/service"
	"github.com/aussiebroadwan/fireme/pkg/apisdk"
	"github.com/aussiebroadwan/fireme/pkg/httpx"
)

type PollsHandler struct {
	Service *service.Service
}

// HandleList godoc
//
//	@Summary	List polls
//	@Tags		Polls
//	@Produce	json
//	@Security	BearerAuth
//	@Param		campaign	query	int	false	"Only polls under this campaign"
//	@Param		query		query	int	false	"Only polls on this search query"
//	@Success	200			{array}	apisdk.Poll
//	@Router		/api/polls/ [get]
func (h *PollsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := apisdk.PollFilter{
		Campaign: queryInt(r, "campaign"),
		Query:    queryInt(r, "query"),
	}
	httpx.WriteJSON(w, http.StatusOK, h.Service.ListPolls(r.Context(), owner(r), filter))
}

// HandleCreate godoc
//
//	@Summary	Schedule a poll
//	@Tags		Polls
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		apisdk.CreatePollRequest	true	"Poll"
//	@Success	201		{object}	apisdk.Poll
//	@Failure	400		{object}	map[string][]string
//	@Router		/api/polls/ [post]
func (h *PollsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req apisdk.CreatePollRequest
	if !decode(w, r, &req) {
		return
	}
	p, err := h.Service.CreatePoll(r.Context(), owner(r), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, p)
}
