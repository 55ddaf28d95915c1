package http

import (
	"net/http"

	"github.com/aussiebroadwan/fireme/internal/devapi/service"
	"github.com/aussiebroadwan/fireme/pkg/httpx"
)

type QuestionsHandler struct {
	Service *service.Service
}

type questionBody struct {
	Question string `json:"question"`
}

type answerBody struct {
	Answer string `json:"answer"`
}

// HandleList godoc
//
//	@Summary	List questions
//	@Tags		Questions
//	@Produce	json
//	@Security	BearerAuth
//	@Param		search	query	string	false	"Case-insensitive substring"
//	@Success	200		{array}	apisdk.Question
//	@Router		/api/questions/ [get]
func (h *QuestionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.Service.ListQuestions(r.Context(), owner(r), r.URL.Query().Get("search")))
}

// HandleCreate godoc
//
//	@Summary	Create a question
//	@Tags		Questions
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		questionBody	true	"Question"
//	@Success	201		{object}	apisdk.Question
//	@Failure	400		{object}	map[string][]string
//	@Router		/api/questions/ [post]
func (h *QuestionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req questionBody
	if !decode(w, r, &req) {
		return
	}
	q, err := h.Service.CreateQuestion(r.Context(), owner(r), req.Question)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, q)
}

// HandleUpdate godoc
//
//	@Summary	Edit a question
//	@Tags		Questions
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int				true	"Question id"
//	@Param		request	body		questionBody	true	"Question"
//	@Success	200		{object}	apisdk.Question
//	@Failure	400		{object}	map[string][]string
//	@Failure	404		{object}	map[string]string
//	@Router		/api/questions/{id}/ [patch]
func (h *QuestionsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req questionBody
	if !decode(w, r, &req) {
		return
	}
	q, err := h.Service.UpdateQuestion(r.Context(), owner(r), id, req.Question)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, q)
}

// HandleDelete godoc
//
//	@Summary	Delete a question and its answers
//	@Tags		Questions
//	@Security	BearerAuth
//	@Param		id	path	int	true	"Question id"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/api/questions/{id}/ [delete]
func (h *QuestionsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Service.DeleteQuestion(r.Context(), owner(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListAnswers godoc
//
//	@Summary	List a question's answers
//	@Tags		Answers
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path	int	true	"Question id"
//	@Success	200	{array}	apisdk.Answer
//	@Failure	404	{object}	map[string]string
//	@Router		/api/questions/{id}/answers/ [get]
func (h *QuestionsHandler) HandleListAnswers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	answers, err := h.Service.ListAnswers(r.Context(), owner(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, answers)
}

// HandleAddAnswer godoc
//
//	@Summary	Add an answer to a question
//	@Tags		Answers
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int			true	"Question id"
//	@Param		request	body		answerBody	true	"Answer"
//	@Success	201		{object}	apisdk.Answer
//	@Failure	400		{object}	map[string][]string
//	@Router		/api/questions/{id}/add_answer/ [post]
func (h *QuestionsHandler) HandleAddAnswer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req answerBody
	if !decode(w, r, &req) {
		return
	}
	a, err := h.Service.AddAnswer(r.Context(), owner(r), id, req.Answer)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, a)
}

// HandleUpdateAnswer godoc
//
//	@Summary	Edit an answer
//	@Tags		Answers
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int			true	"Answer id"
//	@Param		request	body		answerBody	true	"Answer"
//	@Success	200		{object}	apisdk.Answer
//	@Failure	400		{object}	map[string][]string
//	@Router		/api/answers/{id}/ [patch]
func (h *QuestionsHandler) HandleUpdateAnswer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req answerBody
	if !decode(w, r, &req) {
		return
	}
	a, err := h.Service.UpdateAnswer(r.Context(), owner(r), id, req.Answer)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, a)
}

// HandleDeleteAnswer godoc
//
//	@Summary	Delete an answer
//	@Tags		Answers
//	@Security	BearerAuth
//	@Param		id	path	int	true	"Answer id"
//	@Success	204
//	@Router		/api/answers/{id}/ [delete]
func (h *QuestionsHandler) HandleDeleteAnswer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Service.DeleteAnswer(r.Context(), owner(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
