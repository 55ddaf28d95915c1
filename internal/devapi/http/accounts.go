package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/fireme/internal/devapi/service"
	"github.com/aussiebroadwan/fireme/pkg/apisdk"
	"github.com/aussiebroadwan/fireme/pkg/httpx"
	"github.com/aussiebroadwan/fireme/pkg/slogx"
)

type AccountsHandler struct {
	Service *service.Service
	Tokens  *service.TokenService
}

// HandleRegister creates an account.
//
//	@Summary		Register a user
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apisdk.RegisterRequest	true	"New account"
//	@Success		201		{object}	apisdk.RegisterResponse
//	@Failure		400		{object}	map[string]any	"{success: false, errors: {field: [messages]}}"
//	@Router			/accounts/register/ [post]
func (h *AccountsHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req apisdk.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	id, err := h.Service.Register(r.Context(), req)
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"errors":  verr.Fields,
		})
		return
	case err != nil:
		writeError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("user registered", "user_id", id.ID)
	httpx.WriteJSON(w, http.StatusCreated, apisdk.RegisterResponse{
		Success: true,
		Message: "User Registered Successfully!",
		User:    id,
	})
}

// HandleLogin exchanges a username and password for a token pair.
//
//	@Summary		Log in
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		apisdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	apisdk.LoginResponse
//	@Failure		401		{object}	map[string]any	"{success: false, error: message}"
//	@Router			/accounts/login/ [post]
func (h *AccountsHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req apisdk.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	id, err := h.Service.Authenticate(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteJSON(w, http.StatusUnauthorized, map[string]any{
			"success": false,
			"error":   "Invalid Credentials Provided!",
		})
		return
	case err != nil:
		writeError(w, r, err)
		return
	}

	access, refresh, err := h.Tokens.Issue(id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("user logged in", "user_id", id.ID)
	httpx.WriteJSON(w, http.StatusOK, apisdk.LoginResponse{
		Success: true,
		Message: "Welcome to FireMe !",
		User:    id,
		Access:  access,
		Refresh: refresh,
	})
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// HandleRefresh trades a refresh token for a new access token. With
// rotation enabled the response also carries a new refresh token.
//
//	@Summary		Refresh an access token
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		refreshRequest	true	"Refresh token"
//	@Success		200		{object}	refreshResponse
//	@Failure		400		{object}	map[string][]string	"Missing refresh field"
//	@Failure		401		{object}	map[string]string	"Token is invalid or expired"
//	@Router			/accounts/token/refresh/ [post]
func (h *AccountsHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Refresh == "" {
		writeError(w, r, service.Invalid("refresh", "This field is required."))
		return
	}

	access, rotated, err := h.Tokens.Exchange(req.Refresh)
	if err != nil {
		slogx.FromContext(r.Context()).Debug("refresh rejected", "err", err)
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, refreshResponse{Access: access, Refresh: rotated})
}

type verifyRequest struct {
	Token string `json:"token"`
}

// HandleVerify checks that a token of either type is still valid.
//
//	@Summary		Verify a token
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		verifyRequest	true	"Token"
//	@Success		200		{object}	map[string]string
//	@Failure		401		{object}	map[string]string	"Token is invalid or expired"
//	@Router			/accounts/token/verify [post]
func (h *AccountsHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Token == "" {
		writeError(w, r, service.Invalid("token", "This field is required."))
		return
	}
	if err := h.Tokens.Verify(req.Token); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{})
}
