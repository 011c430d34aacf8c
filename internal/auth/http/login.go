package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/soloauth/soloauth/internal/auth/service"
	"github.com/soloauth/soloauth/pkg/httpx"
	"github.com/soloauth/soloauth/pkg/slogx"
)

type LoginHandler struct {
	SessionService *service.SessionService
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "request body is not valid JSON")
		return
	}
	if req.Username == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "username and password are required")
		return
	}

	pair, err := h.SessionService.Login(ctx, req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "incorrect username or password")
		return
	case errors.Is(err, service.ErrAlreadyLoggedIn):
		httpx.WriteError(w, http.StatusConflict, "already_logged_in", "user already has an active session")
		return
	case err != nil:
		log.Error("login failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "login failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		AccessToken: pair.AccessToken,
		TokenType:   pair.TokenType,
		ExpiresIn:   int(pair.ExpiresIn.Seconds()),
	})
}
