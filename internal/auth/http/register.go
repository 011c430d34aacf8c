package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/soloauth/soloauth/internal/auth/service"
	"github.com/soloauth/soloauth/pkg/httpx"
	"github.com/soloauth/soloauth/pkg/slogx"
)

type RegisterHandler struct {
	SessionService *service.SessionService
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "request body is not valid JSON")
		return
	}
	if req.Username == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "username and password are required")
		return
	}

	if err := h.SessionService.Register(ctx, req.Username, req.Password); err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			httpx.WriteError(w, http.StatusConflict, "username_taken", "that username is already registered")
			return
		}
		log.Error("register failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "registration failed")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]string{"username": req.Username})
}
