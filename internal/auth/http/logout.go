package http

import (
	"errors"
	"net/http"

	"github.com/soloauth/soloauth/internal/auth/service"
	"github.com/soloauth/soloauth/pkg/httpx"
	"github.com/soloauth/soloauth/pkg/slogx"
)

type LogoutHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP ends the session embedded in the presented bearer credential.
// The middleware has already proven the session is live, but a concurrent
// logout can still win the race, in which case this reports 404.
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token, ok := httpx.SessionTokenFromContext(ctx)
	if !ok {
		writeBearerError(w, "missing bearer token")
		return
	}

	if err := h.SessionService.Logout(ctx, token); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "session_not_found", "no active session matches this token")
			return
		}
		log.Error("logout failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "logout failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
