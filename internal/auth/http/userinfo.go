package http

import (
	"net/http"
	"time"

	"github.com/soloauth/soloauth/internal/auth/service"
	"github.com/soloauth/soloauth/pkg/httpx"
	"github.com/soloauth/soloauth/pkg/slogx"
)

type UserInfoHandler struct {
	SessionService *service.SessionService
}

type userInfoResponse struct {
	UserID    string     `json:"user_id"`
	Username  string     `json:"username"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token, ok := httpx.SessionTokenFromContext(ctx)
	if !ok {
		writeBearerError(w, "missing bearer token")
		return
	}

	// Re-read instead of trusting claims: the record is the source of truth.
	u, err := h.SessionService.GetUserBySessionToken(ctx, token)
	if err != nil {
		log.Warn("failed to load user for session", "error", err)
		writeBearerError(w, "session is no longer active")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userInfoResponse{
		UserID:    u.ID,
		Username:  u.Username,
		LastLogin: u.LastLogin,
	})
}
