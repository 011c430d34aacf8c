package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/soloauth/soloauth/internal/auth/service"
	"github.com/soloauth/soloauth/pkg/httpx"
	"github.com/soloauth/soloauth/pkg/jwtx"
	"github.com/soloauth/soloauth/pkg/slogx"
)

// BearerAuth verifies the bearer credential and then confirms the embedded
// session token is still the one on record. A valid signature and expiry
// alone prove nothing about liveness: a credential referencing a logged-out
// session must be rejected even before its expiry.
func BearerAuth(codec *jwtx.Codec, sessions *service.SessionService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := codec.Verify(raw)
			if err != nil {
				if errors.Is(err, jwtx.ErrTokenExpired) {
					writeBearerError(w, "token expired")
					return
				}
				log.Warn("bearer verification failed", "error", err)
				writeBearerError(w, "token verification failed")
				return
			}

			u, err := sessions.GetUserBySessionToken(ctx, claims.SessionToken)
			if err != nil || u.Username != claims.Subject {
				writeBearerError(w, "session is no longer active")
				return
			}

			ctx = context.WithValue(ctx, httpx.CtxKeyUserID, u.ID)
			ctx = context.WithValue(ctx, httpx.CtxKeyUsername, u.Username)
			ctx = context.WithValue(ctx, httpx.CtxKeySessionToken, claims.SessionToken)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
