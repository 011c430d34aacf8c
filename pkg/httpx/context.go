package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID       ctxKey = "user_id"
	CtxKeyUsername     ctxKey = "username"
	CtxKeySessionToken ctxKey = "session_token"
)

// UserIDFromContext returns the authenticated user's id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(CtxKeyUserID).(string)
	return v, ok && v != ""
}

// UsernameFromContext returns the authenticated username, if any.
func UsernameFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(CtxKeyUsername).(string)
	return v, ok && v != ""
}

// SessionTokenFromContext returns the live session token for the request, if any.
func SessionTokenFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(CtxKeySessionToken).(string)
	return v, ok && v != ""
}
