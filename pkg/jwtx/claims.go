package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultBearerTTL is the default lifetime for bearer credentials.
// Short-lived because rotation of the signing secret is the only other
// way an outstanding credential dies.
const DefaultBearerTTL = 30 * time.Minute

// Claims are the bearer-credential claims. The credential is a thin signed
// wrapper around the server-side session token: possession of a valid
// credential proves nothing about session liveness on its own, callers must
// still resolve the embedded session token against the user record.
type Claims struct {
	jwt.RegisteredClaims

	// SessionToken is the opaque server-side session token this credential
	// wraps. Stored under "sid".
	SessionToken string `json:"sid,omitempty"`
}

// NewBearerClaims builds minimally-correct bearer claims. Subject is the
// username, not a user id, matching what protected handlers display.
func NewBearerClaims(username, sessionToken, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		SessionToken: sessionToken,
	}
}
