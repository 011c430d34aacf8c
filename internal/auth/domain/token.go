package domain

import "time"

// TokenPair is what the login endpoint returns: the signed bearer credential
// wrapping the freshly issued session token. There is no refresh token; when
// the credential expires the client logs in again.
type TokenPair struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"` // always "bearer"
	ExpiresIn   time.Duration `json:"expires_in"` // seconds until expiry

	// SessionToken is the opaque server-side token embedded in AccessToken.
	// Not serialized; the only external representation is inside the signed
	// credential.
	SessionToken string `json:"-"`
}
