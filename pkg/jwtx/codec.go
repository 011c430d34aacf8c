package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers malformed input, bad signatures and missing
	// required claims. A credential signed with a rotated-out secret lands
	// here too: it is indistinguishable from garbage on purpose, rotation
	// means mass invalidation.
	ErrInvalidToken = errors.New("jwtx: invalid token")

	// ErrTokenExpired is returned for a correctly signed credential whose
	// expiry has passed.
	ErrTokenExpired = errors.New("jwtx: token expired")
)

// Codec signs and verifies bearer credentials with HMAC-SHA256, keyed by the
// current value of the injected SecretSource. Issue and Verify are pure
// functions of their inputs plus the current secret.
type Codec struct {
	Secrets SecretSource
	Issuer  string
	TTL     time.Duration
}

// Issue wraps a session token in a signed credential for the given user,
// expiring at now+TTL.
func (c *Codec) Issue(username, sessionToken string, now time.Time) (string, error) {
	ttl := c.TTL
	if ttl <= 0 {
		ttl = DefaultBearerTTL
	}

	claims := NewBearerClaims(username, sessionToken, c.Issuer, ttl, now)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.Secrets.Current()))
}

// Verify checks the signature against the current secret and validates
// expiry. It returns ErrTokenExpired only when the signature is good but the
// credential is past its exp claim; every other failure, including a missing
// subject or session token, is ErrInvalidToken. Malformed input never panics.
func (c *Codec) Verify(raw string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(c.Secrets.Current()), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrInvalidToken
	}

	if claims.Subject == "" || claims.SessionToken == "" {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}
