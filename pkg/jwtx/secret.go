package jwtx

import (
	"sync/atomic"

	"github.com/soloauth/soloauth/pkg/cryptox"
)

// SecretSource supplies the current signing secret. The codec depends on this
// interface rather than the concrete holder so tests can pin a secret.
type SecretSource interface {
	Current() string
}

// SigningSecret holds the process-wide signing secret. Exactly one live value
// exists at a time; Rotate replaces it atomically so concurrent readers always
// observe either the old or the new value and never block.
//
// The secret is never persisted. A process restart generates a brand-new
// value, which invalidates every outstanding bearer credential (session
// tokens are unaffected, only the signed wrapper dies).
type SigningSecret struct {
	v atomic.Value // string
}

// NewSigningSecret returns a holder seeded with a fresh 512-bit secret.
func NewSigningSecret() *SigningSecret {
	s := &SigningSecret{}
	s.v.Store(cryptox.MustGenerateToken(cryptox.TokenSize512))
	return s
}

// Current returns the latest secret. Safe for any number of concurrent
// callers; the cost is a single atomic load.
func (s *SigningSecret) Current() string {
	return s.v.Load().(string)
}

// Rotate swaps in a freshly generated secret and returns it. Credentials
// signed with the previous value fail verification from this point on.
func (s *SigningSecret) Rotate() (string, error) {
	secret, err := cryptox.GenerateToken(cryptox.TokenSize512)
	if err != nil {
		return "", err
	}
	s.v.Store(secret)
	return secret, nil
}
