package jwtx_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/soloauth/soloauth/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

// fixedSecret pins the signing secret for deterministic tests.
type fixedSecret string

func (s fixedSecret) Current() string { return string(s) }

func newTestCodec() *jwtx.Codec {
	return &jwtx.Codec{
		Secrets: jwtx.NewSigningSecret(),
		Issuer:  "soloauth-test",
		TTL:     30 * time.Minute,
	}
}

func TestCodecIssueVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	codec := newTestCodec()
	now := time.Now()

	raw, err := codec.Issue("alice", "session-token-1", now)
	require.NoError(t, err)

	claims, err := codec.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Subject)
	require.Equal(t, "session-token-1", claims.SessionToken)
	require.Equal(t, "soloauth-test", claims.Issuer)
	require.WithinDuration(t, now.Add(30*time.Minute), claims.ExpiresAt.Time, time.Second)
}

func TestCodecVerifyExpired(t *testing.T) {
	t.Parallel()

	codec := newTestCodec()

	// Issued far enough in the past that exp is behind us, signature still valid.
	raw, err := codec.Issue("alice", "session-token-1", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = codec.Verify(raw)
	require.ErrorIs(t, err, jwtx.ErrTokenExpired)
}

func TestCodecVerifyGarbage(t *testing.T) {
	t.Parallel()

	codec := newTestCodec()

	for _, raw := range []string{"", "not-base64-garbage", "a.b.c", "\x00\x01\x02"} {
		_, err := codec.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	}
}

func TestCodecVerifyRejectsRotatedSecret(t *testing.T) {
	t.Parallel()

	secrets := jwtx.NewSigningSecret()
	codec := &jwtx.Codec{Secrets: secrets, Issuer: "soloauth-test", TTL: 30 * time.Minute}

	before, err := codec.Issue("alice", "session-token-1", time.Now())
	require.NoError(t, err)

	_, err = secrets.Rotate()
	require.NoError(t, err)

	// Pre-rotation credential is now indistinguishable from invalid.
	_, err = codec.Verify(before)
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)

	// Post-rotation credentials verify until their own expiry.
	after, err := codec.Issue("alice", "session-token-1", time.Now())
	require.NoError(t, err)
	_, err = codec.Verify(after)
	require.NoError(t, err)
}

func TestCodecVerifyRequiresSubjectAndSession(t *testing.T) {
	t.Parallel()

	secret := fixedSecret("test-secret")
	codec := &jwtx.Codec{Secrets: secret, Issuer: "soloauth-test"}

	sign := func(claims jwtx.Claims) string {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		return raw
	}

	now := time.Now()

	missingSession := jwtx.NewBearerClaims("alice", "", "soloauth-test", time.Hour, now)
	_, err := codec.Verify(sign(missingSession))
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)

	missingSubject := jwtx.NewBearerClaims("", "session-token-1", "soloauth-test", time.Hour, now)
	_, err = codec.Verify(sign(missingSubject))
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)
}

func TestCodecRejectsUnexpectedAlgorithm(t *testing.T) {
	t.Parallel()

	codec := &jwtx.Codec{Secrets: fixedSecret("test-secret"), Issuer: "soloauth-test"}

	claims := jwtx.NewBearerClaims("alice", "session-token-1", "soloauth-test", time.Hour, time.Now())
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = codec.Verify(unsigned)
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)
}
