package cryptox_test

import (
	"testing"

	"github.com/soloauth/soloauth/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := cryptox.HashPassword("correcthorse")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, "correcthorse", hash)

	require.NoError(t, cryptox.VerifyPassword("correcthorse", hash))
	require.Error(t, cryptox.VerifyPassword("wrongpass", hash))
}

func TestHashPasswordSaltRandomization(t *testing.T) {
	t.Parallel()

	first, err := cryptox.HashPassword("correcthorse")
	require.NoError(t, err)
	second, err := cryptox.HashPassword("correcthorse")
	require.NoError(t, err)

	// Fresh salt per hash, both still verify.
	require.NotEqual(t, first, second)
	require.NoError(t, cryptox.VerifyPassword("correcthorse", first))
	require.NoError(t, cryptox.VerifyPassword("correcthorse", second))
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	t.Parallel()

	// A corrupted stored hash must degrade to a mismatch, never a panic.
	require.Error(t, cryptox.VerifyPassword("anything", "not-a-bcrypt-hash"))
	require.Error(t, cryptox.VerifyPassword("anything", ""))
}
