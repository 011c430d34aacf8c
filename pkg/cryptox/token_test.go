package cryptox_test

import (
	"testing"

	"github.com/soloauth/soloauth/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	a, err := cryptox.GenerateToken(cryptox.TokenSize512)
	require.NoError(t, err)
	b, err := cryptox.GenerateToken(cryptox.TokenSize512)
	require.NoError(t, err)

	require.Len(t, a, 86) // 64 bytes base64url, no padding
	require.NotEqual(t, a, b)
}

func TestGenerateTokenRejectsNonPositiveSize(t *testing.T) {
	t.Parallel()

	_, err := cryptox.GenerateToken(0)
	require.Error(t, err)
	_, err = cryptox.GenerateToken(-1)
	require.Error(t, err)
}
