package idx_test

import (
	"testing"
	"time"

	"github.com/soloauth/soloauth/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewProducesValidSortableIDs(t *testing.T) {
	t.Parallel()

	a := idx.New()
	b := idx.New()

	require.False(t, a.IsZero())
	require.NotEqual(t, a, b)

	// Monotonic entropy: IDs generated in order sort in order.
	require.Less(t, a.String(), b.String())

	_, err := idx.Parse(a.String())
	require.NoError(t, err)
}

func TestParseRejectsMalformed(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "  ", "not-a-ulid", "0000"} {
		_, err := idx.Parse(s)
		require.ErrorIs(t, err, idx.ErrInvalid)
	}
}

func TestIDTime(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	id := idx.NewAt(at)
	require.WithinDuration(t, at, id.Time(), time.Millisecond)

	require.True(t, idx.Zero.Time().IsZero())
}
