package idx_test

import (
	"testing"

	"github.com/sweetsprouts/backend/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewProducesUniqueSortableIDs(t *testing.T) {
	t.Parallel()

	seen := make(map[idx.ID]struct{})
	var prev idx.ID

	for range 100 {
		id := idx.New()
		require.Len(t, id.String(), 26)

		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}

		// Monotonic entropy keeps same-millisecond IDs ordered.
		require.Greater(t, id.String(), prev.String())
		prev = id
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	id := idx.New()

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	for _, bad := range []string{"", "  ", "not-a-ulid", "0000", "01K0000000000000000000000"} {
		_, err := idx.Parse(bad)
		require.ErrorIs(t, err, idx.ErrInvalid)
	}
}
