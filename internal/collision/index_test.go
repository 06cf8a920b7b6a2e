package collision

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndex(t *testing.T) {
	ix := NewIndex[int](2)
	require.NoError(t, ix.Add("speed", 1))
	require.NoError(t, ix.Add("time", 2))

	v, ok := ix.Lookup("time")
	require.True(t, ok)
	require.Equal(t, 2, v)

	_, ok = ix.Lookup("rpm")
	require.False(t, ok)

	require.Equal(t, 2, ix.Len())
	require.Equal(t, []string{"speed", "time"}, ix.Names())
	require.False(t, ix.HasCollision())
}

func TestIndexErrors(t *testing.T) {
	ix := NewIndex[int](0)

	require.ErrorIs(t, ix.Add("", 1), ErrEmptyName)
	require.NoError(t, ix.Add("a", 1))
	require.ErrorIs(t, ix.Add("a", 2), ErrDuplicateName)

	v, ok := ix.Lookup("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
	require.Equal(t, 1, ix.Len())
}

func TestIndexCollision(t *testing.T) {
	// every name collides
	ix := newIndex[string](0, func(string) uint64 { return 7 })

	require.NoError(t, ix.Add("a", "first"))
	require.False(t, ix.HasCollision())
	require.NoError(t, ix.Add("b", "second"))
	require.True(t, ix.HasCollision())
	require.ErrorIs(t, ix.Add("b", "again"), ErrDuplicateName)

	v, ok := ix.Lookup("a")
	require.True(t, ok)
	require.Equal(t, "first", v)

	v, ok = ix.Lookup("b")
	require.True(t, ok)
	require.Equal(t, "second", v)

	_, ok = ix.Lookup("c")
	require.False(t, ok)
}
