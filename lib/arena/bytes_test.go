package arena_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/memarena/taggedheap/lib/arena"
)

func TestMakeBytesAllocation(t *testing.T) {
	a := arena.NewTaggedArena()

	bytes, allocErr := arena.MakeBytes(a, arena.TagGame, 16)
	require.NoError(t, allocErr)
	require.Equal(t, 16, bytes.Len())
	require.Equal(t, 16, bytes.Cap())
	require.NotEmpty(t, bytes.String())

	asSlice := arena.BytesToRef(a, bytes)
	require.Len(t, asSlice, 16)
	for i := range asSlice {
		require.Zero(t, asSlice[i], "fresh bytes should be zeroed")
	}
}

func TestMakeBytesWithCapacity(t *testing.T) {
	a := arena.NewTaggedArena()

	bytes, allocErr := arena.MakeBytesWithCapacity(a, arena.TagGame, 4, 16)
	require.NoError(t, allocErr)
	require.Equal(t, 4, bytes.Len())
	require.Equal(t, 16, bytes.Cap())

	_, allocErr = arena.MakeBytesWithCapacity(a, arena.TagGame, 16, 4)
	require.ErrorIs(t, allocErr, arena.AllocationInvalidArgumentError)
}

func TestEmbedRoundTrip(t *testing.T) {
	a := arena.NewTaggedArena()

	src := []byte("tagged heap payload")
	bytes, allocErr := arena.Embed(a, arena.TagRendering, src)
	require.NoError(t, allocErr)
	require.Equal(t, src, arena.BytesToRef(a, bytes))

	// mutating the source must not affect the embedded copy
	src[0] = 'T'
	require.Equal(t, byte('t'), arena.BytesToRef(a, bytes)[0])
}

func TestEmbedAsString(t *testing.T) {
	a := arena.NewTaggedArena()

	str, allocErr := arena.EmbedAsString(a, arena.TagShared, []byte("Richard Bahman"))
	require.NoError(t, allocErr)
	require.Equal(t, "Richard Bahman", str)

	asBytes, allocErr := arena.EmbedAsBytes(a, arena.TagShared, []byte("John Smith"))
	require.NoError(t, allocErr)
	require.Equal(t, "John Smith", string(asBytes))
}

func TestBytesSubSlice(t *testing.T) {
	a := arena.NewTaggedArena()

	bytes, allocErr := arena.Embed(a, arena.TagGame, []byte("0123456789"))
	require.NoError(t, allocErr)

	sub := bytes.SubSlice(2, 5)
	require.Equal(t, 3, sub.Len())
	require.Equal(t, "234", arena.BytesToStringRef(a, sub))

	require.Panics(t, func() { bytes.SubSlice(5, 2) })
	require.Panics(t, func() { bytes.SubSlice(0, 11) })
}

func TestCopyBytesToHeapSurvivesFree(t *testing.T) {
	a := arena.NewTaggedArena()

	bytes, allocErr := arena.Embed(a, arena.TagGame, []byte("survivor"))
	require.NoError(t, allocErr)

	onHeap := arena.CopyBytesToHeap(a, bytes)
	onHeapStr := arena.CopyBytesToStringOnHeap(a, bytes)
	a.Free(arena.TagGame)

	require.Equal(t, []byte("survivor"), onHeap)
	require.Equal(t, "survivor", onHeapStr)
}

func TestBytesUnderInvalidTag(t *testing.T) {
	a := arena.NewTaggedArena()

	_, allocErr := arena.MakeBytes(a, arena.TagCount, 8)
	require.ErrorIs(t, allocErr, arena.AllocationInvalidArgumentError)

	_, allocErr = arena.MakeBytes(a, arena.TagGame, -1)
	require.ErrorIs(t, allocErr, arena.AllocationInvalidArgumentError)
}
