package arena_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/memarena/taggedheap/lib/arena"
)

type person struct {
	name    string
	age     uint
	manager *person
}

func TestTypedAllocation(t *testing.T) {
	a := arena.NewTaggedArena()

	p, allocErr := arena.New[person](a, arena.TagGame)
	require.NoError(t, allocErr)
	require.Equal(t, person{}, *p, "typed allocation should produce a zero value")

	p.name = "John Smith"
	p.age = 21
	require.Equal(t, "John Smith", p.name)
	require.Equal(t, uint(21), p.age)
}

func TestTypedAllocationMutateAndFree(t *testing.T) {
	a := arena.NewTaggedArena()

	sharedPtr, allocErr := arena.New[uint32](a, arena.TagShared)
	require.NoError(t, allocErr)
	*sharedPtr = 7

	object, allocErr := arena.New[person](a, arena.TagGame)
	require.NoError(t, allocErr)
	object.age = 10
	object.age *= 2
	require.Equal(t, uint(20), object.age)

	a.Free(arena.TagGame)
	require.Equal(t, uint32(7), *sharedPtr, "freeing one tag must not disturb another tag's values")
}

func TestTypedAllocationWithAlignmentOverride(t *testing.T) {
	a := arena.NewTaggedArena()

	p, allocErr := arena.NewAligned[byte](a, arena.TagGPU, 64)
	require.NoError(t, allocErr)
	*p = 0xFF
	require.Equal(t, 65, a.Metrics(arena.TagGPU).UsedBytes)
}

func TestTypedAllocationUnderInvalidTag(t *testing.T) {
	a := arena.NewTaggedArena()

	_, allocErr := arena.New[person](a, arena.TagCount)
	require.ErrorIs(t, allocErr, arena.AllocationInvalidArgumentError)
}

func TestMakeSlice(t *testing.T) {
	a := arena.NewTaggedArena()

	ints, allocErr := arena.MakeSlice[int64](a, arena.TagRendering, 100)
	require.NoError(t, allocErr)
	require.Len(t, ints, 100)
	for i := range ints {
		require.Zero(t, ints[i])
		ints[i] = int64(i)
	}
	require.Equal(t, int64(99), ints[99])

	people, allocErr := arena.MakeSlice[person](a, arena.TagRendering, 3)
	require.NoError(t, allocErr)
	people[2] = person{name: "Boss", age: 55}
	require.Equal(t, int64(0), ints[0], "slices under one tag must not overlap")
}

func TestMakeSliceEdgeCases(t *testing.T) {
	a := arena.NewTaggedArena()

	empty, allocErr := arena.MakeSlice[byte](a, arena.TagGame, 0)
	require.NoError(t, allocErr)
	require.Nil(t, empty)

	_, allocErr = arena.MakeSlice[byte](a, arena.TagGame, -1)
	require.ErrorIs(t, allocErr, arena.AllocationInvalidArgumentError)

	_, allocErr = arena.MakeSlice[byte](a, arena.TagGame, arena.BlockSize+1)
	require.ErrorIs(t, allocErr, arena.AllocationLimitError)
}
