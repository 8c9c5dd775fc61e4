package main

import (
	"fmt"

	"github.com/memarena/taggedheap/lib/arena"
)

type testingObject struct {
	a   int32
	asd string
}

func main() {
	heap := arena.NewTaggedArena()
	defer heap.Release()

	bytePtr, allocErr := arena.New[uint8](heap, arena.TagGame)
	if allocErr != nil {
		panic(allocErr)
	}
	*bytePtr = 10
	fmt.Printf("byte under %v tag: %v\n", arena.TagGame, *bytePtr)

	object, allocErr := arena.New[testingObject](heap, arena.TagGame)
	if allocErr != nil {
		panic(allocErr)
	}
	object.a = 10
	object.asd = "123"
	object.a *= 2
	fmt.Printf("object under %v tag: %+v\n", arena.TagGame, *object)

	fmt.Printf("game tag metrics before free: %v\n", heap.Metrics(arena.TagGame))
	heap.Free(arena.TagGame)
	fmt.Printf("game tag metrics after free: %v\n", heap.Metrics(arena.TagGame))
}
