package arena

import (
	"fmt"
	"unsafe"
)

// Error type used by the library to declare error constants.
type Error string

// Error method that implements error interface.
func (e Error) Error() string {
	return string(e)
}

// AllocationLimitError typically returned if
// allocator can't afford the requested allocation.
const AllocationLimitError = Error("allocation limit")

// AllocationInvalidArgumentError typically returned if
// you passed an invalid argument to the allocation method.
const AllocationInvalidArgumentError = Error("allocation argument is invalid")

// Ptr is a struct, which is basically represents an offset of the allocated value
// inside one of the blocks of the owning tag's chain.
//
// arena.Ptr is a simple struct that should be passed by value and
// is not considered by Go runtime as a legit pointer type.
// So the GC can skip it during the concurrent mark phase.
//
// arena.Ptr can be converted to unsafe.Pointer by using the TaggedArena.ToRef method,
// but we'd suggest to do it right before use to eliminate its visibility scope
// and potentially prevent it's escaping to the heap.
//
// A Ptr becomes invalid as soon as its owning tag is freed.
type Ptr struct {
	offset   uint32
	blockIdx uint32
	tag      Tag

	arenaMask uint16
}

// Tag returns the tag this Ptr was allocated under.
func (p Ptr) Tag() Tag {
	return p.tag
}

// String provides a string snapshot of the current arena.Ptr.
func (p Ptr) String() string {
	return fmt.Sprintf("{mask: %v tag: %v blockIdx: %v offset: %v}", p.arenaMask, p.tag, p.blockIdx, p.offset)
}

// Stats is a struct that represents a snapshot of essential allocation statistics,
// that can be used by end-users or other allocators for introspection.
type Stats struct {
	UsedBytes                int // count of bytes actually allocated and used inside an arena
	AllocatedBytes           int // count of bytes that are allocated inside the general heap
	CountOfOnHeapAllocations int // count of allocations performed inside the general heap
}

// String provides a string snapshot of the Stats state.
func (s Stats) String() string {
	return fmt.Sprintf(
		"{UsedBytes: %v AllocatedBytes %v CountOfOnHeapAllocations %v}",
		s.UsedBytes, s.AllocatedBytes, s.CountOfOnHeapAllocations,
	)
}

// Metrics is a struct that represents a snapshot of current allocation statistics of one tag,
// that can be used by end-users or other allocators for introspection.
type Metrics struct {
	Stats
	AvailableBytes int // count of bytes available in the tag's head block without growing the chain
	MaxCapacity    int // count of bytes that a single request can ask for
}

// String provides a string snapshot of the Metrics state.
func (p Metrics) String() string {
	return fmt.Sprintf(
		"{UsedBytes: %v AvailableBytes: %v AllocatedBytes %v MaxCapacity %v CountOfOnHeapAllocations %v}",
		p.UsedBytes, p.AvailableBytes, p.AllocatedBytes, p.MaxCapacity, p.CountOfOnHeapAllocations,
	)
}

// Allocator is the tag-scoped allocation surface implemented by TaggedArena.
// It is the type to accept in code that shouldn't care which arena instance it works with.
type Allocator interface {
	Alloc(tag Tag, size uintptr, alignment uintptr) (Ptr, error)
	ToRef(p Ptr) unsafe.Pointer
	Free(tag Tag)
	Metrics(tag Tag) Metrics
}
