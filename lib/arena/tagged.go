package arena

import (
	"fmt"
	"math/rand"
	"unsafe"
)

// TaggedArena is a fixed-capacity, tag-scoped bump allocator.
//
// Memory is requested against a coarse lifetime tag instead of being freed
// individually, and an entire tag's memory is released in one Free call.
// Every tag owns an independent chain of fixed-size blocks; allocations are
// always served from the newest block of the requested tag's chain, and the
// chain grows by one fresh block whenever the newest block can't fit a request.
//
// TaggedArena is not safe for concurrent use: every operation runs to
// completion on the caller's goroutine and nothing else is expected to touch
// arena state at the same time.
//
// The zero value is ready to use.
type TaggedArena struct {
	chains [TagCount]blockChain

	usedBytes         int
	allocatedBytes    int
	onHeapAllocations int

	zeroPointerTarget [1]byte
}

// blockChain is the per-tag state: an owned sequence of blocks, newest last.
// Only the newest block ever receives allocations; older blocks stay frozen
// until the whole chain is torn down.
type blockChain struct {
	blocks []block

	usedBytes         int
	onHeapAllocations int

	arenaMask uint16
}

// NewTaggedArena creates a ready arena with one empty chain per tag.
// Chains are seeded lazily: the first allocation under a tag allocates
// that tag's first block.
func NewTaggedArena() *TaggedArena {
	result := &TaggedArena{}
	result.init()
	return result
}

// Alloc allocates size bytes under the specified tag.
//
// It returns arena.Ptr value, which is basically an offset and index of the
// chain block used for this allocation.
//
// A full alignment worth of padding is charged on top of size, so the
// largest satisfiable request is size+alignment == BlockSize.
// Requests with size > BlockSize and requests under the TagCount sentinel
// or any other invalid tag are rejected outright.
//
// arena.Ptr can be converted to unsafe.Pointer by using the TaggedArena.ToRef
// method, but we'd suggest to do it right before use to eliminate its
// visibility scope and potentially prevent it's escaping to the heap.
func (a *TaggedArena) Alloc(tag Tag, size uintptr, alignment uintptr) (Ptr, error) {
	if !tag.Valid() {
		return Ptr{}, AllocationInvalidArgumentError
	}
	if size > BlockSize {
		return Ptr{}, AllocationLimitError
	}
	a.init()

	chain := &a.chains[tag]
	if len(chain.blocks) == 0 {
		a.grow(chain)
	}

	head := &chain.blocks[len(chain.blocks)-1]
	allocationOffset, allocErr := head.alloc(size, alignment)
	if allocErr != nil {
		// The head ran out of space for this request. Older blocks are never
		// revisited even if they still have room, so grow the chain and retry
		// once on a fresh block. A fresh block can still refuse the request
		// when size+alignment exceeds BlockSize.
		a.grow(chain)
		head = &chain.blocks[len(chain.blocks)-1]
		allocationOffset, allocErr = head.alloc(size, alignment)
		if allocErr != nil {
			return Ptr{}, allocErr
		}
	}

	consumedBytes := int(size) + consumedPadding(alignment)
	chain.usedBytes += consumedBytes
	a.usedBytes += consumedBytes

	return Ptr{
		offset:    allocationOffset,
		blockIdx:  uint32(len(chain.blocks) - 1),
		tag:       tag,
		arenaMask: chain.arenaMask,
	}, nil
}

// ToRef converts arena.Ptr to unsafe.Pointer.
//
// ToRef has protection and can panic if you try to convert arena.Ptr
// that was allocated by another arena or under a tag that was freed after
// the allocation, this is done by comparison of arena.Ptr.arenaMask fields.
//
// We'd suggest calling this method right before using the result pointer
// to eliminate its visibility scope and potentially prevent it's escaping
// to the heap.
func (a *TaggedArena) ToRef(p Ptr) unsafe.Pointer {
	if !p.tag.Valid() {
		panic("pointer isn't part of this arena")
	}
	a.init()
	chain := &a.chains[p.tag]
	if p.arenaMask != chain.arenaMask {
		panic("pointer isn't part of this arena")
	}
	targetBlock := &chain.blocks[p.blockIdx]
	if int(p.offset) == len(targetBlock.buffer) {
		// a zero-sized allocation on a full block sits one past the end of
		// the buffer; hand out a dedicated target instead of another
		// allocation's bytes
		return unsafe.Pointer(&a.zeroPointerTarget[0])
	}
	return unsafe.Pointer(&targetBlock.buffer[p.offset])
}

// Free releases all memory allocated under the specified tag in one bulk
// operation. Every Ptr previously returned for that tag becomes invalid:
// feeding one to ToRef panics, and unsafe.Pointer references already
// obtained from ToRef must not be used.
//
// No per-allocation cleanup runs: values placed in the arena are not
// finalized, their storage is simply reclaimed.
//
// Free on the TagCount sentinel or any other invalid tag is a no-op,
// and so is Free on a tag with no live allocations.
func (a *TaggedArena) Free(tag Tag) {
	if !tag.Valid() {
		return
	}
	chain := &a.chains[tag]
	a.usedBytes -= chain.usedBytes
	a.allocatedBytes -= len(chain.blocks) * BlockSize
	chain.blocks = nil
	chain.usedBytes = 0
	chain.arenaMask = (chain.arenaMask + 1) | 1
}

// Release frees every tag in turn. The arena stays usable afterwards:
// the next allocation under any tag seeds a fresh chain, exactly as on a
// newly constructed arena.
func (a *TaggedArena) Release() {
	for tag := TagShared; tag < TagCount; tag++ {
		a.Free(tag)
	}
}

// Stats provides a snapshot of essential arena-wide allocation statistics,
// that can be used by end-users or other allocators for introspection.
func (a *TaggedArena) Stats() Stats {
	return Stats{
		UsedBytes:                a.usedBytes,
		AllocatedBytes:           a.allocatedBytes,
		CountOfOnHeapAllocations: a.onHeapAllocations,
	}
}

// Metrics provides a snapshot of current allocation statistics of one tag,
// that can be used by end-users or other allocators for introspection.
// Metrics of an invalid tag are zero.
func (a *TaggedArena) Metrics(tag Tag) Metrics {
	if !tag.Valid() {
		return Metrics{}
	}
	chain := &a.chains[tag]
	availableBytes := 0
	if len(chain.blocks) > 0 {
		availableBytes = chain.blocks[len(chain.blocks)-1].availableBytes()
	}
	return Metrics{
		Stats: Stats{
			UsedBytes:                chain.usedBytes,
			AllocatedBytes:           len(chain.blocks) * BlockSize,
			CountOfOnHeapAllocations: chain.onHeapAllocations,
		},
		AvailableBytes: availableBytes,
		MaxCapacity:    BlockSize,
	}
}

// String provides a string snapshot of the current arena state.
func (a *TaggedArena) String() string {
	return fmt.Sprintf("taggedarena{%v}", a.Stats())
}

// grow appends one fresh block to the chain, making it the new head.
// Freed blocks are never pooled: every grow is a fresh system allocation.
func (a *TaggedArena) grow(chain *blockChain) {
	chain.blocks = append(chain.blocks, newBlock())
	chain.onHeapAllocations++
	a.allocatedBytes += BlockSize
	a.onHeapAllocations++
}

func (a *TaggedArena) init() {
	if a.chains[0].arenaMask != 0 {
		return
	}
	for i := range a.chains {
		a.chains[i].arenaMask = uint16(rand.Uint32()) | 1
	}
}
