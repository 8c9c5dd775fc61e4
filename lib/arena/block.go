package arena

// BlockSize is the fixed capacity of every block in a tag's chain, 2 MiB.
// It is also the hard ceiling for a single allocation: no request larger
// than one block can ever be satisfied.
const BlockSize = 2 << 20

// block is a standalone fixed-capacity bump allocator.
// It owns one contiguous buffer and a monotonically non-decreasing offset
// and knows nothing about tags or other blocks.
type block struct {
	buffer []byte
	offset uint32
}

func newBlock() block {
	return block{buffer: make([]byte, BlockSize)}
}

// alloc reserves a full alignment worth of padding up front, regardless of
// how the current offset is already aligned, and then the payload itself.
// Alignment of 1 (or 0) reserves no padding.
//
// On failure the offset is left untouched and the block stays usable for
// smaller requests, though the chain owning it never retries old blocks.
func (b *block) alloc(size uintptr, alignment uintptr) (uint32, error) {
	padding := consumedPadding(alignment)
	if int(size)+padding > len(b.buffer)-int(b.offset) {
		return 0, AllocationLimitError
	}
	b.offset += uint32(padding)
	allocationOffset := b.offset
	b.offset += uint32(size)
	return allocationOffset, nil
}

func (b *block) availableBytes() int {
	return len(b.buffer) - int(b.offset)
}

func consumedPadding(alignment uintptr) int {
	if alignment <= 1 {
		return 0
	}
	return int(alignment)
}
