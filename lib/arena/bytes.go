package arena

import (
	"fmt"
	"unsafe"
)

// Bytes is an analog to []byte, but it represents a byte slice allocated
// under one of the arena tags.
// arena.Bytes is a simple struct that should be passed by value and
// is not considered by Go runtime as a legit pointer type.
// So the GC can skip it during the concurrent mark phase.
//
// arena.Bytes can be converted to []byte by using the BytesToRef function,
// but we'd suggest to do it right before use to eliminate its visibility scope
// and potentially prevent it's escaping to the heap.
// If you want to move a certain arena.Bytes out of arena to the general heap
// you can use the CopyBytesToHeap function.
//
// arena.Bytes also can be used to represent strings allocated under a tag and
// converted to string using BytesToStringRef or CopyBytesToStringOnHeap.
//
// Because a tag's memory is only ever reclaimed in bulk, Bytes is
// construction-only: there is no append or grow operation.
type Bytes struct {
	data Ptr
	len  uintptr
	cap  uintptr
}

// String provides a string snapshot of the current arena.Bytes header.
func (b Bytes) String() string {
	return fmt.Sprintf("{data: %v len: %v cap: %v}", b.data, b.len, b.cap)
}

// Len returns the length of the arena.Bytes. Direct analog of len([]byte)
func (b Bytes) Len() int {
	return int(b.len)
}

// Cap returns the capacity of the arena.Bytes. Direct analog of cap([]byte)
func (b Bytes) Cap() int {
	return int(b.cap)
}

// SubSlice is an analog to []byte[low:high]
// Returns sub-slice of the arena.Bytes and panics in case of bounds out of range.
func (b Bytes) SubSlice(low int, high int) Bytes {
	inBounds := low >= 0 && low <= high && high <= int(b.len)
	if !inBounds {
		panic(fmt.Errorf(
			"runtime error: slice bounds out of range [%d:%d] with length %d",
			low, high, b.len,
		))
	}
	return Bytes{
		data: Ptr{
			offset:    b.data.offset + uint32(low),
			blockIdx:  b.data.blockIdx,
			tag:       b.data.tag,
			arenaMask: b.data.arenaMask,
		},
		len: uintptr(high - low),
		cap: b.cap - uintptr(low),
	}
}

// MakeBytes is a direct analog of make([]byte, len)
// It allocates a byte slice with specified length under the specified tag.
func MakeBytes(a Allocator, tag Tag, length int) (Bytes, error) {
	if length < 0 {
		return Bytes{}, AllocationInvalidArgumentError
	}
	slicePtr, allocErr := a.Alloc(tag, uintptr(length), 1)
	if allocErr != nil {
		return Bytes{}, allocErr
	}
	return Bytes{
		data: slicePtr,
		len:  uintptr(length),
		cap:  uintptr(length),
	}, nil
}

// MakeBytesWithCapacity is a direct analog of make([]byte, len, cap)
// It allocates a byte slice with specified length and capacity under the specified tag.
func MakeBytesWithCapacity(a Allocator, tag Tag, length int, capacity int) (Bytes, error) {
	if capacity < length {
		return Bytes{}, AllocationInvalidArgumentError
	}
	bytes, allocErr := MakeBytes(a, tag, capacity)
	if allocErr != nil {
		return Bytes{}, allocErr
	}
	bytes.len = uintptr(length)
	return bytes, nil
}

// Embed copies specified bytes under the specified tag.
//
// It can be used if you need a full copy with the lifetime of the tag
// or just to hide this byte slice from GC.
func Embed(a Allocator, tag Tag, src []byte) (Bytes, error) {
	result, allocErr := MakeBytes(a, tag, len(src))
	if allocErr != nil {
		return Bytes{}, allocErr
	}
	copy(BytesToRef(a, result), src)
	return result, nil
}

// EmbedAsBytes copies specified bytes under the specified tag
// and returns the copy as []byte.
func EmbedAsBytes(a Allocator, tag Tag, src []byte) ([]byte, error) {
	bytes, allocErr := Embed(a, tag, src)
	if allocErr != nil {
		return nil, allocErr
	}
	return BytesToRef(a, bytes), nil
}

// EmbedAsString copies specified bytes under the specified tag and casts them to string.
func EmbedAsString(a Allocator, tag Tag, src []byte) (string, error) {
	bytes, allocErr := Embed(a, tag, src)
	if allocErr != nil {
		return "", allocErr
	}
	return BytesToStringRef(a, bytes), nil
}

// BytesToRef converts arena.Bytes to []byte,
// but we'd suggest to do it right before use to eliminate its visibility scope
// and potentially prevent it's escaping to the heap.
// If you want to move a certain arena.Bytes out of arena to the general heap
// you can use the CopyBytesToHeap function.
func BytesToRef(a Allocator, bytes Bytes) []byte {
	ref := (*byte)(a.ToRef(bytes.data))
	return unsafe.Slice(ref, bytes.cap)[:bytes.len]
}

// BytesToStringRef converts arena.Bytes to string,
// but we'd suggest to do it right before use to eliminate its visibility scope
// and potentially prevent it's escaping to the heap.
// If you want to move a certain arena.Bytes as a string out of arena to the
// general heap you can use the CopyBytesToStringOnHeap function.
func BytesToStringRef(a Allocator, bytes Bytes) string {
	ref := (*byte)(a.ToRef(bytes.data))
	return unsafe.String(ref, bytes.len)
}

// CopyBytesToHeap copies Bytes to the general heap. Can be used if you want
// this slice to outlive its tag's next Free.
func CopyBytesToHeap(a Allocator, bytes Bytes) []byte {
	copyOnHeap := make([]byte, bytes.len)
	copy(copyOnHeap, BytesToRef(a, bytes))
	return copyOnHeap
}

// CopyBytesToStringOnHeap copies Bytes to the general heap as string.
// Can be used if you want this string to outlive its tag's next Free.
func CopyBytesToStringOnHeap(a Allocator, bytes Bytes) string {
	copyOnHeap := make([]byte, bytes.len)
	copy(copyOnHeap, BytesToRef(a, bytes))
	return unsafe.String(unsafe.SliceData(copyOnHeap), len(copyOnHeap))
}
