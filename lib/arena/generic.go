package arena

import "unsafe"

// New allocates storage for one value of type T under the specified tag and
// returns a pointer to a zero value constructed in place.
//
// The pointer stays valid until the tag is freed. Freeing a tag reclaims raw
// memory only: no finalization runs for values created this way, so T should
// not own resources that need explicit teardown.
func New[T any](a Allocator, tag Tag) (*T, error) {
	var zero T
	return NewAligned[T](a, tag, unsafe.Alignof(zero))
}

// NewAligned is New with the natural alignment of T overridden for this
// allocation. Alignment isn't validated, same as in Alloc.
func NewAligned[T any](a Allocator, tag Tag, alignment uintptr) (*T, error) {
	var zero T
	p, allocErr := a.Alloc(tag, unsafe.Sizeof(zero), alignment)
	if allocErr != nil {
		return nil, allocErr
	}
	result := (*T)(a.ToRef(p))
	*result = zero
	return result, nil
}

// MakeSlice allocates a slice of length values of type T under the specified
// tag, zeroed. It is a direct analog of make([]T, length) placed inside the
// arena and fails like Alloc when the whole element array can't fit into one
// block. Returns nil for length == 0.
func MakeSlice[T any](a Allocator, tag Tag, length int) ([]T, error) {
	if length < 0 {
		return nil, AllocationInvalidArgumentError
	}
	if length == 0 {
		return nil, nil
	}
	var zero T
	p, allocErr := a.Alloc(tag, unsafe.Sizeof(zero)*uintptr(length), unsafe.Alignof(zero))
	if allocErr != nil {
		return nil, allocErr
	}
	result := unsafe.Slice((*T)(a.ToRef(p)), length)
	for i := range result {
		result[i] = zero
	}
	return result, nil
}
