package arena

import "context"

type allocatorCtxKey string

const arenaCtxKey allocatorCtxKey = "_arCtxK"

// WithAllocator binds ctx to the target tagged allocator so that code deeper
// in the call tree can allocate under the caller's tags without the arena
// being threaded through every signature. Retrieve it with GetAllocator or
// GetAllocatorOrDefault.
func WithAllocator(ctx context.Context, allocator Allocator) context.Context {
	return context.WithValue(ctx, arenaCtxKey, allocator)
}

// GetAllocator returns the tagged allocator bound to this ctx.
// The second result reports whether a TaggedArena (or any other Allocator)
// was bound.
func GetAllocator(ctx context.Context) (Allocator, bool) {
	value := ctx.Value(arenaCtxKey)
	if value == nil {
		return nil, false
	}
	allocator, ok := value.(Allocator)
	if !ok {
		return nil, false
	}
	return allocator, true
}

// GetAllocatorOrDefault returns the tagged allocator bound to this ctx,
// or defaultAllocator if there was no association.
func GetAllocatorOrDefault(ctx context.Context, defaultAllocator Allocator) Allocator {
	ctxAllocator, ok := GetAllocator(ctx)
	if !ok {
		return defaultAllocator
	}
	return ctxAllocator
}
