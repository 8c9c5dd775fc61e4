package arena

// Tag is a coarse lifetime category under which allocations are grouped
// and bulk-freed together, one per stage of a processing loop.
// The set of tags is closed and known at compile time; a Tag is used
// purely as an index into per-tag state.
type Tag uint8

const (
	TagShared Tag = iota
	TagGame
	TagRendering
	TagGPU

	// TagCount is the number of real tags. It is a sentinel value and
	// never a valid allocation target.
	TagCount
)

// Valid reports whether t is a real, non-sentinel tag.
func (t Tag) Valid() bool {
	return t < TagCount
}

// String provides a human readable tag name.
func (t Tag) String() string {
	switch t {
	case TagShared:
		return "shared"
	case TagGame:
		return "game"
	case TagRendering:
		return "rendering"
	case TagGPU:
		return "gpu"
	default:
		return "invalid"
	}
}
