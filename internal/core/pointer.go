package core

// PointerKind enumerates raw pointer event kinds.
type PointerKind uint8

const (
	PointerPress PointerKind = iota
	PointerMove
	PointerRelease
)

func (k PointerKind) String() string {
	switch k {
	case PointerPress:
		return "press"
	case PointerMove:
		return "move"
	case PointerRelease:
		return "release"
	default:
		return "unknown"
	}
}

// PointerEvent is a raw pointer sample relative to the rendering surface's
// top-left origin, in surface pixels.
type PointerEvent struct {
	Kind PointerKind
	X, Y float64
}
