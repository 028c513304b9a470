package board

import "image"

// Pointer carries raw input coordinates from a mouse or touch event.
type Pointer struct {
	Client  image.Point
	Touches []image.Point
}

// Position converts the pointer to surface-local coordinates by subtracting
// origin, the surface's on-screen offset. Touch input uses the first touch.
func (p Pointer) Position(origin image.Point) image.Point {
	raw := p.Client
	if len(p.Touches) > 0 {
		raw = p.Touches[0]
	}
	return raw.Sub(origin)
}

type dragKind int

const (
	dragTool dragKind = iota
	dragImageMove
	dragImageResize
	dragText
)

func (k dragKind) String() string {
	switch k {
	case dragTool:
		return "tool"
	case dragImageMove:
		return "image-move"
	case dragImageResize:
		return "image-resize"
	case dragText:
		return "text-move"
	}
	return "unknown"
}

// gesture is the two-state drag machine: idle, or dragging with a start point
// and a snapshot of the surface taken when the drag began.
type gesture struct {
	kind     dragKind
	start    image.Point
	last     image.Point
	snapshot *image.RGBA
	// origin is the dragged overlay's placement at begin.
	origin image.Rectangle
}

func (g *gesture) active() bool { return g.snapshot != nil }

func (g *gesture) begin(kind dragKind, s *Surface, pos image.Point) {
	g.kind = kind
	g.start = pos
	g.last = pos
	g.snapshot = s.Snapshot()
}

// restore discards whatever was drawn since begin.
func (g *gesture) restore(s *Surface) { s.Restore(g.snapshot) }

func (g *gesture) delta(pos image.Point) image.Point { return pos.Sub(g.start) }

func (g *gesture) end() {
	g.snapshot = nil
	g.origin = image.Rectangle{}
}
