package shape

import (
	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/render"
	"github.com/sketchpad/sketchpad/internal/style"
)

// Direction names the edge or corner a resize handle drags.
type Direction int

const (
	None Direction = iota
	N
	S
	E
	W
	NW
	NE
	SE
	SW
)

var directionNames = [...]string{"none", "n", "s", "e", "w", "nw", "ne", "se", "sw"}

func (d Direction) String() string {
	if d >= 0 && int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "invalid"
}

// edges reports which edges of an extent the direction moves.
func (d Direction) edges() (north, south, east, west bool) {
	switch d {
	case N:
		north = true
	case S:
		south = true
	case E:
		east = true
	case W:
		west = true
	case NW:
		north, west = true, true
	case NE:
		north, east = true, true
	case SE:
		south, east = true, true
	case SW:
		south, west = true, true
	}
	return
}

// HandleSize is the side of a resize handle in pixels.
const HandleSize = 10

// Handle is one resize affordance: a square centered on an edge midpoint
// or a corner of the box.
type Handle struct {
	Dir    Direction
	Center geom.Point
	Hover  bool
}

// Rect is the hit area of the handle.
func (h Handle) Rect() geom.Rect {
	const off = HandleSize / 2
	return geom.XYWH(h.Center.X-off, h.Center.Y-off, HandleSize, HandleSize)
}

// BoundingBox frames an extent with eight resize handles. It never resizes
// anything itself; it only reports which handle is grabbed.
type BoundingBox struct {
	Rect    geom.Rect
	Visible bool
	handles [8]Handle
	active  Direction
}

// NewBoundingBox builds a box spanning a and b.
func NewBoundingBox(a, b geom.Point) *BoundingBox {
	box := &BoundingBox{}
	box.Set(a, b)
	return box
}

// Set moves the box to span p1 and p2 and rebuilds the handles. The active
// handle survives, so a resize in progress keeps its grip.
func (b *BoundingBox) Set(p1, p2 geom.Point) {
	b.Rect = geom.NewRect(p1, p2)
	r := b.Rect
	w, h := r.Dx(), r.Dy()
	b.handles = [8]Handle{
		{Dir: N, Center: geom.Pt(r.Min.X+w/2, r.Min.Y)},
		{Dir: S, Center: geom.Pt(r.Min.X+w/2, r.Max.Y)},
		{Dir: E, Center: geom.Pt(r.Max.X, r.Max.Y-h/2)},
		{Dir: W, Center: geom.Pt(r.Min.X, r.Max.Y-h/2)},
		{Dir: NW, Center: r.Min},
		{Dir: NE, Center: geom.Pt(r.Max.X, r.Min.Y)},
		{Dir: SE, Center: r.Max},
		{Dir: SW, Center: geom.Pt(r.Min.X, r.Max.Y)},
	}
	for i := range b.handles {
		b.handles[i].Hover = b.handles[i].Dir == b.active && b.active != None
	}
}

// SetRect is Set for an existing rectangle.
func (b *BoundingBox) SetRect(r geom.Rect) {
	b.Set(r.Min, r.Max)
}

// Handles returns the handles in hit-test order.
func (b *BoundingBox) Handles() []Handle {
	return b.handles[:]
}

// CheckHandleHover tests p against every handle in order N, S, E, W, NW,
// NE, SE, SW. The first hit becomes the active handle; a miss clears it.
func (b *BoundingBox) CheckHandleHover(p geom.Point) bool {
	b.active = None
	for i := range b.handles {
		b.handles[i].Hover = false
	}
	for i := range b.handles {
		if b.handles[i].Rect().Contains(p) {
			b.handles[i].Hover = true
			b.active = b.handles[i].Dir
			return true
		}
	}
	return false
}

// ActiveHandle is the direction of the grabbed handle, or None.
func (b *BoundingBox) ActiveHandle() Direction {
	return b.active
}

// ClearActive drops the active handle.
func (b *BoundingBox) ClearActive() {
	b.active = None
	for i := range b.handles {
		b.handles[i].Hover = false
	}
}

var handleStroke = render.Stroke{Color: style.Blue, Width: 2, Cap: style.CapSquare, Join: style.JoinMiter}

// Render draws the handles when the box is visible. Handles keep their
// pixel size at any zoom.
func (b *BoundingBox) Render(sink render.Sink, ctx render.Context) {
	if !b.Visible {
		return
	}
	for _, h := range b.handles {
		r := Handle{Center: ctx.Point(h.Center)}.Rect()
		sink.FillRect(r, style.White)
		sink.StrokeRect(r, handleStroke)
	}
}
