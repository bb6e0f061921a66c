// Package shape holds the drawable shape variants and their construction,
// move and resize state machines.
package shape

import (
	"errors"
	"fmt"

	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/input"
	"github.com/sketchpad/sketchpad/internal/render"
	"github.com/sketchpad/sketchpad/internal/style"
	"github.com/sketchpad/sketchpad/internal/typeid"
)

// Kind identifies a shape variant.
type Kind string

const (
	KindRect    Kind = "rect"
	KindCircle  Kind = "circle"
	KindLine    Kind = "line"
	KindPolygon Kind = "polygon"
	KindPath    Kind = "path"
)

var ErrTooFewSides = errors.New("polygon needs at least 3 sides")

// Shape is the capability set every variant implements.
type Shape interface {
	ID() string
	Kind() Kind

	// Bounds is the canonical extent; Min <= Max on both axes.
	Bounds() geom.Rect
	Contains(p geom.Point) bool

	Decoration() style.Decoration
	SetDecoration(d style.Decoration)
	ZIndex() int
	SetZIndex(z int)
	Selected() bool
	SetSelected(b bool)
	CanMove() bool
	Constructing() bool
	BoundingBox() *BoundingBox

	Render(sink render.Sink, ctx render.Context)
	HandleInput(ev input.Event)

	// Snapshot captures the geometry a gesture starts from. Move and Resize
	// always compute from it, so repeated calls within one gesture never
	// compound.
	Snapshot() Snapshot
	Move(snap Snapshot, off geom.Point)
	Resize(snap Snapshot, off geom.Point, dir Direction)
	// Update ends a manipulation gesture.
	Update()

	// Clone returns a deep copy with a fresh ID, deselected.
	Clone() Shape
}

// Constraint locks move and resize offsets to an axis.
type Constraint int

const (
	Free Constraint = iota
	// Axis keeps whichever component of the offset is larger.
	Axis
)

// Apply filters off through the constraint.
func (c Constraint) Apply(off geom.Point) geom.Point {
	switch c {
	case Axis:
		if abs(off.X) >= abs(off.Y) {
			return geom.Pt(off.X, 0)
		}
		return geom.Pt(0, off.Y)
	}
	return off
}

// Curve is the cubic control pair bending one polyline segment. Segment i
// runs from anchor i to anchor i+1.
type Curve struct {
	Segment int        `json:"segment"`
	C1      geom.Point `json:"c1"`
	C2      geom.Point `json:"c2"`
}

// Snapshot is the pre-gesture geometry of a shape.
type Snapshot struct {
	Start, End geom.Point
	Anchors    []geom.Point
	Curves     []Curve
	Constraint Constraint
}

func (s Snapshot) String() string {
	return fmt.Sprintf("snapshot{%v %v anchors=%d curves=%d}", s.Start, s.End, len(s.Anchors), len(s.Curves))
}

// base carries the state every variant shares.
type base struct {
	id       string
	deco     style.Decoration
	z        int
	selected bool
	canMove  bool
	// constructing is true from creation until the shape is committed.
	constructing bool
	moving       bool
	resizing     bool
	box          *BoundingBox
	// gesture is the snapshot of a drag the shape drives itself.
	gesture *Snapshot
}

func newBase(d style.Decoration) base {
	return base{
		id:           typeid.NewShapeID(),
		deco:         d,
		constructing: true,
		box:          NewBoundingBox(geom.Point{}, geom.Point{}),
	}
}

func (b *base) ID() string                       { return b.id }
func (b *base) Decoration() style.Decoration     { return b.deco }
func (b *base) SetDecoration(d style.Decoration) { b.deco = d.Clone() }
func (b *base) ZIndex() int                      { return b.z }
func (b *base) SetZIndex(z int)                  { b.z = z }
func (b *base) Selected() bool                   { return b.selected }
func (b *base) SetSelected(v bool)               { b.selected = v }
func (b *base) CanMove() bool                    { return b.canMove }
func (b *base) Constructing() bool               { return b.constructing }
func (b *base) BoundingBox() *BoundingBox        { return b.box }

// cloneBase copies shared state for a clone: new ID, not selected, box hidden.
func (b *base) cloneBase() base {
	c := *b
	c.id = typeid.NewShapeID()
	c.selected = false
	c.moving = false
	c.resizing = false
	c.gesture = nil
	c.box = NewBoundingBox(b.box.Rect.Min, b.box.Rect.Max)
	return c
}

// endGesture clears the manipulation flags and the buffered snapshot.
func (b *base) endGesture() {
	b.moving = false
	b.resizing = false
	b.gesture = nil
}

// committedInput drives a committed shape that receives pointer events
// directly: click selects, double-click deselects, a drag on a handle
// resizes, and any other drag of a selected movable shape moves it.
func committedInput(s Shape, b *base, ev input.Event) {
	switch ev.Kind {
	case input.Click:
		inside := s.Contains(ev.Pos)
		switch {
		case !b.selected && inside:
			b.selected = true
			b.box.Visible = true
		case b.selected && b.box.CheckHandleHover(ev.Pos):
		case b.selected && (!inside || ev.Clicks >= 2):
			b.selected = false
			b.box.Visible = false
		}
	case input.Move:
		if b.box.Visible {
			b.box.CheckHandleHover(ev.Pos)
		}
	case input.Drag:
		if !b.selected {
			return
		}
		if b.gesture == nil {
			snap := s.Snapshot()
			b.gesture = &snap
		}
		if dir := b.box.ActiveHandle(); dir != None {
			s.Resize(*b.gesture, ev.Offset(), dir)
		} else if b.canMove {
			s.Move(*b.gesture, ev.Offset())
		}
	case input.Release:
		if b.gesture != nil {
			s.Update()
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// paint fills, then strokes, as the decoration asks.
func paint(d style.Decoration, fill func(style.Color), stroke func(render.Stroke), ctx render.Context) {
	if d.HasFill {
		fill(d.Fill)
	}
	if d.HasStroke {
		stroke(ctx.StrokeFor(d))
	}
}
