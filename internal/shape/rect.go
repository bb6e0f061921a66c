package shape

import (
	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/input"
	"github.com/sketchpad/sketchpad/internal/render"
	"github.com/sketchpad/sketchpad/internal/style"
)

// Rect is an axis-aligned rectangle.
type Rect struct {
	extent
}

// NewRect returns a rectangle waiting for its construction gesture.
func NewRect(d style.Decoration) *Rect {
	return &Rect{extent{base: newBase(d.Clone())}}
}

func (r *Rect) Kind() Kind { return KindRect }

func (r *Rect) HandleInput(ev input.Event) { extentInput(r, &r.extent, ev) }

func (r *Rect) Render(sink render.Sink, ctx render.Context) {
	px := ctx.Rect(r.Bounds())
	paint(r.deco,
		func(c style.Color) { sink.FillRect(px, c) },
		func(s render.Stroke) { sink.StrokeRect(px, s) },
		ctx)
	if r.selected {
		r.box.Render(sink, ctx)
	}
}

func (r *Rect) Clone() Shape {
	c := *r
	c.base = r.cloneBase()
	return &c
}

// Circle is an ellipse inscribed in its extent.
type Circle struct {
	extent
}

// NewCircle returns an ellipse waiting for its construction gesture.
func NewCircle(d style.Decoration) *Circle {
	return &Circle{extent{base: newBase(d.Clone())}}
}

func (c *Circle) Kind() Kind { return KindCircle }

func (c *Circle) HandleInput(ev input.Event) { extentInput(c, &c.extent, ev) }

func (c *Circle) Render(sink render.Sink, ctx render.Context) {
	px := ctx.Rect(c.Bounds())
	paint(c.deco,
		func(col style.Color) { sink.FillEllipse(px, col) },
		func(s render.Stroke) { sink.StrokeEllipse(px, s) },
		ctx)
	if c.selected {
		c.box.Render(sink, ctx)
	}
}

func (c *Circle) Clone() Shape {
	cc := *c
	cc.base = c.cloneBase()
	return &cc
}

// committedExtent builds an already-committed extent shape spanning r.
func committedExtent(d style.Decoration, r geom.Rect) extent {
	e := extent{base: newBase(d.Clone()), started: true}
	e.constructing = false
	e.start, e.end = r.Min, r.Max
	e.Update()
	return e
}
