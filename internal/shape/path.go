package shape

import (
	"slices"

	"github.com/sketchpad/sketchpad/internal/input"
	"github.com/sketchpad/sketchpad/internal/render"
	"github.com/sketchpad/sketchpad/internal/style"
)

// Path is a polygon whose segments can be dragged into cubic curves while
// it is being placed.
type Path struct {
	polyline
	// pending is the curve being dragged out, committed on release.
	pending *Curve
}

// NewPath returns a path waiting for its first anchor.
func NewPath(d style.Decoration) *Path {
	return &Path{polyline: newPolyline(d)}
}

func (p *Path) Kind() Kind { return KindPath }

// Pending returns the curve being dragged, if any.
func (p *Path) Pending() (Curve, bool) {
	if p.pending == nil {
		return Curve{}, false
	}
	return *p.pending, true
}

func (p *Path) HandleInput(ev input.Event) {
	if !p.constructing {
		committedInput(p, &p.base, ev)
		return
	}
	switch ev.Kind {
	case input.Drag:
		n := len(p.anchors)
		if n < 2 {
			return
		}
		off := ev.Offset()
		p.pending = &Curve{
			Segment: n - 2,
			C1:      p.anchors[n-2].Add(off),
			C2:      p.anchors[n-1].Sub(off),
		}
		p.active = ev.Pos
	case input.Release:
		if p.pending == nil {
			return
		}
		p.setCurve(*p.pending)
		p.pending = nil
	default:
		p.constructInput(ev)
	}
}

// setCurve bends a segment, replacing any earlier curve on it.
func (p *Path) setCurve(c Curve) {
	i := slices.IndexFunc(p.curves, func(e Curve) bool { return e.Segment == c.Segment })
	if i >= 0 {
		p.curves[i] = c
		return
	}
	p.curves = append(p.curves, c)
}

func (p *Path) curveFor(segment int) (Curve, bool) {
	if p.pending != nil && p.pending.Segment == segment {
		return *p.pending, true
	}
	i := slices.IndexFunc(p.curves, func(e Curve) bool { return e.Segment == segment })
	if i < 0 {
		return Curve{}, false
	}
	return p.curves[i], true
}

func (p *Path) segments(sink render.Sink, ctx render.Context, s render.Stroke) {
	for i := 0; i+1 < len(p.anchors); i++ {
		a, b := ctx.Point(p.anchors[i].Point), ctx.Point(p.anchors[i+1].Point)
		if c, ok := p.curveFor(i); ok {
			sink.StrokeCubic(a, ctx.Point(c.C1), ctx.Point(c.C2), b, s)
			continue
		}
		sink.StrokeLine(a, b, s)
	}
}

func (p *Path) Render(sink render.Sink, ctx render.Context) {
	if p.constructing {
		p.renderConstruction(sink, ctx, func() {
			p.segments(sink, ctx, constructionStroke)
			if p.pending != nil {
				handle := render.Stroke{Color: style.Blue, Width: 1, Dash: []float64{3}}
				sink.StrokeLine(ctx.Point(p.pending.C1), ctx.Point(p.pending.C2), handle)
			}
		})
		return
	}
	if p.deco.HasStroke {
		p.segments(sink, ctx, ctx.StrokeFor(p.deco))
	}
	if p.selected {
		p.box.Render(sink, ctx)
	}
}

func (p *Path) Clone() Shape {
	c := *p
	c.base = p.cloneBase()
	c.anchors, c.curves = p.cloneAnchors()
	c.pending = nil
	return &c
}
