package shape

import (
	"github.com/sketchpad/sketchpad/internal/input"
	"github.com/sketchpad/sketchpad/internal/render"
	"github.com/sketchpad/sketchpad/internal/style"
)

// Polygon is a closed outline placed one click at a time.
type Polygon struct {
	polyline
}

// NewPolygon returns a polygon waiting for its first anchor.
func NewPolygon(d style.Decoration) *Polygon {
	return &Polygon{newPolyline(d)}
}

func (p *Polygon) Kind() Kind { return KindPolygon }

func (p *Polygon) HandleInput(ev input.Event) {
	if p.constructing {
		p.constructInput(ev)
		return
	}
	committedInput(p, &p.base, ev)
}

func (p *Polygon) Render(sink render.Sink, ctx render.Context) {
	if p.constructing {
		p.renderConstruction(sink, ctx, func() {
			if len(p.anchors) > 1 {
				sink.StrokePolygon(ctx.Points(p.Anchors()), false, constructionStroke)
			}
		})
		return
	}
	pts := ctx.Points(p.Anchors())
	paint(p.deco,
		func(c style.Color) { sink.FillPolygon(pts, c) },
		func(s render.Stroke) { sink.StrokePolygon(pts, p.closed, s) },
		ctx)
	if p.selected {
		p.box.Render(sink, ctx)
	}
}

func (p *Polygon) Clone() Shape {
	c := *p
	c.base = p.cloneBase()
	c.anchors, c.curves = p.cloneAnchors()
	return &c
}
