package shape

import (
	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/render"
	"github.com/sketchpad/sketchpad/internal/style"
)

const (
	// AnchorSize is the drawn side of an anchor; its hover reach extends
	// AnchorSize pixels from the point on each axis.
	AnchorSize      = 5
	anchorHoverSize = 8
)

// AnchorPoint is a placed polygon or path vertex with display state.
type AnchorPoint struct {
	geom.Point
	Hover  bool
	Active bool
}

// CheckHover reports whether p is within reach of the anchor.
func (a *AnchorPoint) CheckHover(p geom.Point) bool {
	d := p.Sub(a.Point)
	return abs(d.X) <= AnchorSize && abs(d.Y) <= AnchorSize
}

func (a AnchorPoint) render(sink render.Sink, ctx render.Context) {
	size := AnchorSize
	if a.Hover {
		size = anchorHoverSize
	}
	c := style.Blue
	if a.Active {
		c = style.Red
	}
	p := ctx.Point(a.Point)
	r := geom.XYWH(p.X-size/2, p.Y-size/2, size, size)
	sink.FillRect(r, style.White)
	sink.StrokeRect(r, render.Stroke{Color: c, Width: 2, Cap: style.CapSquare, Join: style.JoinMiter})
}
