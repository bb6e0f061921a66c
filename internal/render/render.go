// Package render defines the drawing contract shapes paint through and the
// sinks that implement it.
package render

import (
	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/style"
)

// Stroke describes how an outline is drawn.
type Stroke struct {
	Color style.Color
	Width float64
	Cap   style.Cap
	Join  style.Join
	Dash  []float64
}

// Sink receives draw primitives in pixel coordinates. Calls arrive in
// painter's order (back to front).
type Sink interface {
	StrokeLine(a, b geom.Point, s Stroke)
	StrokeRect(r geom.Rect, s Stroke)
	FillRect(r geom.Rect, c style.Color)
	StrokeEllipse(r geom.Rect, s Stroke)
	FillEllipse(r geom.Rect, c style.Color)
	StrokePolygon(pts []geom.Point, closed bool, s Stroke)
	FillPolygon(pts []geom.Point, c style.Color)
	StrokeCubic(p0, c1, c2, p3 geom.Point, s Stroke)
}

// Context carries the view transform from model space to pixel space.
type Context struct {
	Transform geom.Matrix
}

// Identity returns a context that draws model coordinates as-is.
func Identity() Context {
	return Context{Transform: geom.Identity()}
}

// View returns a context that zooms by zoom around the model origin and
// then shifts the result by pan pixels.
func View(zoom float64, pan geom.Point) Context {
	return Context{Transform: geom.Translate(float64(pan.X), float64(pan.Y)).Multiply(geom.Scale(zoom, zoom))}
}

// Model maps a pixel point back to model space.
func (c Context) Model(p geom.Point) geom.Point {
	if c.Transform.IsIdentity() {
		return p
	}
	return c.Transform.Invert().TransformPoint(p)
}

// Point maps a model point to pixel space.
func (c Context) Point(p geom.Point) geom.Point {
	return c.Transform.TransformPoint(p)
}

// Points maps every point in pts.
func (c Context) Points(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = c.Transform.TransformPoint(p)
	}
	return out
}

// Rect maps a model rectangle to its pixel-space bounds.
func (c Context) Rect(r geom.Rect) geom.Rect {
	return c.Transform.TransformRect(r)
}

// Width scales a line width by the zoom factor.
func (c Context) Width(w float64) float64 {
	return w * c.Transform.ScaleFactor()
}

// StrokeFor builds the outline style of a decoration under c.
func (c Context) StrokeFor(d style.Decoration) Stroke {
	return Stroke{
		Color: d.Stroke,
		Width: c.Width(d.StrokeWidth),
		Cap:   d.Cap,
		Join:  d.Join,
	}
}
