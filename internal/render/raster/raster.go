// Package raster paints the canvas into an image with fogleman/gg.
package raster

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"

	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/render"
	"github.com/sketchpad/sketchpad/internal/style"
)

// Sink draws onto a gg context.
type Sink struct {
	dc *gg.Context
}

var _ render.Sink = (*Sink)(nil)

// New returns a sink over a w x h image cleared to bg.
func New(w, h int, bg style.Color) *Sink {
	dc := gg.NewContext(w, h)
	dc.SetColor(bg)
	dc.Clear()
	return &Sink{dc: dc}
}

// EncodePNG writes the current image as PNG.
func (s *Sink) EncodePNG(w io.Writer) error {
	if err := s.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func (s *Sink) apply(st render.Stroke) {
	s.dc.SetColor(st.Color)
	s.dc.SetLineWidth(st.Width)
	switch st.Cap {
	case style.CapRound:
		s.dc.SetLineCapRound()
	case style.CapButt:
		s.dc.SetLineCapButt()
	default:
		s.dc.SetLineCapSquare()
	}
	// gg has no miter join; bevel is the closest.
	if st.Join == style.JoinRound {
		s.dc.SetLineJoinRound()
	} else {
		s.dc.SetLineJoinBevel()
	}
	s.dc.SetDash(st.Dash...)
}

func (s *Sink) StrokeLine(a, b geom.Point, st render.Stroke) {
	s.apply(st)
	s.dc.DrawLine(float64(a.X), float64(a.Y), float64(b.X), float64(b.Y))
	s.dc.Stroke()
}

func (s *Sink) StrokeRect(r geom.Rect, st render.Stroke) {
	s.apply(st)
	s.dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	s.dc.Stroke()
}

func (s *Sink) FillRect(r geom.Rect, c style.Color) {
	s.dc.SetColor(c)
	s.dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	s.dc.Fill()
}

func (s *Sink) ellipse(r geom.Rect) {
	rx, ry := float64(r.Dx())/2, float64(r.Dy())/2
	s.dc.DrawEllipse(float64(r.Min.X)+rx, float64(r.Min.Y)+ry, rx, ry)
}

func (s *Sink) StrokeEllipse(r geom.Rect, st render.Stroke) {
	s.apply(st)
	s.ellipse(r)
	s.dc.Stroke()
}

func (s *Sink) FillEllipse(r geom.Rect, c style.Color) {
	s.dc.SetColor(c)
	s.ellipse(r)
	s.dc.Fill()
}

func (s *Sink) polygon(pts []geom.Point, closed bool) {
	if len(pts) == 0 {
		return
	}
	s.dc.MoveTo(float64(pts[0].X), float64(pts[0].Y))
	for _, p := range pts[1:] {
		s.dc.LineTo(float64(p.X), float64(p.Y))
	}
	if closed {
		s.dc.ClosePath()
	}
}

func (s *Sink) StrokePolygon(pts []geom.Point, closed bool, st render.Stroke) {
	s.apply(st)
	s.polygon(pts, closed)
	s.dc.Stroke()
}

func (s *Sink) FillPolygon(pts []geom.Point, c style.Color) {
	s.dc.SetColor(c)
	s.polygon(pts, true)
	s.dc.Fill()
}

func (s *Sink) StrokeCubic(p0, c1, c2, p3 geom.Point, st render.Stroke) {
	s.apply(st)
	s.dc.MoveTo(float64(p0.X), float64(p0.Y))
	s.dc.CubicTo(float64(c1.X), float64(c1.Y), float64(c2.X), float64(c2.Y), float64(p3.X), float64(p3.Y))
	s.dc.Stroke()
}
