// Package pdf paints the canvas into a single-page PDF with gofpdf.
package pdf

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/render"
	"github.com/sketchpad/sketchpad/internal/style"
)

// Sink draws onto one PDF page sized to the canvas, one point per pixel.
type Sink struct {
	doc *gofpdf.Fpdf
}

var _ render.Sink = (*Sink)(nil)

// New returns a sink over a w x h point page.
func New(w, h int) *Sink {
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(w), Ht: float64(h)},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	return &Sink{doc: doc}
}

// Write outputs the finished document and closes it.
func (s *Sink) Write(w io.Writer) error {
	if err := s.doc.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func (s *Sink) color(c style.Color) {
	s.doc.SetAlpha(float64(c.A)/255, "Normal")
}

func (s *Sink) applyStroke(st render.Stroke) {
	s.color(st.Color)
	s.doc.SetDrawColor(int(st.Color.R), int(st.Color.G), int(st.Color.B))
	s.doc.SetLineWidth(st.Width)
	s.doc.SetLineCapStyle(string(st.Cap))
	s.doc.SetLineJoinStyle(string(st.Join))
	s.doc.SetDashPattern(st.Dash, 0)
}

func (s *Sink) applyFill(c style.Color) {
	s.color(c)
	s.doc.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func (s *Sink) StrokeLine(a, b geom.Point, st render.Stroke) {
	s.applyStroke(st)
	s.doc.Line(float64(a.X), float64(a.Y), float64(b.X), float64(b.Y))
}

func (s *Sink) StrokeRect(r geom.Rect, st render.Stroke) {
	s.applyStroke(st)
	s.doc.Rect(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()), "D")
}

func (s *Sink) FillRect(r geom.Rect, c style.Color) {
	s.applyFill(c)
	s.doc.Rect(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()), "F")
}

func (s *Sink) ellipse(r geom.Rect, styleStr string) {
	rx, ry := float64(r.Dx())/2, float64(r.Dy())/2
	s.doc.Ellipse(float64(r.Min.X)+rx, float64(r.Min.Y)+ry, rx, ry, 0, styleStr)
}

func (s *Sink) StrokeEllipse(r geom.Rect, st render.Stroke) {
	s.applyStroke(st)
	s.ellipse(r, "D")
}

func (s *Sink) FillEllipse(r geom.Rect, c style.Color) {
	s.applyFill(c)
	s.ellipse(r, "F")
}

func points(pts []geom.Point) []gofpdf.PointType {
	out := make([]gofpdf.PointType, len(pts))
	for i, p := range pts {
		out[i] = gofpdf.PointType{X: float64(p.X), Y: float64(p.Y)}
	}
	return out
}

func (s *Sink) StrokePolygon(pts []geom.Point, closed bool, st render.Stroke) {
	if len(pts) < 2 {
		return
	}
	s.applyStroke(st)
	if closed {
		s.doc.Polygon(points(pts), "D")
		return
	}
	for i := 1; i < len(pts); i++ {
		s.doc.Line(float64(pts[i-1].X), float64(pts[i-1].Y), float64(pts[i].X), float64(pts[i].Y))
	}
}

func (s *Sink) FillPolygon(pts []geom.Point, c style.Color) {
	if len(pts) < 3 {
		return
	}
	s.applyFill(c)
	s.doc.Polygon(points(pts), "F")
}

func (s *Sink) StrokeCubic(p0, c1, c2, p3 geom.Point, st render.Stroke) {
	s.applyStroke(st)
	s.doc.CurveBezierCubic(
		float64(p0.X), float64(p0.Y),
		float64(c1.X), float64(c1.Y),
		float64(c2.X), float64(c2.Y),
		float64(p3.X), float64(p3.Y),
		"D",
	)
}
