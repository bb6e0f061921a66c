package document

import (
	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/shape"
	"github.com/sketchpad/sketchpad/internal/style"
)

// NewSampleDocument returns a small drawing with one of every shape kind.
func NewSampleDocument() *Document {
	red := style.Default()
	red.Fill = style.Color{R: 0xe9, G: 0x45, B: 0x60, A: 0xff}
	red.StrokeWidth = 2

	navy := style.Default()
	navy.Fill = style.Color{R: 0x0f, G: 0x34, B: 0x60, A: 0xff}
	navy.Stroke = style.Color{R: 0x16, G: 0x21, B: 0x3e, A: 0xff}
	navy.StrokeWidth = 2

	green := style.Default()
	green.Fill = style.Color{R: 0x53, G: 0xd7, B: 0x69, A: 0xff}
	green.Stroke = style.Color{R: 0x2d, G: 0x6a, B: 0x4f, A: 0xff}
	green.StrokeWidth = 2

	ink := style.Default()
	ink.HasFill = false
	ink.StrokeWidth = 3
	ink.Cap = style.CapRound
	ink.Join = style.JoinRound

	pt := func(x, y int) *geom.Point {
		p := geom.Pt(x, y)
		return &p
	}

	doc := NewEmptyDocument("Sample")
	doc.Shapes = []ShapeNode{
		{Type: shape.KindRect, Start: pt(200, 200), End: pt(400, 350), Style: red},
		{Type: shape.KindCircle, Start: pt(520, 280), End: pt(760, 440), Style: navy},
		{Type: shape.KindLine, Start: pt(100, 600), End: pt(1100, 600), Style: ink},
		{
			Type:    shape.KindPath,
			Anchors: []geom.Point{geom.Pt(100, 100), geom.Pt(300, 60), geom.Pt(500, 120), geom.Pt(400, 160), geom.Pt(100, 100)},
			Curves:  []shape.Curve{{Segment: 0, C1: geom.Pt(150, 20), C2: geom.Pt(250, 20)}},
			Closed:  true,
			Style:   ink,
		},
	}

	hex, err := shape.RegularPolygon(6, geom.Pt(1000, 300), 120, true, green)
	if err == nil {
		doc.Shapes = append(doc.Shapes, nodeFromState(shape.Capture(hex)))
	}

	for i := range doc.Shapes {
		doc.Shapes[i].Z = i
	}
	return doc
}
