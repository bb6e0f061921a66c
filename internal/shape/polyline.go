package shape

import (
	"slices"

	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/input"
	"github.com/sketchpad/sketchpad/internal/render"
	"github.com/sketchpad/sketchpad/internal/style"
)

// MinClosePoints is how many anchors must be placed before a click on the
// start anchor closes the outline. The closing anchor is added on top.
const MinClosePoints = 4

var constructionStroke = render.Stroke{Color: style.Blue, Width: 1, Cap: style.CapRound, Join: style.JoinRound}

// polyline is the anchor-by-anchor construction core of Polygon and Path.
type polyline struct {
	base
	anchors []AnchorPoint
	curves  []Curve
	// active is the live cursor position while constructing.
	active      geom.Point
	canClose    bool
	closed      bool
	showAnchors bool
}

func newPolyline(d style.Decoration) polyline {
	return polyline{base: newBase(d.Clone()), showAnchors: true}
}

// Anchors returns the anchor positions in drawing order. A closed outline
// ends with a copy of its first anchor.
func (p *polyline) Anchors() []geom.Point {
	pts := make([]geom.Point, len(p.anchors))
	for i, a := range p.anchors {
		pts[i] = a.Point
	}
	return pts
}

// Curves returns the bent segments.
func (p *polyline) Curves() []Curve { return slices.Clone(p.curves) }

// Closed reports whether construction finished by closing the outline.
func (p *polyline) Closed() bool { return p.closed }

// CanClose reports whether the pointer is armed to close the outline.
func (p *polyline) CanClose() bool { return p.canClose }

func (p *polyline) Bounds() geom.Rect {
	pts := p.Anchors()
	for _, c := range p.curves {
		pts = append(pts, c.C1, c.C2)
	}
	r, _ := geom.Bounds(pts...)
	return r
}

func (p *polyline) Contains(pt geom.Point) bool { return p.Bounds().Contains(pt) }

func (p *polyline) Snapshot() Snapshot {
	return Snapshot{Anchors: p.Anchors(), Curves: slices.Clone(p.curves)}
}

func (p *polyline) place(anchors []geom.Point, curves []Curve) {
	for i, pt := range anchors {
		if i < len(p.anchors) {
			p.anchors[i].Point = pt
		}
	}
	for i, c := range curves {
		if i < len(p.curves) {
			p.curves[i] = c
		}
	}
	p.box.SetRect(p.Bounds())
}

func (p *polyline) Move(snap Snapshot, off geom.Point) {
	off = snap.Constraint.Apply(off)
	anchors := make([]geom.Point, len(snap.Anchors))
	for i, a := range snap.Anchors {
		anchors[i] = a.Add(off)
	}
	curves := make([]Curve, len(snap.Curves))
	for i, c := range snap.Curves {
		curves[i] = Curve{Segment: c.Segment, C1: c.C1.Add(off), C2: c.C2.Add(off)}
	}
	p.moving = true
	p.place(anchors, curves)
}

// Resize maps every anchor and control point proportionally from the
// snapshot extent onto the dragged extent.
func (p *polyline) Resize(snap Snapshot, off geom.Point, dir Direction) {
	off = snap.Constraint.Apply(off)
	pts := slices.Clone(snap.Anchors)
	for _, c := range snap.Curves {
		pts = append(pts, c.C1, c.C2)
	}
	from, ok := geom.Bounds(pts...)
	if !ok {
		return
	}
	sc := newScaler(from, off, dir)
	anchors := make([]geom.Point, len(snap.Anchors))
	for i, a := range snap.Anchors {
		anchors[i] = sc.apply(a)
	}
	curves := make([]Curve, len(snap.Curves))
	for i, c := range snap.Curves {
		curves[i] = Curve{Segment: c.Segment, C1: sc.apply(c.C1), C2: sc.apply(c.C2)}
	}
	p.resizing = true
	p.place(anchors, curves)
}

func (p *polyline) Update() {
	p.endGesture()
	p.canMove = !p.constructing && !p.Bounds().Empty()
	p.box.SetRect(p.Bounds())
}

// closable reports whether a click at pt would close the outline.
func (p *polyline) closable(pt geom.Point) bool {
	return len(p.anchors) >= MinClosePoints && p.anchors[0].CheckHover(pt)
}

func (p *polyline) isDuplicate(pt geom.Point) bool {
	if len(p.anchors) <= 2 || p.canClose {
		return false
	}
	for _, a := range p.anchors {
		if a.Point == pt {
			return true
		}
	}
	return false
}

func (p *polyline) addStart(pt geom.Point) {
	p.anchors = append(p.anchors, AnchorPoint{Point: pt, Active: true})
	p.active = pt
}

// addPoint appends pt unless it repeats an existing anchor. It reports
// whether the anchor was added.
func (p *polyline) addPoint(pt geom.Point) bool {
	p.active = pt
	if p.isDuplicate(pt) {
		return false
	}
	p.anchors = append(p.anchors, AnchorPoint{Point: pt})
	return true
}

func (p *polyline) close() {
	p.anchors[0].Active = false
	p.anchors[0].Hover = false
	p.anchors = append(p.anchors, AnchorPoint{Point: p.anchors[0].Point})
	p.showAnchors = false
	p.canClose = false
	p.closed = true
	p.constructing = false
	p.Update()
}

// Close finishes construction if enough anchors are placed. It reports
// whether the outline closed; an outline that cannot close is left as is.
func (p *polyline) Close() bool {
	if !p.constructing {
		return p.closed
	}
	if len(p.anchors) < MinClosePoints {
		return false
	}
	p.close()
	return true
}

// constructInput handles the click and move events of anchor placement.
func (p *polyline) constructInput(ev input.Event) {
	switch ev.Kind {
	case input.Click:
		switch {
		case len(p.anchors) == 0:
			p.addStart(ev.Pos)
		case p.closable(ev.Pos):
			p.close()
		default:
			p.addPoint(ev.Pos)
		}
	case input.Move:
		if len(p.anchors) == 0 {
			return
		}
		p.active = ev.Pos
		p.canClose = p.closable(ev.Pos)
		p.anchors[0].Hover = p.canClose
	}
}

// renderConstruction draws the placed edges, the live edge to the cursor
// and the anchors.
func (p *polyline) renderConstruction(sink render.Sink, ctx render.Context, edges func()) {
	if len(p.anchors) == 0 {
		return
	}
	edges()
	last := p.anchors[len(p.anchors)-1].Point
	sink.StrokeLine(ctx.Point(last), ctx.Point(p.active), constructionStroke)
	if p.showAnchors {
		for _, a := range p.anchors {
			a.render(sink, ctx)
		}
	}
}

func (p *polyline) cloneAnchors() ([]AnchorPoint, []Curve) {
	return slices.Clone(p.anchors), slices.Clone(p.curves)
}
