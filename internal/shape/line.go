package shape

import (
	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/input"
	"github.com/sketchpad/sketchpad/internal/render"
	"github.com/sketchpad/sketchpad/internal/style"
)

// Line is a straight segment. Its endpoints keep their drawn order; only
// its bounds are normalized.
type Line struct {
	base
	start, end geom.Point
	started    bool
}

// NewLine returns a line waiting for its construction gesture.
func NewLine(d style.Decoration) *Line {
	return &Line{base: newBase(d.Clone())}
}

// Endpoints returns the start and end point as drawn.
func (l *Line) Endpoints() (geom.Point, geom.Point) { return l.start, l.end }

func (l *Line) Kind() Kind { return KindLine }

func (l *Line) Bounds() geom.Rect { return geom.NewRect(l.start, l.end) }

func (l *Line) Contains(p geom.Point) bool { return l.Bounds().Contains(p) }

func (l *Line) Snapshot() Snapshot {
	return Snapshot{Start: l.start, End: l.end}
}

func (l *Line) HandleInput(ev input.Event) {
	if !l.constructing {
		committedInput(l, &l.base, ev)
		return
	}
	switch ev.Kind {
	case input.Click:
		l.started = true
		l.start, l.end = ev.Pos, ev.Pos
	case input.Drag:
		if !l.started {
			l.started = true
			l.start = ev.Origin
		}
		l.end = ev.Pos
	case input.Release:
		if !l.started {
			return
		}
		l.constructing = false
		l.Update()
	}
}

func (l *Line) Move(snap Snapshot, off geom.Point) {
	off = snap.Constraint.Apply(off)
	l.moving = true
	l.start, l.end = snap.Start.Add(off), snap.End.Add(off)
	l.box.SetRect(l.Bounds())
}

func (l *Line) Resize(snap Snapshot, off geom.Point, dir Direction) {
	off = snap.Constraint.Apply(off)
	sc := newScaler(geom.NewRect(snap.Start, snap.End), off, dir)
	l.resizing = true
	l.start, l.end = sc.apply(snap.Start), sc.apply(snap.End)
	l.box.SetRect(l.Bounds())
}

func (l *Line) Update() {
	l.endGesture()
	l.canMove = l.start != l.end
	l.box.SetRect(l.Bounds())
}

func (l *Line) Render(sink render.Sink, ctx render.Context) {
	if l.deco.HasStroke {
		sink.StrokeLine(ctx.Point(l.start), ctx.Point(l.end), ctx.StrokeFor(l.deco))
	}
	if l.selected {
		l.box.Render(sink, ctx)
	}
}

func (l *Line) Clone() Shape {
	c := *l
	c.base = l.cloneBase()
	return &c
}
