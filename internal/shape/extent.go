package shape

import (
	"math"

	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/input"
)

// extent is the core of shapes spanned by two corners: Rect and Circle.
// start and end stay normalized except while the shape is being dragged
// out for the first time.
type extent struct {
	base
	start, end geom.Point
	started    bool
}

func (s *extent) Bounds() geom.Rect { return geom.NewRect(s.start, s.end) }

func (s *extent) Contains(p geom.Point) bool { return s.Bounds().Contains(p) }

func (s *extent) Snapshot() Snapshot {
	return Snapshot{Start: s.start, End: s.end}
}

func (s *extent) set(r geom.Rect) {
	s.start, s.end = r.Min, r.Max
	s.box.SetRect(r)
}

func (s *extent) Move(snap Snapshot, off geom.Point) {
	off = snap.Constraint.Apply(off)
	s.moving = true
	s.set(geom.NewRect(snap.Start.Add(off), snap.End.Add(off)))
}

func (s *extent) Resize(snap Snapshot, off geom.Point, dir Direction) {
	off = snap.Constraint.Apply(off)
	start, end := snap.Start, snap.End
	north, south, east, west := dir.edges()
	if north {
		start.Y += off.Y
	}
	if south {
		end.Y += off.Y
	}
	if east {
		end.X += off.X
	}
	if west {
		start.X += off.X
	}
	s.resizing = true
	s.set(geom.NewRect(start, end))
}

func (s *extent) Update() {
	s.endGesture()
	r := s.Bounds()
	s.canMove = !r.Empty()
	s.set(r)
}

// extentInput runs the click-drag-release construction gesture, then hands
// events to the committed-state machine.
func extentInput(self Shape, s *extent, ev input.Event) {
	if !s.constructing {
		committedInput(self, &s.base, ev)
		return
	}
	switch ev.Kind {
	case input.Click:
		s.started = true
		s.start, s.end = ev.Pos, ev.Pos
	case input.Drag:
		if !s.started {
			return
		}
		r := geom.NewRect(ev.Origin, ev.Pos)
		s.start, s.end = r.Min, r.Max
	case input.Release:
		if !s.started {
			return
		}
		s.constructing = false
		s.Update()
	}
}

// scaler maps points from a snapshot extent onto the extent a resize
// handle drags it to. The edges opposite the handle stay put.
type scaler struct {
	from                     geom.Rect
	left, top, right, bottom int
}

func newScaler(from geom.Rect, off geom.Point, dir Direction) scaler {
	sc := scaler{from: from, left: from.Min.X, top: from.Min.Y, right: from.Max.X, bottom: from.Max.Y}
	north, south, east, west := dir.edges()
	if north {
		sc.top += off.Y
	}
	if south {
		sc.bottom += off.Y
	}
	if east {
		sc.right += off.X
	}
	if west {
		sc.left += off.X
	}
	return sc
}

func (sc scaler) apply(p geom.Point) geom.Point {
	return geom.Pt(
		scaleAxis(p.X, sc.from.Min.X, sc.from.Max.X, sc.left, sc.right),
		scaleAxis(p.Y, sc.from.Min.Y, sc.from.Max.Y, sc.top, sc.bottom),
	)
}

func scaleAxis(v, lo, hi, nlo, nhi int) int {
	if hi == lo {
		if nlo != lo {
			return v + nlo - lo
		}
		return v + nhi - hi
	}
	t := float64(v-lo) / float64(hi-lo)
	return nlo + int(math.Round(t*float64(nhi-nlo)))
}
