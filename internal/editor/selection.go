package editor

import (
	"slices"

	"github.com/sketchpad/sketchpad/internal/canvas"
	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/input"
	"github.com/sketchpad/sketchpad/internal/render"
	"github.com/sketchpad/sketchpad/internal/shape"
	"github.com/sketchpad/sketchpad/internal/style"
)

var (
	marqueeStroke = render.Stroke{Color: style.Gray, Width: 1, Cap: style.CapButt, Join: style.JoinMiter, Dash: []float64{3}}
	groupStroke   = render.Stroke{Color: style.Blue, Width: 2, Cap: style.CapSquare, Join: style.JoinMiter}
)

// Selection is the group of canvas shapes picked with the select tool. It
// holds shape IDs only; the canvas owns the shapes.
type Selection struct {
	canvas *canvas.Canvas
	ids    []string
	// clones are the copies made by the current alt-drag.
	clones []string
	box    *shape.BoundingBox

	marquee    geom.Rect
	dragging   bool
	moving     bool
	resizing   bool
	cloning    bool
	cleared    bool
	constraint shape.Constraint

	// snaps holds the pre-gesture geometry of every shape the current
	// drag touches. It is captured on the first drag frame.
	snaps map[string]shape.Snapshot
}

// NewSelection returns an empty selection over cv.
func NewSelection(cv *canvas.Canvas) *Selection {
	return &Selection{
		canvas: cv,
		box:    shape.NewBoundingBox(geom.Point{}, geom.Point{}),
	}
}

// IDs returns the selected shape IDs in canvas order.
func (s *Selection) IDs() []string { return slices.Clone(s.ids) }

// HasShapes reports whether anything is selected.
func (s *Selection) HasShapes() bool { return len(s.ids) > 0 }

// Cleared reports whether the selection was dismissed.
func (s *Selection) Cleared() bool { return s.cleared }

// Cloning reports whether the next drag duplicates the selection.
func (s *Selection) Cloning() bool { return s.cloning }

func (s *Selection) SetCloning(b bool) { s.cloning = b }

func (s *Selection) SetConstraint(c shape.Constraint) { s.constraint = c }


func (s *Selection) Dragging() bool { return s.dragging }

// BoundingBox frames the whole group.
func (s *Selection) BoundingBox() *shape.BoundingBox { return s.box }

// shapes resolves IDs against the canvas, skipping any that are gone.
func (s *Selection) shapes(ids []string) []shape.Shape {
	out := make([]shape.Shape, 0, len(ids))
	for _, id := range ids {
		if sh, ok := s.canvas.Get(id); ok {
			out = append(out, sh)
		}
	}
	return out
}

// HandleInput advances the selection state machine by one pointer event.
func (s *Selection) HandleInput(ev input.Event) {
	switch ev.Kind {
	case input.Click:
		s.click(ev.Pos)
	case input.Move:
		if s.HasShapes() {
			s.box.CheckHandleHover(ev.Pos)
		}
	case input.Drag:
		s.drag(ev)
	case input.Release:
		s.release()
	}
}

func (s *Selection) click(p geom.Point) {
	if !s.HasShapes() {
		if hit, ok := s.canvas.TopmostAt(p); ok {
			s.selectShapes([]shape.Shape{hit})
		}
	}
	if !s.HasShapes() {
		s.Clear()
		return
	}
	if s.box.CheckHandleHover(p) {
		return
	}
	if s.box.Rect.Contains(p) {
		return
	}
	s.Clear()
}

func (s *Selection) drag(ev input.Event) {
	if !s.HasShapes() {
		s.dragging = true
		s.cleared = false
		s.marquee = geom.NewRect(ev.Origin, ev.Pos)
		return
	}
	if s.snaps == nil {
		s.capture(s.ids)
	}
	off := ev.Offset()
	if dir := s.box.ActiveHandle(); dir != shape.None {
		s.resizing = true
		for _, sh := range s.shapes(s.ids) {
			if sh.CanMove() {
				sh.Resize(s.snaps[sh.ID()], off, dir)
			}
		}
		s.updateBox(s.ids)
		return
	}
	if s.cloning {
		if s.clones == nil {
			s.cloneSelected()
		}
		s.moving = true
		s.moveAll(s.clones, off)
		s.updateBox(s.clones)
		return
	}
	s.moving = true
	s.moveAll(s.ids, off)
	s.updateBox(s.ids)
}

func (s *Selection) capture(ids []string) {
	if s.snaps == nil {
		s.snaps = make(map[string]shape.Snapshot, len(ids))
	}
	for _, sh := range s.shapes(ids) {
		snap := sh.Snapshot()
		snap.Constraint = s.constraint
		s.snaps[sh.ID()] = snap
	}
}

func (s *Selection) moveAll(ids []string, off geom.Point) {
	for _, sh := range s.shapes(ids) {
		if !sh.CanMove() {
			continue
		}
		sh.Move(s.snaps[sh.ID()], off)
	}
}

// cloneSelected deep-copies every selected shape onto the top of the
// canvas. The originals stay selected and unmoved.
func (s *Selection) cloneSelected() {
	s.clones = make([]string, 0, len(s.ids))
	for _, sh := range s.shapes(s.ids) {
		c := sh.Clone()
		c.SetZIndex(s.canvas.Len())
		c.BoundingBox().Visible = false
		s.canvas.Add(c)
		s.clones = append(s.clones, c.ID())
	}
	s.capture(s.clones)
}

func (s *Selection) release() {
	switch {
	case s.dragging:
		found := s.canvas.Within(s.marquee)
		if len(found) == 0 {
			s.Clear()
		} else {
			s.selectShapes(found)
		}
	case s.moving || s.resizing:
		for _, sh := range s.shapes(append(slices.Clone(s.ids), s.clones...)) {
			sh.Update()
		}
		s.updateBox(s.ids)
	}
	s.clones = nil
	s.snaps = nil
	s.dragging = false
	s.moving = false
	s.resizing = false
	s.cloning = false
}

func (s *Selection) selectShapes(found []shape.Shape) {
	for _, sh := range s.canvas.Shapes() {
		sh.SetSelected(false)
	}
	s.ids = s.ids[:0]
	for _, sh := range found {
		sh.SetSelected(true)
		sh.BoundingBox().Visible = false
		s.ids = append(s.ids, sh.ID())
	}
	s.cleared = false
	s.updateBox(s.ids)
}

// updateBox refits the group box around ids.
func (s *Selection) updateBox(ids []string) {
	r, ok := s.canvas.Bounds(ids)
	if !ok {
		return
	}
	s.box.SetRect(r)
	s.box.Visible = true
}

// Clear deselects everything and hides every box.
func (s *Selection) Clear() {
	for _, sh := range s.canvas.Shapes() {
		sh.SetSelected(false)
		sh.BoundingBox().Visible = false
	}
	s.ids = nil
	s.clones = nil
	s.snaps = nil
	s.box.Visible = false
	s.box.ClearActive()
	s.dragging = false
	s.cleared = true
}

// Delete removes the selected shapes from the canvas and clears.
func (s *Selection) Delete() int {
	n := s.canvas.Remove(s.ids...)
	s.Clear()
	return n
}

// ApplyDecoration restyles every selected shape. With fill and stroke both
// set the whole decoration is applied; otherwise only the named part.
func (s *Selection) ApplyDecoration(d style.Decoration, fill, stroke bool) {
	for _, sh := range s.shapes(s.ids) {
		cur := sh.Decoration()
		switch {
		case fill && stroke:
			cur = d
		case fill:
			cur = cur.WithFill(d)
		case stroke:
			cur = cur.WithStroke(d)
		}
		sh.SetDecoration(cur)
	}
}

// Render draws the marquee while it is dragged, or the group box.
func (s *Selection) Render(sink render.Sink, ctx render.Context) {
	if s.cleared {
		return
	}
	if s.dragging {
		sink.StrokeRect(ctx.Rect(s.marquee), marqueeStroke)
		return
	}
	if s.HasShapes() {
		sink.StrokeRect(ctx.Rect(s.box.Rect), groupStroke)
		s.box.Render(sink, ctx)
	}
}
