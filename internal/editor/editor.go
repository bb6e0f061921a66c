// Package editor routes pointer and keyboard input to shape construction
// and selection, and renders the result.
package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/sketchpad/sketchpad/internal/canvas"
	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/input"
	"github.com/sketchpad/sketchpad/internal/render"
	"github.com/sketchpad/sketchpad/internal/shape"
	"github.com/sketchpad/sketchpad/internal/style"
)

var ErrBadZoom = errors.New("zoom must be a positive number")

// Editor is one drawing surface with its tools. It is not safe for
// concurrent use; callers serialize access.
type Editor struct {
	logger      *slog.Logger
	canvas      *canvas.Canvas
	tool        Tool
	constructor *Constructor
	selections  *SelectionManager
	tracker     input.Tracker
	view        render.Context
}

// New returns an editor with an empty canvas and the select tool active.
func New(logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.Default()
	}
	cv := canvas.New()
	return &Editor{
		logger:      logger,
		canvas:      cv,
		tool:        ToolSelect,
		constructor: NewConstructor(cv, logger),
		selections:  NewSelectionManager(cv, logger),
		view:        render.Identity(),
	}
}

func (e *Editor) Canvas() *canvas.Canvas { return e.canvas }

func (e *Editor) Tool() Tool { return e.tool }

// SetActiveTool switches tools. Any selection is cleared.
func (e *Editor) SetActiveTool(t Tool) {
	e.selections.Clear()
	if t == e.tool {
		return
	}
	e.logger.Debug("tool changed", "from", e.tool, "to", t)
	e.tool = t
	e.constructor.SetTool(t)
}

// Dispatch routes one pointer event by the active tool.
func (e *Editor) Dispatch(ev input.Event) {
	if e.tool == ToolSelect {
		e.selections.Handle(ev)
		return
	}
	e.constructor.Handle(ev)
}

// Press, Motion and Release feed raw pointer activity in view pixels.
func (e *Editor) Press(p geom.Point, clicks int) {
	e.Dispatch(e.tracker.Press(e.view.Model(p), clicks))
}

func (e *Editor) Motion(p geom.Point) { e.Dispatch(e.tracker.Motion(e.view.Model(p))) }

func (e *Editor) Release(p geom.Point) { e.Dispatch(e.tracker.Release(e.view.Model(p))) }

// View is the transform from model space to view pixels.
func (e *Editor) View() render.Context { return e.view }

// SetView zooms around the model origin and pans by pan pixels. Pointer
// input is mapped back through the same transform.
func (e *Editor) SetView(zoom float64, pan geom.Point) error {
	if zoom <= 0 || math.IsNaN(zoom) || math.IsInf(zoom, 0) {
		return fmt.Errorf("%w: got %v", ErrBadZoom, zoom)
	}
	e.view = render.View(zoom, pan)
	e.logger.Debug("view changed", "zoom", zoom, "pan", pan)
	return nil
}

// KeyPress handles the editor's keyboard shortcuts.
func (e *Editor) KeyPress(k input.Key) {
	switch k {
	case input.KeyDelete:
		e.selections.Delete()
	case input.KeyAlt:
		e.selections.SetCloning(true)
	case input.KeyShift:
		e.selections.SetConstraint(shape.Axis)
	case input.KeySelect:
		e.SetActiveTool(ToolSelect)
	case input.KeyRect:
		e.SetActiveTool(ToolRect)
	case input.KeyLine:
		e.SetActiveTool(ToolLine)
	case input.KeyDecoration:
		e.ResetDecoration()
	}
}

func (e *Editor) KeyRelease(k input.Key) {
	switch k {
	case input.KeyAlt:
		e.selections.SetCloning(false)
	case input.KeyShift:
		e.selections.SetConstraint(shape.Free)
	}
}

// Render paints the canvas bottom to top, then the shape being drawn, then
// the selection.
func (e *Editor) Render(sink render.Sink, ctx render.Context) {
	e.canvas.Render(sink, ctx)
	e.constructor.Render(sink, ctx)
	e.selections.Render(sink, ctx)
}

// Shapes returns the committed shapes bottom to top.
func (e *Editor) Shapes() []shape.Shape { return e.canvas.Shapes() }

// Active returns the shape under construction, if any.
func (e *Editor) Active() shape.Shape { return e.constructor.Active() }

// Selection returns the live selection, or nil.
func (e *Editor) Selection() *Selection { return e.selections.Selection() }

// SelectedIDs returns the IDs of the selected shapes.
func (e *Editor) SelectedIDs() []string {
	if sel := e.selections.Selection(); sel != nil {
		return sel.IDs()
	}
	return nil
}

// ClearAll removes every shape.
func (e *Editor) ClearAll() {
	e.selections.Clear()
	e.canvas.Clear()
	e.constructor.Reset()
	e.logger.Debug("canvas cleared")
}

// Append adds shapes on top of the canvas, z-index included. A shape whose
// ID is already on the canvas is added as a copy with a fresh ID.
func (e *Editor) Append(shapes ...shape.Shape) {
	e.selections.Clear()
	for _, s := range shapes {
		if _, dup := e.canvas.Get(s.ID()); dup {
			s = s.Clone()
		}
		e.canvas.Add(s)
	}
	e.logger.Debug("shapes appended", "count", len(shapes), "total", e.canvas.Len())
}

// BringToFront raises the selected shapes to the top of the stack.
func (e *Editor) BringToFront() {
	ids := e.SelectedIDs()
	if len(ids) == 0 {
		return
	}
	e.canvas.Raise(ids...)
}

// DecorateSelection restyles the selected shapes. fill and stroke pick
// which parts of d apply.
func (e *Editor) DecorateSelection(d style.Decoration, fill, stroke bool) {
	if sel := e.selections.Selection(); sel != nil {
		sel.ApplyDecoration(d, fill, stroke)
	}
}

// Decoration is the decoration new shapes get.
func (e *Editor) Decoration() style.Decoration { return e.canvas.Decoration() }

func (e *Editor) SetDecoration(d style.Decoration) {
	e.canvas.SetDecoration(d)
	e.refreshPending()
}

func (e *Editor) ResetDecoration() {
	e.canvas.ResetDecoration()
	e.refreshPending()
}

// refreshPending restarts an untouched pending shape so it picks up the
// current decoration.
func (e *Editor) refreshPending() {
	if e.constructor.Active() != nil && !e.constructor.started {
		e.constructor.Reset()
	}
}

// InsertRegularPolygon commits a closed regular polygon with the current
// decoration.
func (e *Editor) InsertRegularPolygon(sides int, center geom.Point, radius int, upright bool) (shape.Shape, error) {
	p, err := shape.RegularPolygon(sides, center, radius, upright, e.canvas.Decoration())
	if err != nil {
		return nil, fmt.Errorf("insert polygon: %w", err)
	}
	p.SetZIndex(e.canvas.Len())
	e.canvas.Add(p)
	e.logger.Debug("regular polygon inserted", "shape", p.ID(), "sides", sides)
	return p, nil
}
