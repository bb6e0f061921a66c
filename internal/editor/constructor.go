package editor

import (
	"log/slog"

	"github.com/sketchpad/sketchpad/internal/canvas"
	"github.com/sketchpad/sketchpad/internal/input"
	"github.com/sketchpad/sketchpad/internal/render"
	"github.com/sketchpad/sketchpad/internal/shape"
)

// closer is implemented by shapes built anchor by anchor.
type closer interface {
	shape.Shape
	Close() bool
	Closed() bool
}

// Constructor owns the one shape being drawn with the active drawing tool.
type Constructor struct {
	canvas *canvas.Canvas
	logger *slog.Logger
	tool   Tool
	active shape.Shape
	// started is set once the active shape has seen a click or drag.
	started bool
}

// NewConstructor returns a constructor committing into cv.
func NewConstructor(cv *canvas.Canvas, logger *slog.Logger) *Constructor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Constructor{canvas: cv, logger: logger, tool: ToolSelect}
}

// Active returns the shape under construction, if any.
func (c *Constructor) Active() shape.Shape { return c.active }

// Tool returns the tool shapes are built for.
func (c *Constructor) Tool() Tool { return c.tool }

// SetTool switches the drawing tool. An unfinished polygon or path is
// closed if it can be and dropped otherwise. A non-drawing tool leaves no
// active shape.
func (c *Constructor) SetTool(t Tool) {
	if t == c.tool && c.active != nil {
		return
	}
	c.finish()
	c.tool = t
	c.begin()
}

func (c *Constructor) finish() {
	if c.active == nil || !c.started {
		c.active = nil
		return
	}
	if p, ok := c.active.(closer); ok && p.Constructing() {
		if p.Close() {
			c.logger.Debug("force-closed outline on tool switch", "shape", p.ID(), "kind", p.Kind())
			c.commit()
		} else {
			c.logger.Debug("discarded unclosable outline", "shape", p.ID(), "kind", p.Kind())
		}
	}
	c.active = nil
}

func (c *Constructor) begin() {
	c.started = false
	s, err := NewShape(c.tool, c.canvas.Decoration())
	if err != nil {
		c.active = nil
		return
	}
	c.active = s
}

// commit puts the finished shape on top of the canvas.
func (c *Constructor) commit() {
	s := c.active
	s.SetZIndex(c.canvas.Len())
	c.canvas.Add(s)
	c.logger.Debug("shape committed", "shape", s.ID(), "kind", s.Kind(), "z", s.ZIndex(), "bounds", s.Bounds())
}

// Handle feeds one pointer event to the shape under construction and
// commits it once it reports it is finished.
func (c *Constructor) Handle(ev input.Event) {
	if c.active == nil {
		c.begin()
		if c.active == nil {
			return
		}
	}
	if p, ok := c.active.(closer); ok {
		c.handleOutline(p, ev)
	} else {
		c.handleGesture(ev)
	}
	if c.started && !c.active.Constructing() {
		c.commit()
		c.begin()
	}
}

// handleGesture drives shapes drawn in one click-drag-release gesture.
func (c *Constructor) handleGesture(ev input.Event) {
	switch ev.Kind {
	case input.Click, input.Drag:
		c.started = true
	case input.Release:
	default:
		return
	}
	c.active.HandleInput(ev)
}

// handleOutline drives polygons and paths, which take many clicks.
func (c *Constructor) handleOutline(p closer, ev input.Event) {
	switch ev.Kind {
	case input.Click:
		c.started = true
	case input.Drag, input.Release:
		if p.Kind() != shape.KindPath {
			return
		}
	}
	p.HandleInput(ev)
}

// Render draws the shape under construction once it has begun.
func (c *Constructor) Render(sink render.Sink, ctx render.Context) {
	if c.active != nil && c.started {
		c.active.Render(sink, ctx)
	}
}

// Reset drops the active shape and starts a fresh one for the same tool.
func (c *Constructor) Reset() {
	c.active = nil
	c.begin()
}
