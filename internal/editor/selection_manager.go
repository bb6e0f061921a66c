package editor

import (
	"log/slog"

	"github.com/sketchpad/sketchpad/internal/canvas"
	"github.com/sketchpad/sketchpad/internal/input"
	"github.com/sketchpad/sketchpad/internal/render"
	"github.com/sketchpad/sketchpad/internal/shape"
)

// SelectionManager owns the active Selection, creating it on demand and
// dropping it once it clears.
type SelectionManager struct {
	canvas       *canvas.Canvas
	logger       *slog.Logger
	selection    *Selection
	hasSelection bool
	constraint   shape.Constraint
	cloning      bool
}

// NewSelectionManager returns a manager selecting from cv.
func NewSelectionManager(cv *canvas.Canvas, logger *slog.Logger) *SelectionManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SelectionManager{canvas: cv, logger: logger}
}

// Selection returns the live selection, or nil when there is none.
func (m *SelectionManager) Selection() *Selection {
	if !m.hasSelection {
		return nil
	}
	return m.selection
}

// HasSelection reports whether a selection is live.
func (m *SelectionManager) HasSelection() bool { return m.hasSelection }

// Handle forwards a pointer event to the selection.
func (m *SelectionManager) Handle(ev input.Event) {
	if !m.hasSelection || m.selection == nil {
		m.selection = NewSelection(m.canvas)
		m.selection.SetConstraint(m.constraint)
		m.hasSelection = true
	}
	if ev.Kind == input.Click {
		// Each gesture re-arms cloning while Alt is still held.
		m.selection.SetCloning(m.cloning)
	}
	m.selection.HandleInput(ev)
	if m.selection.Cleared() || (!m.selection.HasShapes() && !m.selection.Dragging()) {
		m.hasSelection = false
		return
	}
	if ev.Kind == input.Release && m.selection.HasShapes() {
		m.logger.Debug("selection updated", "shapes", len(m.selection.ids), "bounds", m.selection.box.Rect)
	}
}

// SetCloning arms or disarms duplication for drags made while the modifier
// is held, including drags that start a new selection.
func (m *SelectionManager) SetCloning(b bool) {
	m.cloning = b
	if m.hasSelection {
		m.selection.SetCloning(b)
	}
}

// SetConstraint sets the axis lock for drags that start from now on.
func (m *SelectionManager) SetConstraint(c shape.Constraint) {
	m.constraint = c
	if m.selection != nil {
		m.selection.SetConstraint(c)
	}
}

// Delete removes the selected shapes from the canvas.
func (m *SelectionManager) Delete() int {
	if !m.hasSelection {
		return 0
	}
	n := m.selection.Delete()
	m.hasSelection = false
	m.logger.Debug("selection deleted", "shapes", n)
	return n
}

// Clear dismisses any selection.
func (m *SelectionManager) Clear() {
	if m.selection != nil {
		m.selection.Clear()
	}
	m.hasSelection = false
}

func (m *SelectionManager) Render(sink render.Sink, ctx render.Context) {
	if m.hasSelection {
		m.selection.Render(sink, ctx)
	}
}
