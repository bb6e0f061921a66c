package editor

import (
	"errors"
	"fmt"

	"github.com/sketchpad/sketchpad/internal/shape"
	"github.com/sketchpad/sketchpad/internal/style"
)

// Tool selects what pointer input does.
type Tool int

const (
	ToolSelect Tool = iota
	ToolRect
	ToolCircle
	ToolPolygon
	ToolLine
	ToolPen
)

var ErrNotDrawingTool = errors.New("tool does not draw shapes")

var toolNames = map[Tool]string{
	ToolSelect:  "select",
	ToolRect:    "rect",
	ToolCircle:  "circle",
	ToolPolygon: "polygon",
	ToolLine:    "line",
	ToolPen:     "pen",
}

func (t Tool) String() string {
	if n, ok := toolNames[t]; ok {
		return n
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// ParseTool maps a tool name back to a Tool.
func ParseTool(s string) (Tool, error) {
	for t, n := range toolNames {
		if n == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown tool %q", s)
}

// Draws reports whether the tool constructs shapes.
func (t Tool) Draws() bool {
	_, ok := factories[t]
	return ok
}

var factories = map[Tool]func(style.Decoration) shape.Shape{
	ToolRect:    func(d style.Decoration) shape.Shape { return shape.NewRect(d) },
	ToolCircle:  func(d style.Decoration) shape.Shape { return shape.NewCircle(d) },
	ToolPolygon: func(d style.Decoration) shape.Shape { return shape.NewPolygon(d) },
	ToolLine:    func(d style.Decoration) shape.Shape { return shape.NewLine(d) },
	ToolPen:     func(d style.Decoration) shape.Shape { return shape.NewPath(d) },
}

// NewShape builds an empty shape for a drawing tool, decorated with a copy
// of d.
func NewShape(t Tool, d style.Decoration) (shape.Shape, error) {
	f, ok := factories[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotDrawingTool, t)
	}
	return f(d.Clone()), nil
}
