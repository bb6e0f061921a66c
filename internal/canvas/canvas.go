// Package canvas owns the ordered list of committed shapes.
package canvas

import (
	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/render"
	"github.com/sketchpad/sketchpad/internal/shape"
	"github.com/sketchpad/sketchpad/internal/style"
)

// Canvas stores shapes in painter's order with an ID index. Everything
// else refers to shapes by ID.
type Canvas struct {
	shapes     []shape.Shape
	index      map[string]int
	decoration style.Decoration
}

// New returns an empty canvas with the default decoration.
func New() *Canvas {
	return &Canvas{
		index:      make(map[string]int),
		decoration: style.Default(),
	}
}

// Add appends shapes on top of the stack.
func (c *Canvas) Add(shapes ...shape.Shape) {
	for _, s := range shapes {
		if _, ok := c.index[s.ID()]; ok {
			continue
		}
		c.index[s.ID()] = len(c.shapes)
		c.shapes = append(c.shapes, s)
	}
}

// Get looks a shape up by ID.
func (c *Canvas) Get(id string) (shape.Shape, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return c.shapes[i], true
}

// Shapes returns the shapes bottom to top. The slice is a copy.
func (c *Canvas) Shapes() []shape.Shape {
	out := make([]shape.Shape, len(c.shapes))
	copy(out, c.shapes)
	return out
}

func (c *Canvas) Len() int { return len(c.shapes) }

// Remove deletes the shapes with the given IDs and returns how many were
// found. The survivors keep their order and z-index.
func (c *Canvas) Remove(ids ...string) int {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := c.index[id]; ok {
			drop[id] = true
		}
	}
	if len(drop) == 0 {
		return 0
	}
	kept := c.shapes[:0]
	for _, s := range c.shapes {
		if !drop[s.ID()] {
			kept = append(kept, s)
		}
	}
	clear(c.shapes[len(kept):])
	c.shapes = kept
	c.reindex()
	return len(drop)
}

// Raise moves the given shapes to the top, keeping their relative order,
// and renumbers every z-index to match the new stack.
func (c *Canvas) Raise(ids ...string) {
	up := make(map[string]bool, len(ids))
	for _, id := range ids {
		up[id] = true
	}
	var below, above []shape.Shape
	for _, s := range c.shapes {
		if up[s.ID()] {
			above = append(above, s)
		} else {
			below = append(below, s)
		}
	}
	c.shapes = append(below, above...)
	for i, s := range c.shapes {
		s.SetZIndex(i)
	}
	c.reindex()
}

// Clear removes every shape.
func (c *Canvas) Clear() {
	c.shapes = nil
	c.index = make(map[string]int)
}

func (c *Canvas) reindex() {
	clear(c.index)
	for i, s := range c.shapes {
		c.index[s.ID()] = i
	}
}

// TopmostAt returns the highest shape containing p.
func (c *Canvas) TopmostAt(p geom.Point) (shape.Shape, bool) {
	for i := len(c.shapes) - 1; i >= 0; i-- {
		if c.shapes[i].Contains(p) {
			return c.shapes[i], true
		}
	}
	return nil, false
}

// Within returns the shapes whose bounds lie entirely inside r, bottom to top.
func (c *Canvas) Within(r geom.Rect) []shape.Shape {
	var out []shape.Shape
	for _, s := range c.shapes {
		if r.ContainsRect(s.Bounds()) {
			out = append(out, s)
		}
	}
	return out
}

// Bounds returns the union of the bounds of the given shapes.
func (c *Canvas) Bounds(ids []string) (geom.Rect, bool) {
	var result geom.Rect
	found := false
	for _, id := range ids {
		s, ok := c.Get(id)
		if !ok {
			continue
		}
		if !found {
			result = s.Bounds()
			found = true
			continue
		}
		result = result.Union(s.Bounds())
	}
	return result, found
}

// Render paints every shape bottom to top.
func (c *Canvas) Render(sink render.Sink, ctx render.Context) {
	for _, s := range c.shapes {
		s.Render(sink, ctx)
	}
}

// Decoration is the decoration new shapes start with.
func (c *Canvas) Decoration() style.Decoration { return c.decoration }

func (c *Canvas) SetDecoration(d style.Decoration) { c.decoration = d.Clone() }

// ResetDecoration restores the default decoration.
func (c *Canvas) ResetDecoration() { c.decoration = style.Default() }
