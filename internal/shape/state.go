package shape

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/style"
)

var (
	ErrUnknownKind = errors.New("unknown shape kind")
	ErrNoAnchors   = errors.New("shape has no anchors")
)

// State is the complete persistent geometry of a committed shape.
type State struct {
	ID         string
	Kind       Kind
	Z          int
	Start, End geom.Point
	Anchors    []geom.Point
	Curves     []Curve
	Closed     bool
	Decoration style.Decoration
}

// Capture reads the persistent state out of s.
func Capture(s Shape) State {
	st := State{
		ID:         s.ID(),
		Kind:       s.Kind(),
		Z:          s.ZIndex(),
		Decoration: s.Decoration(),
	}
	switch v := s.(type) {
	case *Rect:
		st.Start, st.End = v.start, v.end
	case *Circle:
		st.Start, st.End = v.start, v.end
	case *Line:
		st.Start, st.End = v.start, v.end
	case *Polygon:
		st.Anchors, st.Curves, st.Closed = v.Anchors(), v.Curves(), v.closed
	case *Path:
		st.Anchors, st.Curves, st.Closed = v.Anchors(), v.Curves(), v.closed
	}
	return st
}

// FromState rebuilds a committed shape. The ID and z-index are kept.
func FromState(st State) (Shape, error) {
	var s Shape
	switch st.Kind {
	case KindRect:
		s = &Rect{committedExtent(st.Decoration, geom.NewRect(st.Start, st.End))}
	case KindCircle:
		s = &Circle{committedExtent(st.Decoration, geom.NewRect(st.Start, st.End))}
	case KindLine:
		l := NewLine(st.Decoration)
		l.started, l.constructing = true, false
		l.start, l.end = st.Start, st.End
		l.Update()
		s = l
	case KindPolygon:
		p := NewPolygon(st.Decoration)
		if err := p.load(st); err != nil {
			return nil, err
		}
		s = p
	case KindPath:
		p := NewPath(st.Decoration)
		if err := p.load(st); err != nil {
			return nil, err
		}
		s = p
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, st.Kind)
	}
	setIdentity(s, st.ID, st.Z)
	return s, nil
}

func (p *polyline) load(st State) error {
	if len(st.Anchors) == 0 {
		return fmt.Errorf("%w: %s %s", ErrNoAnchors, st.Kind, st.ID)
	}
	p.anchors = p.anchors[:0]
	for _, a := range st.Anchors {
		p.anchors = append(p.anchors, AnchorPoint{Point: a})
	}
	p.curves = slices.Clone(st.Curves)
	p.closed = st.Closed
	p.showAnchors = false
	p.constructing = false
	p.Update()
	return nil
}

func setIdentity(s Shape, id string, z int) {
	var b *base
	switch v := s.(type) {
	case *Rect:
		b = &v.base
	case *Circle:
		b = &v.base
	case *Line:
		b = &v.base
	case *Polygon:
		b = &v.base
	case *Path:
		b = &v.base
	}
	if id != "" {
		b.id = id
	}
	b.z = z
}
