// Package document is the on-disk and on-wire form of a drawing.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/shape"
	"github.com/sketchpad/sketchpad/internal/style"
	"github.com/sketchpad/sketchpad/internal/typeid"
)

// Version is the document format version written by Encode.
const Version = 1

var (
	ErrUnsupportedVersion = errors.New("unsupported document version")
	ErrUnknownKind        = shape.ErrUnknownKind
	ErrMissingGeometry    = errors.New("shape is missing geometry")
)

type Document struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Version   int         `json:"version"`
	CreatedAt string      `json:"createdAt"`
	UpdatedAt string      `json:"updatedAt"`
	Shapes    []ShapeNode `json:"shapes"`
}

// ShapeNode is one shape. Rect, circle and line use Start and End;
// polygon and path use Anchors and Curves.
type ShapeNode struct {
	ID      string           `json:"id"`
	Type    shape.Kind       `json:"type"`
	Z       int              `json:"z"`
	Start   *geom.Point      `json:"start,omitempty"`
	End     *geom.Point      `json:"end,omitempty"`
	Anchors []geom.Point     `json:"anchors,omitempty"`
	Curves  []shape.Curve    `json:"curves,omitempty"`
	Closed  bool             `json:"closed,omitempty"`
	Style   style.Decoration `json:"style"`
}

// NewEmptyDocument creates a document with no shapes.
func NewEmptyDocument(name string) *Document {
	now := time.Now().UTC().Format(time.RFC3339)
	return &Document{
		ID:        typeid.NewDocumentID(),
		Name:      name,
		Version:   Version,
		CreatedAt: now,
		UpdatedAt: now,
		Shapes:    []ShapeNode{},
	}
}

// FromShapes captures shapes, bottom to top, into a new document.
func FromShapes(shapes []shape.Shape) *Document {
	doc := NewEmptyDocument("")
	for _, s := range shapes {
		doc.Shapes = append(doc.Shapes, nodeFromState(shape.Capture(s)))
	}
	return doc
}

func nodeFromState(st shape.State) ShapeNode {
	n := ShapeNode{
		ID:      st.ID,
		Type:    st.Kind,
		Z:       st.Z,
		Anchors: st.Anchors,
		Curves:  st.Curves,
		Closed:  st.Closed,
		Style:   st.Decoration,
	}
	switch st.Kind {
	case shape.KindRect, shape.KindCircle, shape.KindLine:
		start, end := st.Start, st.End
		n.Start, n.End = &start, &end
	}
	return n
}

func (n ShapeNode) state() (shape.State, error) {
	st := shape.State{
		ID:         n.ID,
		Kind:       n.Type,
		Z:          n.Z,
		Anchors:    n.Anchors,
		Curves:     n.Curves,
		Closed:     n.Closed,
		Decoration: n.Style,
	}
	switch n.Type {
	case shape.KindRect, shape.KindCircle, shape.KindLine:
		if n.Start == nil || n.End == nil {
			return st, fmt.Errorf("%w: %s %s needs start and end", ErrMissingGeometry, n.Type, n.ID)
		}
		st.Start, st.End = *n.Start, *n.End
	}
	return st, nil
}

// Build rebuilds every shape. Either all shapes are returned or none: a
// single bad node fails the whole document.
func (d *Document) Build() ([]shape.Shape, error) {
	shapes := make([]shape.Shape, 0, len(d.Shapes))
	for i, n := range d.Shapes {
		st, err := n.state()
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		s, err := shape.FromState(st)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}

// Touch stamps the document as modified now.
func (d *Document) Touch() {
	d.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

// Encode writes doc as indented JSON.
func Encode(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}

// Decode reads a document and checks its version. Shapes are not built.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}
	return &doc, nil
}
