package document

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sketchpad/sketchpad/internal/editor"
	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/input"
	"github.com/sketchpad/sketchpad/internal/shape"
	"github.com/sketchpad/sketchpad/internal/style"
)

func gesture(e *editor.Editor, tool editor.Tool, from, to geom.Point) {
	e.SetActiveTool(tool)
	e.Press(from, 1)
	e.Motion(to)
	e.Release(to)
}

func clicks(e *editor.Editor, pts ...geom.Point) {
	for _, p := range pts {
		e.Press(p, 1)
		e.Release(p)
	}
}

// drawing builds one of every kind through the editor, with a restyled
// shape and a hole in the z-order.
func drawing(t *testing.T) *editor.Editor {
	t.Helper()
	e := editor.New(nil)
	gesture(e, editor.ToolRect, geom.Pt(50, 40), geom.Pt(10, 10))
	gesture(e, editor.ToolCircle, geom.Pt(100, 100), geom.Pt(160, 130))
	gesture(e, editor.ToolRect, geom.Pt(500, 500), geom.Pt(520, 520))
	gesture(e, editor.ToolLine, geom.Pt(90, 10), geom.Pt(30, 70))

	e.SetActiveTool(editor.ToolPolygon)
	clicks(e, geom.Pt(200, 200), geom.Pt(260, 200), geom.Pt(260, 260), geom.Pt(200, 260), geom.Pt(201, 201))

	e.SetActiveTool(editor.ToolPen)
	clicks(e, geom.Pt(300, 300))
	e.Press(geom.Pt(400, 300), 1)
	e.Motion(geom.Pt(420, 340))
	e.Release(geom.Pt(420, 340))
	clicks(e, geom.Pt(400, 400), geom.Pt(300, 400), geom.Pt(302, 302))

	_, err := e.InsertRegularPolygon(5, geom.Pt(600, 100), 50, true)
	require.NoError(t, err)

	e.SetActiveTool(editor.ToolSelect)
	e.Press(geom.Pt(510, 510), 1)
	e.Release(geom.Pt(510, 510))
	e.KeyPress(input.KeyDelete)

	e.Press(geom.Pt(20, 20), 1)
	e.Release(geom.Pt(20, 20))
	d := style.Default()
	d.Fill = style.Blue
	d.Cap = style.CapRound
	e.DecorateSelection(d, true, true)

	require.Equal(t, 6, e.Canvas().Len())
	return e
}

func TestRoundTripPreservesShapes(t *testing.T) {
	e := drawing(t)
	doc := FromShapes(e.Shapes())

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc))

	back, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, back.ID)

	shapes, err := back.Build()
	require.NoError(t, err)
	require.Len(t, shapes, 6)

	for i, orig := range e.Shapes() {
		assert.Equal(t, shape.Capture(orig), shape.Capture(shapes[i]), "shape %d", i)
		assert.Equal(t, orig.Bounds(), shapes[i].Bounds())
		assert.False(t, shapes[i].Constructing())
		assert.False(t, shapes[i].Selected())
	}
	assert.Equal(t, []int{0, 1, 3, 4, 5, 6}, zs(shapes))

	path := shapes[4].(*shape.Path)
	assert.Len(t, path.Curves(), 1)
	assert.True(t, path.Closed())
	assert.Equal(t, style.Blue, shapes[0].Decoration().Fill)
}

func zs(shapes []shape.Shape) []int {
	out := make([]int, len(shapes))
	for i, s := range shapes {
		out[i] = s.ZIndex()
	}
	return out
}

func TestLoadedShapesStayEditable(t *testing.T) {
	doc := FromShapes(drawing(t).Shapes())
	shapes, err := doc.Build()
	require.NoError(t, err)

	e := editor.New(nil)
	e.Append(shapes...)
	e.Append(shapes...)
	require.Equal(t, 12, e.Canvas().Len(), "second load gets fresh IDs")

	e.SetActiveTool(editor.ToolSelect)
	e.Press(geom.Pt(130, 110), 1)
	e.Motion(geom.Pt(140, 120))
	e.Release(geom.Pt(140, 120))
	assert.Equal(t, geom.NewRect(geom.Pt(110, 110), geom.Pt(170, 140)), e.Shapes()[7].Bounds())
	assert.Equal(t, geom.NewRect(geom.Pt(100, 100), geom.Pt(160, 130)), e.Shapes()[1].Bounds())
}

func TestDecodeRejectsVersion(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"version": 2, "shapes": []}`))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = Decode(strings.NewReader(`{"shapes": []}`))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = Decode(strings.NewReader(`{not json`))
	assert.Error(t, err)
}

func TestBuildIsAllOrNothing(t *testing.T) {
	tests := []struct {
		name string
		json string
		want error
	}{
		{
			name: "unknown kind",
			json: `{"version":1,"shapes":[{"type":"rect","start":{"x":0,"y":0},"end":{"x":5,"y":5}},{"type":"star"}]}`,
			want: ErrUnknownKind,
		},
		{
			name: "rect without corners",
			json: `{"version":1,"shapes":[{"type":"rect"}]}`,
			want: ErrMissingGeometry,
		},
		{
			name: "polygon without anchors",
			json: `{"version":1,"shapes":[{"type":"polygon"}]}`,
			want: shape.ErrNoAnchors,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode(strings.NewReader(tt.json))
			require.NoError(t, err)
			shapes, err := doc.Build()
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, shapes)
		})
	}
}

func TestEncodeUsesReadableNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, NewSampleDocument()))
	out := buf.String()
	assert.Contains(t, out, `"type": "circle"`)
	assert.Contains(t, out, `"fill": "#e94560ff"`)
	assert.Contains(t, out, `"version": 1`)
}

func TestSampleDocumentBuilds(t *testing.T) {
	doc := NewSampleDocument()
	shapes, err := doc.Build()
	require.NoError(t, err)
	require.Len(t, shapes, 5)

	kinds := make([]shape.Kind, len(shapes))
	for i, s := range shapes {
		kinds[i] = s.Kind()
		assert.Equal(t, i, s.ZIndex())
		assert.NotEmpty(t, s.ID())
	}
	assert.Equal(t, []shape.Kind{shape.KindRect, shape.KindCircle, shape.KindLine, shape.KindPath, shape.KindPolygon}, kinds)
}
