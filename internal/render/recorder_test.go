package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/style"
)

func TestRecorderOrderAndJSON(t *testing.T) {
	var rec Recorder
	s := Stroke{Color: style.Black, Width: 2, Cap: style.CapRound, Join: style.JoinBevel}

	rec.FillRect(geom.NewRect(geom.Pt(0, 0), geom.Pt(10, 10)), style.Gray)
	rec.StrokeRect(geom.NewRect(geom.Pt(0, 0), geom.Pt(10, 10)), s)
	rec.StrokePolygon([]geom.Point{geom.Pt(0, 0), geom.Pt(5, 5), geom.Pt(0, 5)}, true, s)
	rec.StrokeCubic(geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(2, 2), geom.Pt(3, 3), s)

	assert.Equal(t, []string{"rect", "rect", "polygon", "cubic"}, rec.Ops())
	assert.True(t, rec.Commands[2].Closed)
	assert.Equal(t, "#808080ff", rec.Commands[0].Fill)
	assert.Equal(t, "#000000ff", rec.Commands[1].Stroke)

	out, err := rec.JSON()
	require.NoError(t, err)
	var decoded []DrawCommand
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Len(t, decoded, 4)
	assert.Equal(t, style.CapRound, decoded[3].Cap)

	rec.Reset()
	out, err = rec.JSON()
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestContextScales(t *testing.T) {
	ctx := View(2, geom.Point{})
	assert.Equal(t, geom.Pt(20, 40), ctx.Point(geom.Pt(10, 20)))
	assert.Equal(t, geom.NewRect(geom.Pt(2, 2), geom.Pt(8, 8)), ctx.Rect(geom.NewRect(geom.Pt(1, 1), geom.Pt(4, 4))))
	assert.InDelta(t, 10.0, ctx.StrokeFor(style.Default()).Width, 1e-9)

	id := Identity()
	assert.Equal(t, geom.Pt(3, 4), id.Point(geom.Pt(3, 4)))
	assert.Equal(t, geom.Pt(3, 4), id.Model(geom.Pt(3, 4)))
}

func TestViewPansAfterZoom(t *testing.T) {
	ctx := View(2, geom.Pt(100, 50))
	assert.Equal(t, geom.Pt(120, 90), ctx.Point(geom.Pt(10, 20)))
	assert.Equal(t, geom.Pt(10, 20), ctx.Model(geom.Pt(120, 90)))
	assert.Equal(t, []float64{2, 0, 0, 2, 100, 50}, ctx.Transform.ToSlice())
}
