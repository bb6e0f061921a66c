package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/input"
	"github.com/sketchpad/sketchpad/internal/render"
	"github.com/sketchpad/sketchpad/internal/style"
)

// gesture feeds a click at from, one drag frame per step and a release at
// the last step.
func gesture(s Shape, from geom.Point, steps ...geom.Point) {
	var tr input.Tracker
	s.HandleInput(tr.Press(from, 1))
	for _, p := range steps {
		s.HandleInput(tr.Motion(p))
	}
	last := from
	if len(steps) > 0 {
		last = steps[len(steps)-1]
	}
	s.HandleInput(tr.Release(last))
}

func click(s Shape, p geom.Point) {
	s.HandleInput(input.Event{Kind: input.Click, Pos: p, Origin: p, Clicks: 1})
}

func hover(s Shape, p geom.Point) {
	s.HandleInput(input.Event{Kind: input.Move, Pos: p, Origin: p})
}

func TestExtentConstructionNormalizes(t *testing.T) {
	corners := []struct{ p1, p2 geom.Point }{
		{geom.Pt(10, 10), geom.Pt(60, 40)},
		{geom.Pt(60, 40), geom.Pt(10, 10)},
		{geom.Pt(60, 10), geom.Pt(10, 40)},
		{geom.Pt(10, 40), geom.Pt(60, 10)},
	}
	for _, c := range corners {
		for _, s := range []Shape{NewRect(style.Default()), NewCircle(style.Default())} {
			gesture(s, c.p1, c.p2)
			snap := s.Snapshot()
			assert.Equal(t, geom.Pt(10, 10), snap.Start, "%s %v->%v", s.Kind(), c.p1, c.p2)
			assert.Equal(t, geom.Pt(60, 40), snap.End, "%s %v->%v", s.Kind(), c.p1, c.p2)
			assert.False(t, s.Constructing())
			assert.True(t, s.CanMove())
		}
	}
}

func TestZeroExtentCommitsButCannotMove(t *testing.T) {
	r := NewRect(style.Default())
	gesture(r, geom.Pt(5, 5), geom.Pt(5, 50))
	assert.False(t, r.Constructing())
	assert.False(t, r.CanMove())

	r.SetSelected(true)
	r.HandleInput(input.Event{Kind: input.Drag, Pos: geom.Pt(20, 60), Origin: geom.Pt(5, 10)})
	assert.Equal(t, geom.NewRect(geom.Pt(5, 5), geom.Pt(5, 50)), r.Bounds())
}

func TestReleaseWithoutClickDoesNotCommit(t *testing.T) {
	r := NewRect(style.Default())
	r.HandleInput(input.Event{Kind: input.Release, Pos: geom.Pt(3, 3), Origin: geom.Pt(3, 3)})
	assert.True(t, r.Constructing())
}

func TestMoveIsAdditiveWithinGesture(t *testing.T) {
	o1, o2 := geom.Pt(7, -3), geom.Pt(12, 20)

	build := func() []Shape {
		r := NewRect(style.Default())
		gesture(r, geom.Pt(10, 10), geom.Pt(50, 30))
		l := NewLine(style.Default())
		gesture(l, geom.Pt(0, 0), geom.Pt(20, 40))
		p, err := RegularPolygon(5, geom.Pt(100, 100), 30, true, style.Default())
		require.NoError(t, err)
		return []Shape{r, l, p}
	}

	stepped, once := build(), build()
	for i := range stepped {
		snap := stepped[i].Snapshot()
		stepped[i].Move(snap, o1)
		stepped[i].Move(snap, o1.Add(o2))
		stepped[i].Update()

		once[i].Move(once[i].Snapshot(), o1.Add(o2))
		once[i].Update()

		assert.Equal(t, Capture(once[i]).Start, Capture(stepped[i]).Start, once[i].Kind())
		assert.Equal(t, Capture(once[i]).Anchors, Capture(stepped[i]).Anchors, once[i].Kind())
		assert.Equal(t, once[i].Bounds(), stepped[i].Bounds(), once[i].Kind())
	}
}

func TestSelfDrivenDragDoesNotCompound(t *testing.T) {
	r := NewRect(style.Default())
	gesture(r, geom.Pt(10, 10), geom.Pt(50, 30))

	click(r, geom.Pt(20, 20))
	require.True(t, r.Selected())

	origin := geom.Pt(20, 20)
	for _, p := range []geom.Point{geom.Pt(25, 20), geom.Pt(30, 25), geom.Pt(40, 30)} {
		r.HandleInput(input.Event{Kind: input.Drag, Pos: p, Origin: origin})
	}
	r.HandleInput(input.Event{Kind: input.Release, Pos: geom.Pt(40, 30), Origin: origin})

	assert.Equal(t, geom.NewRect(geom.Pt(30, 20), geom.Pt(70, 40)), r.Bounds())
	assert.Nil(t, r.gesture)
}

func TestDoubleClickDeselects(t *testing.T) {
	c := NewCircle(style.Default())
	gesture(c, geom.Pt(0, 0), geom.Pt(40, 40))

	click(c, geom.Pt(10, 10))
	assert.True(t, c.Selected())
	assert.True(t, c.BoundingBox().Visible)

	c.HandleInput(input.Event{Kind: input.Click, Pos: geom.Pt(12, 12), Origin: geom.Pt(12, 12), Clicks: 2})
	assert.False(t, c.Selected())
	assert.False(t, c.BoundingBox().Visible)

	click(c, geom.Pt(10, 10))
	click(c, geom.Pt(100, 100))
	assert.False(t, c.Selected())
}

func TestResizeNorthEastKeepsOppositeEdges(t *testing.T) {
	r := NewRect(style.Default())
	gesture(r, geom.Pt(10, 20), geom.Pt(110, 120))
	snap := r.Snapshot()

	r.Resize(snap, geom.Pt(15, -25), NE)
	r.Resize(snap, geom.Pt(30, -10), NE)
	r.Update()

	b := r.Bounds()
	assert.Equal(t, 10, b.Min.X, "west edge")
	assert.Equal(t, 120, b.Max.Y, "south edge")
	assert.Equal(t, 140, b.Max.X, "east edge")
	assert.Equal(t, 10, b.Min.Y, "north edge")
}

func TestResizeEveryDirection(t *testing.T) {
	off := geom.Pt(5, 7)
	from := geom.NewRect(geom.Pt(0, 0), geom.Pt(100, 100))
	want := map[Direction]geom.Rect{
		N:  geom.NewRect(geom.Pt(0, 7), geom.Pt(100, 100)),
		S:  geom.NewRect(geom.Pt(0, 0), geom.Pt(100, 107)),
		E:  geom.NewRect(geom.Pt(0, 0), geom.Pt(105, 100)),
		W:  geom.NewRect(geom.Pt(5, 0), geom.Pt(100, 100)),
		NW: geom.NewRect(geom.Pt(5, 7), geom.Pt(100, 100)),
		NE: geom.NewRect(geom.Pt(0, 7), geom.Pt(105, 100)),
		SE: geom.NewRect(geom.Pt(0, 0), geom.Pt(105, 107)),
		SW: geom.NewRect(geom.Pt(5, 0), geom.Pt(100, 107)),
	}
	for dir, rect := range want {
		r := NewRect(style.Default())
		gesture(r, from.Min, from.Max)
		r.Resize(r.Snapshot(), off, dir)
		assert.Equal(t, rect, r.Bounds(), dir.String())

		p, err := RegularPolygon(4, geom.Pt(50, 50), 50, false, style.Default())
		require.NoError(t, err)
		p.Resize(p.Snapshot(), off, dir)
		assert.Equal(t, rect, p.Bounds(), "polygon %s", dir)
	}
}

func TestResizePastOppositeEdgeRenormalizes(t *testing.T) {
	r := NewRect(style.Default())
	gesture(r, geom.Pt(0, 0), geom.Pt(50, 50))
	r.Resize(r.Snapshot(), geom.Pt(0, 80), N)
	assert.Equal(t, geom.NewRect(geom.Pt(0, 50), geom.Pt(50, 80)), r.Bounds())
}

func TestConstraint(t *testing.T) {
	assert.Equal(t, geom.Pt(9, 0), Axis.Apply(geom.Pt(9, 4)))
	assert.Equal(t, geom.Pt(0, -12), Axis.Apply(geom.Pt(9, -12)))
	assert.Equal(t, geom.Pt(9, 4), Free.Apply(geom.Pt(9, 4)))

	r := NewRect(style.Default())
	gesture(r, geom.Pt(0, 0), geom.Pt(10, 10))
	snap := r.Snapshot()
	snap.Constraint = Axis
	r.Move(snap, geom.Pt(30, 5))
	assert.Equal(t, geom.NewRect(geom.Pt(30, 0), geom.Pt(40, 10)), r.Bounds())
}

func TestLineKeepsEndpointOrder(t *testing.T) {
	l := NewLine(style.Default())
	gesture(l, geom.Pt(50, 10), geom.Pt(10, 40))
	a, b := l.Endpoints()
	assert.Equal(t, geom.Pt(50, 10), a)
	assert.Equal(t, geom.Pt(10, 40), b)
	assert.Equal(t, geom.NewRect(geom.Pt(10, 10), geom.Pt(50, 40)), l.Bounds())
	assert.True(t, l.CanMove())

	l.Resize(l.Snapshot(), geom.Pt(10, 0), E)
	a, b = l.Endpoints()
	assert.Equal(t, geom.Pt(60, 10), a)
	assert.Equal(t, geom.Pt(10, 40), b)

	dot := NewLine(style.Default())
	gesture(dot, geom.Pt(3, 3))
	assert.False(t, dot.CanMove())
}

func TestHandleHoverFirstMatchWins(t *testing.T) {
	box := NewBoundingBox(geom.Pt(0, 0), geom.Pt(10, 10))
	dirs := make([]Direction, 0, 8)
	for _, h := range box.Handles() {
		dirs = append(dirs, h.Dir)
	}
	assert.Equal(t, []Direction{N, S, E, W, NW, NE, SE, SW}, dirs)

	// (2,2) lies in the N, W and NW handles of a small box.
	assert.True(t, box.CheckHandleHover(geom.Pt(2, 2)))
	assert.Equal(t, N, box.ActiveHandle())

	big := NewBoundingBox(geom.Pt(100, 100), geom.Pt(0, 0))
	assert.Equal(t, geom.NewRect(geom.Pt(0, 0), geom.Pt(100, 100)), big.Rect)
	for _, tc := range []struct {
		p   geom.Point
		dir Direction
	}{
		{geom.Pt(50, 0), N},
		{geom.Pt(50, 100), S},
		{geom.Pt(100, 50), E},
		{geom.Pt(0, 50), W},
		{geom.Pt(0, 0), NW},
		{geom.Pt(100, 0), NE},
		{geom.Pt(100, 100), SE},
		{geom.Pt(0, 100), SW},
		{geom.Pt(104, 104), SE},
	} {
		assert.True(t, big.CheckHandleHover(tc.p), "%v", tc.p)
		assert.Equal(t, tc.dir, big.ActiveHandle(), "%v", tc.p)
	}

	assert.False(t, big.CheckHandleHover(geom.Pt(50, 50)))
	assert.Equal(t, None, big.ActiveHandle())
}

func TestBoundingBoxRendersOnlyWhenVisible(t *testing.T) {
	var rec render.Recorder
	box := NewBoundingBox(geom.Pt(0, 0), geom.Pt(40, 40))
	box.Render(&rec, render.Identity())
	assert.Empty(t, rec.Commands)

	box.Visible = true
	box.Render(&rec, render.Identity())
	assert.Len(t, rec.Commands, 16)
}

func TestSelfResizeKeepsHandleAcrossFrames(t *testing.T) {
	r := NewRect(style.Default())
	gesture(r, geom.Pt(0, 0), geom.Pt(100, 100))
	click(r, geom.Pt(50, 50))
	require.True(t, r.Selected())

	hover(r, geom.Pt(100, 100))
	require.Equal(t, SE, r.BoundingBox().ActiveHandle())

	origin := geom.Pt(100, 100)
	r.HandleInput(input.Event{Kind: input.Drag, Pos: geom.Pt(110, 105), Origin: origin})
	r.HandleInput(input.Event{Kind: input.Drag, Pos: geom.Pt(120, 130), Origin: origin})
	r.HandleInput(input.Event{Kind: input.Release, Pos: geom.Pt(120, 130), Origin: origin})
	assert.Equal(t, geom.NewRect(geom.Pt(0, 0), geom.Pt(120, 130)), r.Bounds())
}

func TestPolygonCloses(t *testing.T) {
	p := NewPolygon(style.Default())
	for _, pt := range []geom.Point{geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(100, 100), geom.Pt(0, 100)} {
		click(p, pt)
	}
	require.Len(t, p.Anchors(), 4)

	hover(p, geom.Pt(3, 2))
	assert.True(t, p.CanClose())
	assert.True(t, p.anchors[0].Hover)

	click(p, geom.Pt(3, 2))
	assert.True(t, p.Closed())
	assert.False(t, p.Constructing())
	assert.False(t, p.showAnchors)
	anchors := p.Anchors()
	require.Len(t, anchors, 5)
	assert.Equal(t, anchors[0], anchors[4])
	assert.True(t, p.CanMove())
	assert.Equal(t, geom.NewRect(geom.Pt(0, 0), geom.Pt(100, 100)), p.Bounds())
}

func TestPolygonNeedsFourAnchorsToClose(t *testing.T) {
	p := NewPolygon(style.Default())
	for _, pt := range []geom.Point{geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(50, 80)} {
		click(p, pt)
	}
	hover(p, geom.Pt(2, 1))
	assert.False(t, p.CanClose())

	click(p, geom.Pt(2, 1))
	assert.False(t, p.Closed())
	assert.True(t, p.Constructing())
	assert.Equal(t, []geom.Point{geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(50, 80), geom.Pt(2, 1)}, p.Anchors())

	assert.False(t, NewPolygon(style.Default()).Close())
}

func TestPolygonIgnoresDuplicates(t *testing.T) {
	p := NewPolygon(style.Default())
	click(p, geom.Pt(0, 0))
	click(p, geom.Pt(0, 0))
	click(p, geom.Pt(10, 0))
	require.Len(t, p.Anchors(), 3, "duplicates allowed until three anchors exist")

	click(p, geom.Pt(10, 0))
	click(p, geom.Pt(0, 0))
	assert.Len(t, p.Anchors(), 3)

	click(p, geom.Pt(10, 10))
	assert.Len(t, p.Anchors(), 4)
}

func TestPolygonForceClose(t *testing.T) {
	p := NewPolygon(style.Default())
	for _, pt := range []geom.Point{geom.Pt(0, 0), geom.Pt(40, 0), geom.Pt(40, 40)} {
		click(p, pt)
	}
	assert.False(t, p.Close())
	click(p, geom.Pt(0, 40))
	assert.True(t, p.Close())
	assert.True(t, p.Closed())
	assert.Len(t, p.Anchors(), 5)
}

func TestPathDragBendsLastSegment(t *testing.T) {
	p := NewPath(style.Default())
	click(p, geom.Pt(0, 0))

	var tr input.Tracker
	tr.Press(geom.Pt(100, 0), 1)
	p.HandleInput(input.Event{Kind: input.Click, Pos: geom.Pt(100, 0), Origin: geom.Pt(100, 0), Clicks: 1})
	p.HandleInput(tr.Motion(geom.Pt(110, 20)))
	p.HandleInput(tr.Motion(geom.Pt(120, 30)))

	pending, ok := p.Pending()
	require.True(t, ok)
	assert.Equal(t, Curve{Segment: 0, C1: geom.Pt(20, 30), C2: geom.Pt(80, -30)}, pending)
	assert.Empty(t, p.Curves())

	p.HandleInput(tr.Release(geom.Pt(120, 30)))
	_, ok = p.Pending()
	assert.False(t, ok)
	assert.Equal(t, []Curve{{Segment: 0, C1: geom.Pt(20, 30), C2: geom.Pt(80, -30)}}, p.Curves())
	assert.Equal(t, geom.NewRect(geom.Pt(0, -30), geom.Pt(100, 30)), p.Bounds())

	var rec render.Recorder
	p.Render(&rec, render.Identity())
	assert.Contains(t, rec.Ops(), "cubic")
}

func TestPathDragWithOneAnchorIsIgnored(t *testing.T) {
	p := NewPath(style.Default())
	click(p, geom.Pt(0, 0))
	p.HandleInput(input.Event{Kind: input.Drag, Pos: geom.Pt(9, 9), Origin: geom.Pt(0, 0)})
	_, ok := p.Pending()
	assert.False(t, ok)
}

func TestPathClosesAndMovesCurves(t *testing.T) {
	p := NewPath(style.Default())
	for _, pt := range []geom.Point{geom.Pt(0, 0), geom.Pt(50, 0), geom.Pt(50, 50), geom.Pt(0, 50)} {
		click(p, pt)
	}
	p.setCurve(Curve{Segment: 1, C1: geom.Pt(70, 10), C2: geom.Pt(70, 40)})
	click(p, geom.Pt(1, 1))
	require.True(t, p.Closed())

	p.Move(p.Snapshot(), geom.Pt(10, 10))
	p.Update()
	assert.Equal(t, []Curve{{Segment: 1, C1: geom.Pt(80, 20), C2: geom.Pt(80, 50)}}, p.Curves())
	assert.Equal(t, geom.NewRect(geom.Pt(10, 10), geom.Pt(80, 60)), p.Bounds())
}

func TestCloneIsDeep(t *testing.T) {
	p, err := RegularPolygon(3, geom.Pt(50, 50), 20, true, style.Default())
	require.NoError(t, err)
	p.SetSelected(true)

	c := p.Clone().(*Polygon)
	assert.NotEqual(t, p.ID(), c.ID())
	assert.False(t, c.Selected())
	assert.Equal(t, p.Anchors(), c.Anchors())

	c.Move(c.Snapshot(), geom.Pt(10, 0))
	c.Update()
	assert.NotEqual(t, p.Anchors(), c.Anchors())

	d := c.Decoration()
	d.Fill = style.Red
	c.SetDecoration(d)
	assert.Equal(t, style.Gray, p.Decoration().Fill)
	assert.NotSame(t, p.BoundingBox(), c.BoundingBox())
}

func TestRegularPolygon(t *testing.T) {
	_, err := RegularPolygon(2, geom.Pt(0, 0), 10, false, style.Default())
	assert.ErrorIs(t, err, ErrTooFewSides)

	p, err := RegularPolygon(4, geom.Pt(80, 80), 70, true, style.Default())
	require.NoError(t, err)
	assert.Equal(t, []geom.Point{
		geom.Pt(80, 10), geom.Pt(150, 80), geom.Pt(80, 150), geom.Pt(10, 80), geom.Pt(80, 10),
	}, p.Anchors())
	assert.True(t, p.Closed())
}

func TestStateRoundTrip(t *testing.T) {
	r := NewRect(style.Default())
	gesture(r, geom.Pt(5, 5), geom.Pt(30, 40))
	r.SetZIndex(3)

	st := Capture(r)
	back, err := FromState(st)
	require.NoError(t, err)
	assert.Equal(t, st, Capture(back))
	assert.True(t, back.CanMove())
	assert.False(t, back.Constructing())

	_, err = FromState(State{Kind: "star"})
	assert.ErrorIs(t, err, ErrUnknownKind)
	_, err = FromState(State{Kind: KindPolygon})
	assert.ErrorIs(t, err, ErrNoAnchors)
}

func TestRenderOrderFillThenStroke(t *testing.T) {
	var rec render.Recorder
	r := NewRect(style.Default())
	gesture(r, geom.Pt(0, 0), geom.Pt(10, 10))
	r.Render(&rec, render.Identity())
	assert.Equal(t, []string{"rect", "rect"}, rec.Ops())
	assert.NotEmpty(t, rec.Commands[0].Fill)
	assert.NotEmpty(t, rec.Commands[1].Stroke)

	rec.Reset()
	d := style.Default()
	d.HasFill = false
	l := NewLine(d)
	gesture(l, geom.Pt(0, 0), geom.Pt(10, 10))
	l.Render(&rec, render.View(2, geom.Point{}))
	require.Len(t, rec.Commands, 1)
	assert.Equal(t, []geom.Point{geom.Pt(0, 0), geom.Pt(20, 20)}, rec.Commands[0].Points)
	assert.InDelta(t, 10.0, rec.Commands[0].StrokeWidth, 1e-9)
}
