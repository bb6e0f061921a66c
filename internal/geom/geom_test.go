package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRectNormalizes(t *testing.T) {
	tests := []struct {
		a, b Point
		want Rect
	}{
		{Pt(10, 10), Pt(50, 40), Rect{Min: Pt(10, 10), Max: Pt(50, 40)}},
		{Pt(50, 40), Pt(10, 10), Rect{Min: Pt(10, 10), Max: Pt(50, 40)}},
		{Pt(50, 10), Pt(10, 40), Rect{Min: Pt(10, 10), Max: Pt(50, 40)}},
		{Pt(10, 40), Pt(50, 10), Rect{Min: Pt(10, 10), Max: Pt(50, 40)}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewRect(tt.a, tt.b), "%v %v", tt.a, tt.b)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(Pt(0, 0), Pt(10, 10))
	assert.True(t, r.Contains(Pt(0, 0)))
	assert.True(t, r.Contains(Pt(9, 9)))
	assert.False(t, r.Contains(Pt(10, 5)))
	assert.False(t, r.Contains(Pt(-1, 5)))

	empty := NewRect(Pt(5, 5), Pt(5, 20))
	assert.True(t, empty.Empty())
	assert.False(t, empty.Contains(Pt(5, 10)))
}

func TestRectContainsRect(t *testing.T) {
	outer := NewRect(Pt(10, 10), Pt(200, 200))
	assert.True(t, outer.ContainsRect(NewRect(Pt(10, 10), Pt(200, 200))))
	assert.True(t, outer.ContainsRect(NewRect(Pt(20, 20), Pt(20, 80))))
	assert.False(t, outer.ContainsRect(NewRect(Pt(150, 150), Pt(201, 190))))
	assert.False(t, outer.ContainsRect(NewRect(Pt(9, 20), Pt(50, 50))))
}

func TestUnionAndBounds(t *testing.T) {
	a := NewRect(Pt(0, 0), Pt(10, 10))
	b := NewRect(Pt(5, -5), Pt(20, 8))
	assert.Equal(t, NewRect(Pt(0, -5), Pt(20, 10)), a.Union(b))

	r, ok := Bounds(Pt(3, 9), Pt(-1, 4), Pt(7, 2))
	assert.True(t, ok)
	assert.Equal(t, NewRect(Pt(-1, 2), Pt(7, 9)), r)

	_, ok = Bounds()
	assert.False(t, ok)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, Pt(15, -5), Offset(Pt(10, 10), Pt(25, 5)))
	assert.Equal(t, Pt(0, 0), Offset(Pt(3, 3), Pt(3, 3)))
}

func TestMatrix(t *testing.T) {
	m := Translate(10, 20).Multiply(Scale(2, 2))
	assert.Equal(t, Pt(12, 24), m.TransformPoint(Pt(1, 2)))
	assert.Equal(t, NewRect(Pt(10, 20), Pt(30, 40)), m.TransformRect(NewRect(Pt(0, 0), Pt(10, 10))))
	assert.Equal(t, Pt(1, 2), m.Invert().TransformPoint(Pt(12, 24)))
	assert.InDelta(t, 2.0, m.ScaleFactor(), 1e-9)
	assert.True(t, Identity().IsIdentity())
	assert.False(t, m.IsIdentity())
}
