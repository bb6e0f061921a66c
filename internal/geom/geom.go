package geom

import "fmt"

// Point is an integer pixel-space location.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p minus q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Offset returns the displacement that takes from onto to.
func Offset(from, to Point) Point {
	return to.Sub(from)
}

// Rect is an axis-aligned rectangle with Min <= Max on both axes.
// Construct it with NewRect so the ordering holds.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// NewRect returns the canonical rectangle spanned by two opposite corners.
func NewRect(a, b Point) Rect {
	return Rect{
		Min: Point{X: min(a.X, b.X), Y: min(a.Y, b.Y)},
		Max: Point{X: max(a.X, b.X), Y: max(a.Y, b.Y)},
	}
}

// XYWH builds a rectangle from its origin and size.
func XYWH(x, y, w, h int) Rect {
	return NewRect(Pt(x, y), Pt(x+w, y+h))
}

// Dx returns the width.
func (r Rect) Dx() int { return r.Max.X - r.Min.X }

// Dy returns the height.
func (r Rect) Dy() int { return r.Max.Y - r.Min.Y }

// Empty reports whether the rectangle has zero width or height.
func (r Rect) Empty() bool {
	return r.Dx() <= 0 || r.Dy() <= 0
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive, so an empty rectangle contains nothing.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// ContainsRect reports whether inner lies entirely inside r, edges included.
func (r Rect) ContainsRect(inner Rect) bool {
	return inner.Min.X >= r.Min.X && inner.Min.Y >= r.Min.Y &&
		inner.Max.X <= r.Max.X && inner.Max.Y <= r.Max.Y
}

// Union returns the smallest rect containing both rects.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: min(r.Min.X, other.Min.X), Y: min(r.Min.Y, other.Min.Y)},
		Max: Point{X: max(r.Max.X, other.Max.X), Y: max(r.Max.Y, other.Max.Y)},
	}
}

// Add returns r translated by p.
func (r Rect) Add(p Point) Rect {
	return Rect{Min: r.Min.Add(p), Max: r.Max.Add(p)}
}

func (r Rect) String() string {
	return fmt.Sprintf("%v-%v", r.Min, r.Max)
}

// Bounds returns the bounding rectangle of pts. It returns the zero Rect and
// false when pts is empty.
func Bounds(pts ...Point) (Rect, bool) {
	if len(pts) == 0 {
		return Rect{}, false
	}
	r := Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	return r, true
}
