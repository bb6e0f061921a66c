package geom

import "math"

// Matrix is a 2D affine transformation matrix.
// Layout: [a, b, c, d, e, f] representing:
// | a  c  e |
// | b  d  f |
// | 0  0  1 |
//
// Where:
// - a, d = scale
// - b, c = skew
// - e, f = translation
type Matrix [6]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Translate returns a translation matrix.
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale returns a scale matrix.
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Multiply multiplies this matrix by another: result = m * other
// This applies 'other' first, then 'm'.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[2]*other[1],        // a
		m[1]*other[0] + m[3]*other[1],        // b
		m[0]*other[2] + m[2]*other[3],        // c
		m[1]*other[2] + m[3]*other[3],        // d
		m[0]*other[4] + m[2]*other[5] + m[4], // e
		m[1]*other[4] + m[3]*other[5] + m[5], // f
	}
}

// Apply maps x, y through the matrix.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// TransformPoint maps p through the matrix, rounding to the nearest pixel.
func (m Matrix) TransformPoint(p Point) Point {
	x, y := m.Apply(float64(p.X), float64(p.Y))
	return Point{X: int(math.Round(x)), Y: int(math.Round(y))}
}

// TransformRect transforms a rectangle and returns its axis-aligned bounding box.
func (m Matrix) TransformRect(r Rect) Rect {
	b, _ := Bounds(
		m.TransformPoint(r.Min),
		m.TransformPoint(Pt(r.Max.X, r.Min.Y)),
		m.TransformPoint(r.Max),
		m.TransformPoint(Pt(r.Min.X, r.Max.Y)),
	)
	return b
}

// ScaleFactor returns the horizontal scale of the matrix. Stroke widths and
// other lengths are scaled by it.
func (m Matrix) ScaleFactor() float64 {
	return math.Hypot(m[0], m[1])
}

// Determinant returns the determinant of the matrix.
func (m Matrix) Determinant() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Invert returns the inverse of the matrix, or Identity if not invertible.
func (m Matrix) Invert() Matrix {
	det := m.Determinant()
	if det == 0 {
		return Identity()
	}

	invDet := 1.0 / det
	return Matrix{
		m[3] * invDet,
		-m[1] * invDet,
		-m[2] * invDet,
		m[0] * invDet,
		(m[2]*m[5] - m[3]*m[4]) * invDet,
		(m[1]*m[4] - m[0]*m[5]) * invDet,
	}
}

// ToSlice returns the matrix as a float64 slice for JSON serialization.
func (m Matrix) ToSlice() []float64 {
	return []float64{m[0], m[1], m[2], m[3], m[4], m[5]}
}

// IsIdentity checks if this is the identity matrix (within epsilon).
func (m Matrix) IsIdentity() bool {
	const eps = 1e-10
	return math.Abs(m[0]-1) < eps &&
		math.Abs(m[1]) < eps &&
		math.Abs(m[2]) < eps &&
		math.Abs(m[3]-1) < eps &&
		math.Abs(m[4]) < eps &&
		math.Abs(m[5]) < eps
}
