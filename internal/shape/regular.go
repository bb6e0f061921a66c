package shape

import (
	"fmt"
	"math"

	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/style"
)

// RegularPolygon builds a closed polygon with equal sides around center.
// An upright polygon has a vertex pointing straight up.
func RegularPolygon(sides int, center geom.Point, radius int, upright bool, d style.Decoration) (*Polygon, error) {
	if sides < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewSides, sides)
	}
	theta := 0.0
	if upright {
		theta = -math.Pi / 2
	}
	p := NewPolygon(d)
	for i := range sides {
		a := 2*math.Pi*float64(i)/float64(sides) + theta
		pt := geom.Pt(
			center.X+int(math.Round(float64(radius)*math.Cos(a))),
			center.Y+int(math.Round(float64(radius)*math.Sin(a))),
		)
		p.anchors = append(p.anchors, AnchorPoint{Point: pt})
	}
	p.close()
	return p, nil
}
