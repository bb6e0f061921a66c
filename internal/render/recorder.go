package render

import (
	"encoding/json"

	"github.com/sketchpad/sketchpad/internal/geom"
	"github.com/sketchpad/sketchpad/internal/style"
)

// DrawCommand is a single recorded drawing operation. A browser client
// replays a list of them onto a Canvas2D context.
type DrawCommand struct {
	Op          string       `json:"op"` // "line", "rect", "ellipse", "polygon", "cubic"
	Fill        string       `json:"fill,omitempty"`
	Stroke      string       `json:"stroke,omitempty"`
	StrokeWidth float64      `json:"strokeWidth,omitempty"`
	Cap         style.Cap    `json:"cap,omitempty"`
	Join        style.Join   `json:"join,omitempty"`
	Dash        []float64    `json:"dash,omitempty"`
	Closed      bool         `json:"closed,omitempty"`
	Points      []geom.Point `json:"points"`
}

// Recorder is a Sink that keeps every call as a DrawCommand.
type Recorder struct {
	Commands []DrawCommand
}

var _ Sink = (*Recorder)(nil)

// Reset drops all recorded commands, keeping the buffer.
func (r *Recorder) Reset() {
	r.Commands = r.Commands[:0]
}

// Ops returns the op names in order. Handy for assertions.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Commands))
	for i, c := range r.Commands {
		ops[i] = c.Op
	}
	return ops
}

// JSON serializes the recorded commands.
func (r *Recorder) JSON() (string, error) {
	if len(r.Commands) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(r.Commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

func (r *Recorder) stroke(op string, s Stroke, pts ...geom.Point) {
	r.Commands = append(r.Commands, DrawCommand{
		Op:          op,
		Stroke:      s.Color.Hex(),
		StrokeWidth: s.Width,
		Cap:         s.Cap,
		Join:        s.Join,
		Dash:        s.Dash,
		Points:      pts,
	})
}

func (r *Recorder) fill(op string, c style.Color, pts ...geom.Point) {
	r.Commands = append(r.Commands, DrawCommand{Op: op, Fill: c.Hex(), Points: pts})
}

func (r *Recorder) StrokeLine(a, b geom.Point, s Stroke) { r.stroke("line", s, a, b) }

func (r *Recorder) StrokeRect(rect geom.Rect, s Stroke) { r.stroke("rect", s, rect.Min, rect.Max) }

func (r *Recorder) FillRect(rect geom.Rect, c style.Color) { r.fill("rect", c, rect.Min, rect.Max) }

func (r *Recorder) StrokeEllipse(rect geom.Rect, s Stroke) {
	r.stroke("ellipse", s, rect.Min, rect.Max)
}

func (r *Recorder) FillEllipse(rect geom.Rect, c style.Color) {
	r.fill("ellipse", c, rect.Min, rect.Max)
}

func (r *Recorder) StrokePolygon(pts []geom.Point, closed bool, s Stroke) {
	r.stroke("polygon", s, append([]geom.Point(nil), pts...)...)
	r.Commands[len(r.Commands)-1].Closed = closed
}

func (r *Recorder) FillPolygon(pts []geom.Point, c style.Color) {
	r.fill("polygon", c, append([]geom.Point(nil), pts...)...)
	r.Commands[len(r.Commands)-1].Closed = true
}

func (r *Recorder) StrokeCubic(p0, c1, c2, p3 geom.Point, s Stroke) {
	r.stroke("cubic", s, p0, c1, c2, p3)
}
