// Package input turns raw pointer and keyboard activity into the gesture
// events shapes and managers consume.
package input

import (
	"fmt"
	"strings"

	"github.com/sketchpad/sketchpad/internal/geom"
)

// Kind is the phase of a pointer event.
type Kind int

const (
	Click Kind = iota
	Drag
	Move
	Release
)

var kindNames = [...]string{"click", "drag", "move", "release"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Event is one pointer event. Origin is where the current gesture was
// pressed; for Move events it equals Pos.
type Event struct {
	Kind   Kind
	Pos    geom.Point
	Origin geom.Point
	Clicks int
}

// Offset is the cumulative displacement since the gesture began.
func (e Event) Offset() geom.Point {
	return geom.Offset(e.Origin, e.Pos)
}

func (e Event) String() string {
	return fmt.Sprintf("%s@%v", e.Kind, e.Pos)
}

// Tracker converts press/motion/release notifications into Events and
// remembers the press origin for the length of a gesture.
type Tracker struct {
	pressed bool
	origin  geom.Point
}

// Press starts a gesture.
func (t *Tracker) Press(p geom.Point, clicks int) Event {
	t.pressed = true
	t.origin = p
	if clicks < 1 {
		clicks = 1
	}
	return Event{Kind: Click, Pos: p, Origin: p, Clicks: clicks}
}

// Motion reports pointer movement: a Drag while pressed, a Move otherwise.
func (t *Tracker) Motion(p geom.Point) Event {
	if t.pressed {
		return Event{Kind: Drag, Pos: p, Origin: t.origin}
	}
	return Event{Kind: Move, Pos: p, Origin: p}
}

// Release ends the gesture. A release without a press is reported with
// its own position as origin.
func (t *Tracker) Release(p geom.Point) Event {
	origin := p
	if t.pressed {
		origin = t.origin
	}
	t.pressed = false
	return Event{Kind: Release, Pos: p, Origin: origin}
}

// Key identifies the keys the editor reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyDelete
	KeyAlt
	KeyShift
	KeySelect     // V
	KeyRect       // M
	KeyLine       // L
	KeyDecoration // D
)

// ParseKey maps a key name as browsers report it (KeyboardEvent.key).
func ParseKey(s string) Key {
	switch strings.ToLower(s) {
	case "delete", "backspace":
		return KeyDelete
	case "alt":
		return KeyAlt
	case "shift":
		return KeyShift
	case "v":
		return KeySelect
	case "m":
		return KeyRect
	case "l":
		return KeyLine
	case "d":
		return KeyDecoration
	}
	return KeyUnknown
}
