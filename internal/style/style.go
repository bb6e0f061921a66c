package style

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is an 8-bit RGBA color. It marshals as "#rrggbbaa".
type Color color.NRGBA

var (
	Black       = Color{A: 0xff}
	White       = Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Gray        = Color{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	Blue        = Color{B: 0xff, A: 0xff}
	Red         = Color{R: 0xff, A: 0xff}
	Transparent = Color{}
)

var ErrBadColor = errors.New("invalid color")

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA(c).RGBA()
}

// Hex returns the color as "#rrggbbaa".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor accepts "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

type Cap string

const (
	CapButt   Cap = "butt"
	CapRound  Cap = "round"
	CapSquare Cap = "square"
)

type Join string

const (
	JoinMiter Join = "miter"
	JoinRound Join = "round"
	JoinBevel Join = "bevel"
)

// Decoration is the fill and stroke appearance of a shape. It is a plain
// value: assigning it copies it, so shapes never share decoration state.
type Decoration struct {
	HasFill     bool    `json:"hasFill"`
	Fill        Color   `json:"fill"`
	HasStroke   bool    `json:"hasStroke"`
	Stroke      Color   `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
	Cap         Cap     `json:"cap"`
	Join        Join    `json:"join"`
}

// Default is the decoration a new canvas starts with.
func Default() Decoration {
	return Decoration{
		HasFill:     true,
		Fill:        Gray,
		HasStroke:   true,
		Stroke:      Black,
		StrokeWidth: 5,
		Cap:         CapSquare,
		Join:        JoinMiter,
	}
}

// Clone returns an independent copy of d.
func (d Decoration) Clone() Decoration {
	return d
}

// WithFill returns d with the fill settings of src.
func (d Decoration) WithFill(src Decoration) Decoration {
	d.HasFill = src.HasFill
	d.Fill = src.Fill
	return d
}

// WithStroke returns d with the stroke settings of src.
func (d Decoration) WithStroke(src Decoration) Decoration {
	d.HasStroke = src.HasStroke
	d.Stroke = src.Stroke
	d.StrokeWidth = src.StrokeWidth
	d.Cap = src.Cap
	d.Join = src.Join
	return d
}
