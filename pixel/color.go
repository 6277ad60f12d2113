package pixel

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ErrBadColor indicates a colour string that is neither hex nor a known name.
var ErrBadColor = errors.New("pixel: unrecognized colour")

// RGBA represents a non-premultiplied colour; each component is in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Transparent is the colour of cells that carry no value.
var Transparent = RGBA{}

// RGB creates an opaque colour from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// Parse reads a colour written either as hex ("11101e", "#f2fef8", "#abc")
// or as a CSS/SVG colour name ("MediumBlue", "silver"), the two forms used
// by palette definitions. The result is opaque.
func Parse(s string) (RGBA, error) {
	spec := strings.TrimSpace(s)
	if spec == "" {
		return RGBA{}, fmt.Errorf("%w: empty string", ErrBadColor)
	}

	// 1) Named colours first.
	if named, ok := colornames.Map[strings.ToLower(spec)]; ok {
		return FromColor(named), nil
	}

	// 2) Hex, with or without the leading '#'.
	if spec[0] != '#' {
		spec = "#" + spec
	}
	if !isHex(spec[1:]) || (len(spec) != 4 && len(spec) != 7) {
		return RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	c, err := colorful.Hex(spec)
	if err != nil {
		return RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}

	return fromColorful(c, 1), nil
}

// MustParse is Parse that panics; for package-level palette tables.
func MustParse(s string) RGBA {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return c
}

// FromColor converts a standard color.Color (premultiplied) to RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Transparent
	}
	// Un-premultiply.
	af := float64(a)

	return RGBA{
		R: float64(r) / af,
		G: float64(g) / af,
		B: float64(b) / af,
		A: af / 0xffff,
	}
}

// NRGBA converts to the 8-bit non-premultiplied standard colour.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

// Lerp interpolates linearly between c and other in RGB, alpha included.
func (c RGBA) Lerp(other RGBA, t float64) RGBA {
	mixed := c.colorful().BlendRgb(other.colorful(), t)

	return fromColorful(mixed, c.A+(other.A-c.A)*t)
}

// WithAlpha returns c with A replaced.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = clamp01(a)

	return c
}

// Hex formats the colour channels as "#rrggbb" (alpha is dropped).
func (c RGBA) Hex() string {
	return c.colorful().Clamped().Hex()
}

// colorful drops alpha; go-colorful works on RGB only.
func (c RGBA) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

func fromColorful(c colorful.Color, a float64) RGBA {
	c = c.Clamped()

	return RGBA{R: c.R, G: c.G, B: c.B, A: clamp01(a)}
}

// to8 maps [0,1] to [0,255] with rounding.
func to8(x float64) uint8 {
	return uint8(clamp01(x)*255 + 0.5)
}

// clamp01 restricts a value to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// isHex reports whether s is non-empty and made of hex digits only.
func isHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}
