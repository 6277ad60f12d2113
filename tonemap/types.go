// Package tonemap turns a scalar grid into a colour grid: an optional
// monotonic domain transform (identity or natural log) followed by a
// piecewise-linear palette lookup.
//
// What:
//
//   - Transform: Identity or Log. Log sends v>0 to ln(v); v<=0 is "below
//     domain" and renders as the palette's minimum colour.
//   - Palette: evenly spaced colour stops over a [Min, Max] domain. Values are
//     clamped to the domain, then interpolated between the bracketing stops.
//   - Render: applies both per cell; invalid cells stay invalid (transparent).
//   - Ramp: renders a palette as a colour-bar legend.
//
// Complexity:
//
//   - Palette.At: O(1).
//   - Render, Ramp: O(W×H), rows processed concurrently.
//
// Errors:
//
//   - ErrInvalidArgument: Min >= Max, non-finite bounds, no colours, unknown transform.
//   - ErrNilGrid:         nil input grid.
package tonemap

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/costdist/pixel"
)

// Sentinel errors for tonemap operations.
var (
	// ErrInvalidArgument indicates a malformed palette or transform.
	ErrInvalidArgument = errors.New("tonemap: invalid argument")

	// ErrNilGrid indicates a nil input grid.
	ErrNilGrid = errors.New("tonemap: grid is nil")
)

// Transform is the monotonic function applied before the palette lookup.
type Transform int

const (
	// Identity leaves values unchanged.
	Identity Transform = iota
	// Log applies the natural logarithm to positive values.
	Log
)

// String returns "identity" or "log".
func (t Transform) String() string {
	switch t {
	case Identity:
		return "identity"
	case Log:
		return "log"
	default:
		return fmt.Sprintf("Transform(%d)", int(t))
	}
}

// ParseTransform accepts "identity" (or "") and "log", case-insensitively.
func ParseTransform(s string) (Transform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "identity", "linear":
		return Identity, nil
	case "log", "ln":
		return Log, nil
	default:
		return Identity, fmt.Errorf("%w: unknown transform %q", ErrInvalidArgument, s)
	}
}

// apply maps v through the transform. below reports a value under the
// transform's domain (v <= 0 for Log); the caller paints it with the
// palette's minimum colour.
func (t Transform) apply(v float64) (out float64, below bool) {
	if t == Log {
		if v <= 0 {
			return 0, true
		}
		return math.Log(v), false
	}

	return v, false
}

// Palette is an ordered list of colours spread evenly across [Min, Max].
// Colors[0] sits at Min and Colors[len-1] at Max.
type Palette struct {
	Colors   []pixel.RGBA
	Min, Max float64
}

// NewPalette validates and builds a palette. The colours are copied.
// Returns ErrInvalidArgument when min >= max, either bound is not finite,
// or no colours are given.
func NewPalette(min, max float64, colors ...pixel.RGBA) (Palette, error) {
	p := Palette{Colors: append([]pixel.RGBA(nil), colors...), Min: min, Max: max}
	if err := p.Validate(); err != nil {
		return Palette{}, err
	}

	return p, nil
}

// ParsePalette is NewPalette over colour strings: hex ("f2fef8", "#11101e")
// or CSS names ("MediumBlue").
func ParsePalette(min, max float64, specs ...string) (Palette, error) {
	colors := make([]pixel.RGBA, 0, len(specs))
	for i, s := range specs {
		c, err := pixel.Parse(s)
		if err != nil {
			return Palette{}, fmt.Errorf("%w: stop %d: %w", ErrInvalidArgument, i, err)
		}
		colors = append(colors, c)
	}

	return NewPalette(min, max, colors...)
}

// Validate reports whether p can be used for lookups.
func (p Palette) Validate() error {
	if len(p.Colors) == 0 {
		return fmt.Errorf("%w: palette has no colours", ErrInvalidArgument)
	}
	if math.IsNaN(p.Min) || math.IsNaN(p.Max) || math.IsInf(p.Min, 0) || math.IsInf(p.Max, 0) {
		return fmt.Errorf("%w: palette domain must be finite, got [%v,%v]", ErrInvalidArgument, p.Min, p.Max)
	}
	if p.Min >= p.Max {
		return fmt.Errorf("%w: palette domain min %v >= max %v", ErrInvalidArgument, p.Min, p.Max)
	}

	return nil
}

// At returns the colour for domain value v: v is clamped to [Min, Max] and
// interpolated linearly between the two bracketing stops. NaN maps to the
// minimum colour.
func (p Palette) At(v float64) pixel.RGBA {
	n := len(p.Colors)
	if n == 0 {
		return pixel.Transparent
	}
	if n == 1 {
		return p.Colors[0]
	}

	// 1) Fractional position within the domain, clamped.
	t := (v - p.Min) / (p.Max - p.Min)
	if !(t > 0) { // also catches NaN
		return p.Colors[0]
	}
	if t >= 1 {
		return p.Colors[n-1]
	}

	// 2) Bracketing stops and position between them.
	seg := t * float64(n-1)
	i := int(seg)
	if i >= n-1 {
		return p.Colors[n-1]
	}

	return p.Colors[i].Lerp(p.Colors[i+1], seg-float64(i))
}

// Reversed returns the palette with its colour order flipped, the
// "min:1, max:0" trick used to draw legends high-to-low.
func (p Palette) Reversed() Palette {
	out := Palette{Colors: make([]pixel.RGBA, len(p.Colors)), Min: p.Min, Max: p.Max}
	for i, c := range p.Colors {
		out.Colors[len(p.Colors)-1-i] = c
	}

	return out
}

// WithDomain returns a copy of p spanning [min, max].
func (p Palette) WithDomain(min, max float64) (Palette, error) {
	return NewPalette(min, max, p.Colors...)
}
