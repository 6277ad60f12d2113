package tonemap

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/costdist/pixel"
)

// Hex stops of the built-in palettes.
var (
	accessibilityStops = []string{
		"f2fef8", "defce1", "c9f3bc", "cbeca7", "d6e793",
		"e2d87b", "d4a561", "c46c49", "ab3a38", "922f4b", "7d285d", "672069",
		"3a1453", "1b0c3c", "050526", "00030f", "000000",
	}
	frictionStops = []string{
		"313695", "4575b4", "74add1", "abd9e9", "e0f3f8",
		"ffffbf", "fee090", "fdae61", "f46d43", "d73027", "a50026",
	}
	cloudStops = []string{"MediumBlue", "Silver", "Crimson", "DarkRed"}
)

// Accessibility is the pale-green-to-black travel-time palette over the
// log domain [0, 10] (log minutes).
func Accessibility() Palette {
	return mustPalette(0, 10, accessibilityStops)
}

// Friction is the blue-to-red diverging palette over [0.0022, 0.04]
// minutes per metre.
func Friction() Palette {
	return mustPalette(0.0022, 0.04, frictionStops)
}

// Cloudiness is the blue-silver-red palette over a [0, 1] cloud fraction.
func Cloudiness() Palette {
	return mustPalette(0, 1, cloudStops)
}

// Background is the dark fill that shows through unreached cells.
var Background = pixel.MustParse("11101e")

func mustPalette(min, max float64, stops []string) Palette {
	p, err := ParsePalette(min, max, stops...)
	if err != nil {
		panic(err)
	}

	return p
}

// Preset returns a built-in palette by name: "accessibility", "friction" or
// "cloudiness" (case-insensitive).
func Preset(name string) (Palette, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "accessibility":
		return Accessibility(), nil
	case "friction":
		return Friction(), nil
	case "cloudiness":
		return Cloudiness(), nil
	default:
		return Palette{}, fmt.Errorf("%w: unknown palette preset %q", ErrInvalidArgument, name)
	}
}
