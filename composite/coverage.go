package composite

import (
	"fmt"

	"github.com/katalvlaran/costdist/pixel"
	"github.com/katalvlaran/costdist/raster"
)

// Solid returns a w×h grid filled with c, the constant background a
// visualization is composited onto.
func Solid(w, h int, c pixel.RGBA) (*ColorGrid, error) {
	g, err := raster.New[pixel.RGBA](w, h)
	if err != nil {
		return nil, err
	}
	g.Fill(c)

	return g, nil
}

// Opacity returns a copy of g with every valid cell's coverage multiplied by
// alpha (clamped to [0,1]); 0.2 turns a layer into a faint overlay.
func Opacity(g *ColorGrid, alpha float64) *ColorGrid {
	return raster.Map(g, func(c pixel.RGBA) (pixel.RGBA, bool) {
		return c.WithAlpha(c.A * alpha), true
	})
}

// Flatten returns a copy of g with every valid cell fully opaque.
func Flatten(g *ColorGrid) *ColorGrid {
	return raster.Map(g, func(c pixel.RGBA) (pixel.RGBA, bool) {
		return c.WithAlpha(1), true
	})
}

// MaskBy returns a copy of g in which every cell that is invalid in mask is
// invalid too, clipping a layer to another raster's footprint (for example
// hiding oceans by the footprint of a land-only dataset).
func MaskBy[T any](g *ColorGrid, mask *raster.Grid[T]) (*ColorGrid, error) {
	if g == nil || mask == nil {
		return nil, ErrNilGrid
	}
	if !g.SameShape(mask) {
		return nil, fmt.Errorf("%w: grid %dx%d, mask %dx%d", ErrDimensionMismatch,
			g.Width(), g.Height(), mask.Width(), mask.Height())
	}
	out := g.Clone()
	for i := 0; i < out.Len(); i++ {
		if !mask.ValidAt(i) {
			out.InvalidateAt(i)
		}
	}

	return out, nil
}
