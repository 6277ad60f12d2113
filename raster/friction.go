package raster

import (
	"fmt"
	"math"
)

// NewFriction builds a friction grid from a flat row-major buffer.
// A cell is valid only when its value is finite, strictly positive and not
// equal to nodata; every other cell is impassable. Zero and negative
// friction are dropped silently: ocean and nodata cells are routine in
// real rasters.
// Complexity: O(w*h).
func NewFriction(w, h int, data []float64, nodata float64) (*Grid[float64], error) {
	if w <= 0 || h <= 0 {
		return nil, ErrBadShape
	}
	if len(data) != w*h {
		return nil, fmt.Errorf("friction has %d elements, want %d: %w", len(data), w*h, ErrBufferLength)
	}
	g, _ := New[float64](w, h)
	for i, v := range data {
		if IsPassable(v) && v != nodata {
			g.SetAt(i, v)
		}
	}

	return g, nil
}

// IsPassable reports whether a friction value can be crossed.
func IsPassable(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// SourcesFromValues derives a source mask from a numeric grid:
// valid cells with a value > 0 are sources, everything else is not.
func SourcesFromValues(g *Grid[float64]) *Grid[bool] {
	out := Map(g, func(v float64) (bool, bool) { return v > 0, true })
	for i := range out.valid {
		out.valid[i] = true
	}

	return out
}

// PaintSources returns a w×h source mask with the listed cells set.
// Returns ErrOutOfRange (wrapped with the offending cell) if any cell lies
// outside the grid.
func PaintSources(w, h int, cells []Cell) (*Grid[bool], error) {
	g, err := New[bool](w, h)
	if err != nil {
		return nil, err
	}
	g.Fill(false)
	for _, c := range cells {
		if err = g.Set(c.X, c.Y, true); err != nil {
			return nil, fmt.Errorf("paint source: %w", err)
		}
	}

	return g, nil
}

// SourceCount returns the number of valid true cells in a mask.
func SourceCount(g *Grid[bool]) int {
	n := 0
	for i, ok := range g.valid {
		if ok && g.data[i] {
			n++
		}
	}

	return n
}
