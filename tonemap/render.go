package tonemap

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/costdist/pixel"
	"github.com/katalvlaran/costdist/raster"
)

// Render maps every valid cell of g through transform and palette.
// The output has the same shape and validity as g: invalid cells stay
// invalid, which reads as fully transparent. Values below the transform's
// domain (v <= 0 under Log) take the palette's minimum colour.
//
// Stage 1 (Validate): non-nil grid, usable palette.
// Stage 2 (Execute):  rows are rendered concurrently; each writes disjoint cells.
// Complexity: O(W×H).
func Render(g *raster.Grid[float64], transform Transform, palette Palette) (*raster.Grid[pixel.RGBA], error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if err := palette.Validate(); err != nil {
		return nil, err
	}
	if transform != Identity && transform != Log {
		return nil, fmt.Errorf("%w: unknown transform %v", ErrInvalidArgument, transform)
	}

	out, _ := raster.New[pixel.RGBA](g.Width(), g.Height())
	minColor := palette.Colors[0]
	w := g.Width()

	err := forEachRow(g.Height(), func(y int) error {
		for i := y * w; i < (y+1)*w; i++ {
			v, ok := g.At(i)
			if !ok {
				continue
			}
			tv, below := transform.apply(v)
			switch {
			case below:
				out.SetAt(i, minColor)
			case math.IsNaN(tv):
				// no colour: stays transparent
			default:
				out.SetAt(i, palette.At(tv))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Ramp renders palette as a w×h legend: colour varies left to right from
// Min to Max and is constant down each column. Use palette.Reversed() for a
// high-to-low bar.
func Ramp(palette Palette, w, h int) (*raster.Grid[pixel.RGBA], error) {
	if err := palette.Validate(); err != nil {
		return nil, err
	}
	out, err := raster.New[pixel.RGBA](w, h)
	if err != nil {
		return nil, err
	}

	// 1) One colour per column, sampled at the column centre.
	cols := make([]pixel.RGBA, w)
	span := palette.Max - palette.Min
	for x := range cols {
		t := (float64(x) + 0.5) / float64(w)
		if w == 1 {
			t = 0
		}
		cols[x] = palette.At(palette.Min + t*span)
	}

	// 2) Copy the column colours into every row.
	err = forEachRow(h, func(y int) error {
		for x, c := range cols {
			out.SetAt(y*w+x, c)
		}
		return nil
	})

	return out, err
}

// FitDomain returns p stretched over the 2nd–98th percentile of g's valid
// cells after transform, the automatic display stretch used when no domain
// is configured.
func FitDomain(p Palette, g *raster.Grid[float64], transform Transform) (Palette, error) {
	if g == nil {
		return Palette{}, ErrNilGrid
	}

	// 1) Transform valid cells, dropping those below the domain.
	tg := raster.Map(g, func(v float64) (float64, bool) {
		tv, below := transform.apply(v)
		return tv, !below && !math.IsNaN(tv)
	})

	// 2) Robust extremes.
	s, err := raster.Stats(tg)
	if err != nil {
		return Palette{}, fmt.Errorf("tonemap: fit domain: %w", err)
	}
	lo, hi := s.P02, s.P98
	if !(lo < hi) {
		lo, hi = s.Min, s.Max
	}
	if !(lo < hi) {
		hi = lo + 1
	}

	return p.WithDomain(lo, hi)
}

// forEachRow runs fn for every row index using up to GOMAXPROCS goroutines.
func forEachRow(h int, fn func(y int) error) error {
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for y := 0; y < h; y++ {
		y := y // per-iteration copy (go 1.21 loop semantics)
		eg.Go(func() error { return fn(y) })
	}

	return eg.Wait()
}
