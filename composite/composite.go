package composite

import (
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/costdist/pixel"
	"github.com/katalvlaran/costdist/raster"
)

// Sentinel errors for compositing.
var (
	// ErrDimensionMismatch indicates operands of differing width or height.
	ErrDimensionMismatch = fmt.Errorf("composite: %w", raster.ErrDimensionMismatch)

	// ErrNoLayers indicates Mosaic was given no layers.
	ErrNoLayers = errors.New("composite: no layers to stack")

	// ErrNilGrid indicates a nil operand.
	ErrNilGrid = errors.New("composite: grid is nil")
)

// ColorGrid is a grid of non-premultiplied colours.
type ColorGrid = raster.Grid[pixel.RGBA]

// Over composites a single foreground colour over a background colour.
//
//	outA = fgA + bgA·(1−fgA)
//	out  = (fg·fgA + bg·bgA·(1−fgA)) / outA
//
// With an opaque background this is fg·fgA + bg·(1−fgA).
func Over(fg, bg pixel.RGBA) pixel.RGBA {
	if fg.A <= 0 {
		return bg
	}
	if fg.A >= 1 || bg.A <= 0 {
		return fg
	}
	k := bg.A * (1 - fg.A)
	a := fg.A + k

	return pixel.RGBA{
		R: (fg.R*fg.A + bg.R*k) / a,
		G: (fg.G*fg.A + bg.G*k) / a,
		B: (fg.B*fg.A + bg.B*k) / a,
		A: a,
	}
}

// Blend places fg over bg. Both must share a shape.
// A cell is valid in the output when it is valid in the background or
// carries coverage in the foreground; a transparent or invalid foreground
// cell passes the background through unchanged.
//
// Stage 1 (Validate): non-nil operands of equal shape.
// Stage 2 (Execute):  per-cell Over, rows in parallel.
// Complexity: O(W×H).
func Blend(fg, bg *ColorGrid) (*ColorGrid, error) {
	if fg == nil || bg == nil {
		return nil, ErrNilGrid
	}
	if !fg.SameShape(bg) {
		return nil, fmt.Errorf("%w: fg %dx%d, bg %dx%d", ErrDimensionMismatch,
			fg.Width(), fg.Height(), bg.Width(), bg.Height())
	}

	out, _ := raster.New[pixel.RGBA](fg.Width(), fg.Height())
	w := fg.Width()
	err := forEachRow(fg.Height(), func(y int) {
		for i := y * w; i < (y+1)*w; i++ {
			f, fok := fg.At(i)
			b, bok := bg.At(i)
			switch {
			case !fok && !bok:
				// both transparent: stays invalid
			case !fok:
				out.SetAt(i, b)
			case !bok:
				if f.A > 0 {
					out.SetAt(i, f)
				}
			default:
				out.SetAt(i, Over(f, b))
			}
		}
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Mosaic stacks layers, the first topmost and the last at the bottom,
// as repeated Blend calls.
func Mosaic(layers ...*ColorGrid) (*ColorGrid, error) {
	if len(layers) == 0 {
		return nil, ErrNoLayers
	}
	acc := layers[len(layers)-1]
	if acc == nil {
		return nil, ErrNilGrid
	}
	acc = acc.Clone()
	for i := len(layers) - 2; i >= 0; i-- {
		next, err := Blend(layers[i], acc)
		if err != nil {
			return nil, fmt.Errorf("composite: layer %d: %w", i, err)
		}
		acc = next
	}

	return acc, nil
}

// forEachRow runs fn for every row index using up to GOMAXPROCS goroutines.
func forEachRow(h int, fn func(y int)) error {
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for y := 0; y < h; y++ {
		y := y // per-iteration copy (go 1.21 loop semantics)
		eg.Go(func() error {
			fn(y)
			return nil
		})
	}

	return eg.Wait()
}
