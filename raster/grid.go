package raster

import (
	"fmt"
)

// Grid is a W×H row-major array of T with a per-cell validity mask.
// Width and height never change after construction; len(data) == len(valid) == W*H.
type Grid[T any] struct {
	w, h  int
	data  []T    // flat backing storage, row-major
	valid []bool // validity mask, same layout as data
}

// Cell addresses one grid cell by column (X) and row (Y).
type Cell struct {
	X, Y int
}

// gridErrorf wraps an underlying error with Grid method context.
func gridErrorf(method string, x, y int, err error) error {
	return fmt.Errorf("Grid.%s(%d,%d): %w", method, x, y, err)
}

// New creates a w×h grid with every cell invalid.
// Complexity: O(w*h) time and memory.
func New[T any](w, h int) (*Grid[T], error) {
	if w <= 0 || h <= 0 {
		return nil, ErrBadShape
	}

	return &Grid[T]{
		w:     w,
		h:     h,
		data:  make([]T, w*h),
		valid: make([]bool, w*h),
	}, nil
}

// FromSlice wraps copies of data and valid as a w×h grid.
// A nil valid slice marks every cell valid.
// Returns ErrBadShape or ErrBufferLength on malformed input.
// Complexity: O(w*h).
func FromSlice[T any](w, h int, data []T, valid []bool) (*Grid[T], error) {
	// 1) Validate shape and buffer lengths.
	if w <= 0 || h <= 0 {
		return nil, ErrBadShape
	}
	if len(data) != w*h {
		return nil, fmt.Errorf("data has %d elements, want %d: %w", len(data), w*h, ErrBufferLength)
	}
	if valid != nil && len(valid) != w*h {
		return nil, fmt.Errorf("mask has %d elements, want %d: %w", len(valid), w*h, ErrBufferLength)
	}

	// 2) Copy so later mutation of the caller's slices cannot leak in.
	g := &Grid[T]{w: w, h: h, data: make([]T, w*h), valid: make([]bool, w*h)}
	copy(g.data, data)
	if valid == nil {
		for i := range g.valid {
			g.valid[i] = true
		}
	} else {
		copy(g.valid, valid)
	}

	return g, nil
}

// From2D builds an all-valid grid from rows[y][x].
// Returns ErrEmptyGrid if rows has no rows or no columns,
// ErrNonRectangular if any row length differs.
// Complexity: O(W×H).
func From2D[T any](rows [][]T) (*Grid[T], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(rows), len(rows[0])
	for _, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	g, err := New[T](w, h)
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		copy(g.data[y*w:(y+1)*w], row)
	}
	for i := range g.valid {
		g.valid[i] = true
	}

	return g, nil
}

// Width returns the number of columns.
func (g *Grid[T]) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid[T]) Height() int { return g.h }

// Len returns W×H.
func (g *Grid[T]) Len() int { return len(g.data) }

// InBounds reports whether (x,y) lies within the grid.
// Complexity: O(1).
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// Index maps (x,y) to the row-major index y*W + x. No bounds check.
func (g *Grid[T]) Index(x, y int) int {
	return y*g.w + x
}

// Coordinate converts a row-major index back to (x,y).
func (g *Grid[T]) Coordinate(i int) (x, y int) {
	return i % g.w, i / g.w
}

// Get returns the value at (x,y) and whether the cell is valid.
// An invalid cell yields the zero T and ok == false.
// Returns ErrOutOfRange when (x,y) is outside the grid.
// Complexity: O(1).
func (g *Grid[T]) Get(x, y int) (v T, ok bool, err error) {
	if !g.InBounds(x, y) {
		return v, false, gridErrorf("Get", x, y, ErrOutOfRange)
	}
	i := g.Index(x, y)
	if !g.valid[i] {
		return v, false, nil
	}

	return g.data[i], true, nil
}

// Set stores v at (x,y) and marks the cell valid.
// Returns ErrOutOfRange when (x,y) is outside the grid.
func (g *Grid[T]) Set(x, y int, v T) error {
	if !g.InBounds(x, y) {
		return gridErrorf("Set", x, y, ErrOutOfRange)
	}
	i := g.Index(x, y)
	g.data[i] = v
	g.valid[i] = true

	return nil
}

// Invalidate marks (x,y) as nodata and clears its value.
func (g *Grid[T]) Invalidate(x, y int) error {
	if !g.InBounds(x, y) {
		return gridErrorf("Invalidate", x, y, ErrOutOfRange)
	}
	g.InvalidateAt(g.Index(x, y))

	return nil
}

// IsValid reports whether (x,y) holds a value.
func (g *Grid[T]) IsValid(x, y int) (bool, error) {
	if !g.InBounds(x, y) {
		return false, gridErrorf("IsValid", x, y, ErrOutOfRange)
	}

	return g.valid[g.Index(x, y)], nil
}

// At returns the value and validity at flat index i without bounds checks
// beyond the slice's own. Intended for hot loops that already own the index.
func (g *Grid[T]) At(i int) (T, bool) {
	if !g.valid[i] {
		var zero T
		return zero, false
	}

	return g.data[i], true
}

// ValidAt reports validity at flat index i.
func (g *Grid[T]) ValidAt(i int) bool { return g.valid[i] }

// SetAt stores v at flat index i and marks it valid.
func (g *Grid[T]) SetAt(i int, v T) {
	g.data[i] = v
	g.valid[i] = true
}

// InvalidateAt marks flat index i invalid and resets its value to the zero T.
func (g *Grid[T]) InvalidateAt(i int) {
	var zero T
	g.data[i] = zero
	g.valid[i] = false
}

// Fill stores v in every cell and marks every cell valid.
// Complexity: O(W×H).
func (g *Grid[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
		g.valid[i] = true
	}
}

// ValidCount returns the number of valid cells.
func (g *Grid[T]) ValidCount() int {
	n := 0
	for _, ok := range g.valid {
		if ok {
			n++
		}
	}

	return n
}

// Values returns a copy of the row-major buffer and the validity mask.
// Invalid cells hold the zero T.
func (g *Grid[T]) Values() ([]T, []bool) {
	data := make([]T, len(g.data))
	valid := make([]bool, len(g.valid))
	copy(data, g.data)
	copy(valid, g.valid)

	return data, valid
}

// Clone returns a deep copy of the grid.
// Complexity: O(W×H) time and memory.
func (g *Grid[T]) Clone() *Grid[T] {
	data, valid := g.Values()

	return &Grid[T]{w: g.w, h: g.h, data: data, valid: valid}
}

// SameShape reports whether g and other have equal width and height.
func (g *Grid[T]) SameShape(other Shape) bool {
	return g.w == other.Width() && g.h == other.Height()
}

// Shape is implemented by every Grid instantiation; it lets shape checks
// span grids of different element types.
type Shape interface {
	Width() int
	Height() int
}

// CheckSameShape returns ErrDimensionMismatch unless a and b share width and height.
func CheckSameShape(a, b Shape) error {
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return fmt.Errorf("%dx%d vs %dx%d: %w",
			a.Width(), a.Height(), b.Width(), b.Height(), ErrDimensionMismatch)
	}

	return nil
}

// Map applies fn to every valid cell of g and returns a new grid of the same
// shape. fn reports whether its output is valid; invalid inputs stay invalid
// and fn is not called for them.
// Complexity: O(W×H).
func Map[T, U any](g *Grid[T], fn func(T) (U, bool)) *Grid[U] {
	out := &Grid[U]{w: g.w, h: g.h, data: make([]U, len(g.data)), valid: make([]bool, len(g.valid))}
	for i, ok := range g.valid {
		if !ok {
			continue
		}
		if v, keep := fn(g.data[i]); keep {
			out.data[i] = v
			out.valid[i] = true
		}
	}

	return out
}
