package raster

import "errors"

// Every message is prefixed with "raster:". Callers match with errors.Is;
// methods add coordinates with fmt.Errorf("...: %w", ErrX).
var (
	// ErrBadShape indicates a non-positive width or height.
	ErrBadShape = errors.New("raster: width and height must be > 0")

	// ErrBufferLength indicates a flat buffer whose length is not W×H.
	ErrBufferLength = errors.New("raster: buffer length does not match width*height")

	// ErrEmptyGrid indicates a 2D input with no rows or no columns.
	ErrEmptyGrid = errors.New("raster: input grid must have at least one row and one column")

	// ErrNonRectangular indicates 2D input rows of differing lengths.
	ErrNonRectangular = errors.New("raster: all rows must have the same length")

	// ErrOutOfRange indicates an (x,y) coordinate outside the grid.
	ErrOutOfRange = errors.New("raster: index out of range")

	// ErrDimensionMismatch indicates two grids with differing width or height.
	ErrDimensionMismatch = errors.New("raster: dimension mismatch")

	// ErrNoValidCells indicates a statistic over a grid without valid cells.
	ErrNoValidCells = errors.New("raster: grid has no valid cells")
)
