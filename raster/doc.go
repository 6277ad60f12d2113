// Package raster provides Grid, a fixed-size two-dimensional array with a
// per-cell validity (nodata) mask, plus the friction and source helpers used
// by the cost-distance engine.
//
// What:
//
//   - Grid[T] stores W×H values in a flat row-major slice and a same-size
//     validity mask. Invalid cells read as "no value" (ok == false).
//   - Friction grids are Grid[float64] whose valid cells are strictly positive.
//   - Source masks are Grid[bool] whose valid true cells are zero-cost origins.
//
// Why:
//
//   - Real rasters routinely carry nodata (ocean, missing observations);
//     keeping validity next to the values lets every downstream stage
//     propagate it without sentinel numbers.
//
// Complexity:
//
//   - Get, Set, IsValid, Index, Coordinate: O(1).
//   - Clone, Map, Fill, ValidCount, Stats: O(W×H).
//
// Errors:
//
//   - ErrBadShape:          width or height is not positive.
//   - ErrBufferLength:      flat buffer length differs from W×H.
//   - ErrEmptyGrid:         2D input has no rows or no columns.
//   - ErrNonRectangular:    2D input rows have differing lengths.
//   - ErrOutOfRange:        (x,y) lies outside the grid.
//   - ErrDimensionMismatch: two grids that must share a shape do not.
//   - ErrNoValidCells:      a statistic was requested over an all-invalid grid.
package raster
