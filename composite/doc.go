// Package composite stacks colour grids with the Porter-Duff "over" operator.
//
// What:
//
//   - Blend(fg, bg): fg over bg per cell.
//   - Mosaic(layers...): an ordered stack, first layer topmost.
//   - Solid, Opacity, MaskBy, Flatten: the background fill and coverage
//     helpers that surround a blend (constant backgrounds, translucent
//     overlays, masking by another raster's footprint, forcing opacity).
//
// Invalid cells behave as fully transparent. Blend is associative, so a
// stack can be folded in any grouping with the same result.
//
// Complexity: O(W×H) per operation, rows processed concurrently.
//
// Errors:
//
//   - ErrDimensionMismatch: operands differ in shape (wraps raster.ErrDimensionMismatch).
//   - ErrNoLayers:          Mosaic called with nothing to stack.
//   - ErrNilGrid:           nil operand.
package composite
