// Package costdist is the root of a small toolkit for travel-time style
// raster analysis: accumulate the cheapest cost of reaching every cell of a
// friction surface from a set of sources, then turn the result into an image.
//
// 🚀 What is in the box?
//
//   - Grids: a generic W×H raster with a per-cell validity mask
//   - Cost distance: multi-source Dijkstra over 4- or 8-connected cells
//   - Tone mapping: log/identity transforms and piecewise-linear palettes
//   - Compositing: Porter-Duff "over" for stacking coloured layers
//   - A command that goes from CSV friction to PNG in one config file
//
// ✨ Why this shape?
//
//   - Invalid cells are first-class: nodata never turns into garbage costs or colours
//   - Pure Go, deterministic, no cgo
//   - Each stage is a plain function on grids, so stages compose and test in isolation
//
// Subpackages:
//
//	raster/       Grid[T], friction and source helpers, value statistics
//	gridgraph/    connectivity, neighbour steps, connected regions
//	costdist/     Accumulate: the cost-distance transform
//	pixel/        float RGBA colours, parsing, image conversion
//	tonemap/      Transform, Palette, Render, Ramp
//	composite/    Blend, Mosaic and coverage helpers
//	config/       JSON run configuration
//	cmd/costdist  the command-line front end
//
// Quick ASCII example (Conn8, friction 1 everywhere, source S):
//
//	1.414  1  1.414
//	  1    S    1
//	1.414  1  1.414
//
//	go install github.com/katalvlaran/costdist/cmd/costdist@latest
package costdist
