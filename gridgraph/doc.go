// Package gridgraph treats a raster as an implicit graph: every cell is a
// vertex and edges join each cell to its 4 or 8 neighbours.
//
// What:
//
//   - Connectivity selects orthogonal (Conn4) or orthogonal+diagonal (Conn8) moves.
//   - Neighborhood returns the precomputed step offsets with their lengths
//     (1 for axis-aligned moves, √2 for diagonal ones).
//   - Components labels contiguous regions ("islands") of true cells in a mask.
//
// Why:
//
//   - The cost-distance engine walks neighbourhoods millions of times per
//     raster; offsets and lengths are computed once and shared.
//   - Island counts explain unreachable areas: a source on one island never
//     reaches cells on another.
//
// Complexity:
//
//   - Neighborhood: O(1).
//   - Components:   O(W×H×d), Memory: O(W×H)    (d = 4 or 8).
//
// Errors:
//
//   - ErrBadConnectivity: connectivity other than Conn4 or Conn8.
package gridgraph
