package gridgraph

import "github.com/katalvlaran/costdist/raster"

// Components finds all contiguous regions ("islands") of valid true cells in
// mask, according to conn connectivity.
// Returns a slice of components; each component is a slice of cell indices
// (row-major) in BFS order.
//
// To convert an index back to (x,y), use mask.Coordinate(idx).
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H) for visited flags and output.
func Components(mask *raster.Grid[bool], conn Connectivity) ([][]int, error) {
	if err := Validate(conn); err != nil {
		return nil, err
	}
	w, h := mask.Width(), mask.Height()
	seen := make([]bool, w*h)
	var comps [][]int
	steps := Neighborhood(conn)

	land := func(i int) bool {
		v, ok := mask.At(i)
		return ok && v
	}

	for i0 := 0; i0 < w*h; i0++ {
		if seen[i0] || !land(i0) {
			continue // water or already labelled
		}
		// BFS to collect component
		queue := []int{i0}
		seen[i0] = true

		for qi := 0; qi < len(queue); qi++ {
			ux, uy := mask.Coordinate(queue[qi])
			for _, d := range steps {
				vx, vy := ux+d.DX, uy+d.DY
				if !mask.InBounds(vx, vy) {
					continue
				}
				vi := mask.Index(vx, vy)
				if !seen[vi] && land(vi) {
					seen[vi] = true
					queue = append(queue, vi)
				}
			}
		}
		comps = append(comps, queue)
	}

	return comps, nil
}

// Passable returns the mask of valid cells of any grid, the input to
// Components when islands of a friction surface are wanted.
func Passable[T any](g *raster.Grid[T]) *raster.Grid[bool] {
	out, _ := raster.New[bool](g.Width(), g.Height())
	for i := 0; i < g.Len(); i++ {
		out.SetAt(i, g.ValidAt(i))
	}

	return out
}
