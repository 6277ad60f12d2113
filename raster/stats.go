package raster

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the distribution of a grid's valid cells.
type Summary struct {
	Count    int     // number of valid cells
	Min, Max float64 // extremes
	Mean     float64 // arithmetic mean
	P02, P98 float64 // 2nd and 98th percentiles, a robust display stretch
}

// Stats summarizes the valid cells of g.
// Returns ErrNoValidCells if g has none.
// Complexity: O(N log N) for the percentile sort, N = valid cells.
func Stats(g *Grid[float64]) (Summary, error) {
	// 1) Gather valid values.
	vals := make([]float64, 0, g.ValidCount())
	for i, ok := range g.valid {
		if ok {
			vals = append(vals, g.data[i])
		}
	}
	if len(vals) == 0 {
		return Summary{}, ErrNoValidCells
	}

	// 2) Quantiles need sorted input.
	sort.Float64s(vals)

	return Summary{
		Count: len(vals),
		Min:   floats.Min(vals),
		Max:   floats.Max(vals),
		Mean:  stat.Mean(vals, nil),
		P02:   stat.Quantile(0.02, stat.Empirical, vals, nil),
		P98:   stat.Quantile(0.98, stat.Empirical, vals, nil),
	}, nil
}
