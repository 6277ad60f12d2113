// Package costdist_test contains unit tests for the cost-distance engine.
// These tests validate minimality against brute force, the cost bound,
// obstacle handling, validation errors and cancellation.
package costdist_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/costdist/costdist"
	"github.com/katalvlaran/costdist/gridgraph"
	"github.com/katalvlaran/costdist/raster"
)

// uniform returns a w×h friction grid filled with v.
func uniform(t testing.TB, w, h int, v float64) *raster.Grid[float64] {
	t.Helper()
	g, err := raster.New[float64](w, h)
	require.NoError(t, err)
	g.Fill(v)
	return g
}

// sources paints the given cells into a w×h mask.
func sources(t testing.TB, w, h int, cells ...raster.Cell) *raster.Grid[bool] {
	t.Helper()
	m, err := raster.PaintSources(w, h, cells)
	require.NoError(t, err)
	return m
}

// bruteForce runs Bellman-Ford style relaxation over every edge until no
// cost improves. It knows nothing about heaps, so it is an independent oracle.
func bruteForce(friction *raster.Grid[float64], src *raster.Grid[bool], conn gridgraph.Connectivity) []float64 {
	n := friction.Len()
	cost := make([]float64, n)
	for i := range cost {
		cost[i] = math.Inf(1)
		if s, ok := src.At(i); ok && s && friction.ValidAt(i) {
			cost[i] = 0
		}
	}
	for changed := true; changed; {
		changed = false
		for u := 0; u < n; u++ {
			fu, ok := friction.At(u)
			if !ok || math.IsInf(cost[u], 1) {
				continue
			}
			ux, uy := friction.Coordinate(u)
			for _, s := range gridgraph.Neighborhood(conn) {
				vx, vy := ux+s.DX, uy+s.DY
				if !friction.InBounds(vx, vy) {
					continue
				}
				v := friction.Index(vx, vy)
				fv, ok := friction.At(v)
				if !ok {
					continue
				}
				if c := cost[u] + 0.5*(fu+fv)*s.Length; c < cost[v]-1e-12 {
					cost[v] = c
					changed = true
				}
			}
		}
	}
	return cost
}

// ------------------------------------------------------------------------
// 1. Validation Tests: Ensure errors are returned for invalid inputs.
// ------------------------------------------------------------------------

func TestAccumulate_NilGrids(t *testing.T) {
	f := uniform(t, 2, 2, 1)
	_, err := costdist.Accumulate(nil, sources(t, 2, 2))
	assert.ErrorIs(t, err, costdist.ErrNilGrid)
	_, err = costdist.Accumulate(f, nil)
	assert.ErrorIs(t, err, costdist.ErrNilGrid)
}

func TestAccumulate_InvalidArguments(t *testing.T) {
	f := uniform(t, 2, 2, 1)
	s := sources(t, 2, 2, raster.Cell{X: 0, Y: 0})
	cases := []struct {
		name string
		opt  costdist.Option
	}{
		{"ZeroMaxCost", costdist.WithMaxCost(0)},
		{"NegativeMaxCost", costdist.WithMaxCost(-5)},
		{"NaNMaxCost", costdist.WithMaxCost(math.NaN())},
		{"ZeroCellSize", costdist.WithCellSize(0)},
		{"BadConnectivity", costdist.WithConnectivity(gridgraph.Connectivity(6))},
		{"NilContext", costdist.WithContext(nil)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := costdist.Accumulate(f, s, tc.opt)
			assert.ErrorIs(t, err, costdist.ErrInvalidArgument)
		})
	}
}

func TestAccumulate_DimensionMismatch(t *testing.T) {
	_, err := costdist.Accumulate(uniform(t, 3, 2, 1), sources(t, 2, 3))
	require.Error(t, err)
	assert.ErrorIs(t, err, costdist.ErrDimensionMismatch)
	assert.True(t, errors.Is(err, raster.ErrDimensionMismatch), "raster sentinel should match too")
}

// ------------------------------------------------------------------------
// 2. End-to-end scenario: 3×3 uniform friction, single central source.
// ------------------------------------------------------------------------

func TestAccumulate_ThreeByThree(t *testing.T) {
	f := uniform(t, 3, 3, 1)
	s := sources(t, 3, 3, raster.Cell{X: 1, Y: 1})

	cases := []struct {
		name   string
		conn   gridgraph.Connectivity
		corner float64
	}{
		{"Conn8", gridgraph.Conn8, math.Sqrt2},
		{"Conn4", gridgraph.Conn4, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := costdist.Accumulate(f, s,
				costdist.WithMaxCost(10), costdist.WithConnectivity(tc.conn))
			require.NoError(t, err)

			c, e := tc.corner, 1.0
			want := []float64{
				c, e, c,
				e, 0, e,
				c, e, c,
			}
			got, valid := out.Values()
			assert.Equal(t, []bool{true, true, true, true, true, true, true, true, true}, valid)
			if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("costs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// ------------------------------------------------------------------------
// 3. Properties: minimality, non-negativity, bound, obstacles.
// ------------------------------------------------------------------------

// TestAccumulate_MinimalityBruteForce compares against Bellman-Ford on random
// 5×5 friction surfaces with ~20% impassable cells and 1–3 sources.
func TestAccumulate_MinimalityBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		const w, h = 5, 5
		data := make([]float64, w*h)
		for i := range data {
			if rng.Float64() < 0.2 {
				data[i] = 0 // impassable
			} else {
				data[i] = 0.1 + rng.Float64()*5
			}
		}
		f, err := raster.NewFriction(w, h, data, -1)
		require.NoError(t, err)

		var cells []raster.Cell
		for k := rng.Intn(3) + 1; k > 0; k-- {
			cells = append(cells, raster.Cell{X: rng.Intn(w), Y: rng.Intn(h)})
		}
		s := sources(t, w, h, cells...)

		for _, conn := range []gridgraph.Connectivity{gridgraph.Conn4, gridgraph.Conn8} {
			out, err := costdist.Accumulate(f, s, costdist.WithConnectivity(conn), costdist.WithMaxCost(1e9))
			require.NoError(t, err)
			want := bruteForce(f, s, conn)

			for i := 0; i < out.Len(); i++ {
				got, ok := out.At(i)
				if math.IsInf(want[i], 1) {
					assert.False(t, ok, "trial %d conn %v cell %d should be unreached", trial, conn, i)
					continue
				}
				require.True(t, ok, "trial %d conn %v cell %d should be reached", trial, conn, i)
				assert.InDelta(t, want[i], got, 1e-9, "trial %d conn %v cell %d", trial, conn, i)
				assert.GreaterOrEqual(t, got, 0.0)
			}
		}
	}
}

// TestAccumulate_SourcesAreZero checks every source is exactly 0 and others positive.
func TestAccumulate_SourcesAreZero(t *testing.T) {
	f := uniform(t, 6, 4, 0.75)
	s := sources(t, 6, 4, raster.Cell{X: 0, Y: 0}, raster.Cell{X: 5, Y: 3})
	out, err := costdist.Accumulate(f, s)
	require.NoError(t, err)

	for i := 0; i < out.Len(); i++ {
		v, ok := out.At(i)
		require.True(t, ok)
		if src, _ := s.At(i); src {
			assert.Equal(t, 0.0, v)
		} else {
			assert.Greater(t, v, 0.0)
		}
	}
}

// TestAccumulate_BoundRespected verifies nothing beyond MaxCost is reported.
func TestAccumulate_BoundRespected(t *testing.T) {
	f := uniform(t, 9, 1, 1)
	s := sources(t, 9, 1, raster.Cell{X: 0, Y: 0})
	out, err := costdist.Accumulate(f, s, costdist.WithMaxCost(3.5))
	require.NoError(t, err)

	for x := 0; x < 9; x++ {
		v, ok, err := out.Get(x, 0)
		require.NoError(t, err)
		if x <= 3 {
			assert.True(t, ok, "x=%d within bound", x)
			assert.Equal(t, float64(x), v)
		} else {
			assert.False(t, ok, "x=%d beyond bound must be unreached", x)
		}
	}

	// Diagonals beyond the bound on the 3×3 scenario stay unreached.
	f3 := uniform(t, 3, 3, 1)
	out3, err := costdist.Accumulate(f3, sources(t, 3, 3, raster.Cell{X: 1, Y: 1}), costdist.WithMaxCost(1.2))
	require.NoError(t, err)
	assert.Equal(t, 5, out3.ValidCount())
}

// TestAccumulate_ObstacleExclusion surrounds a source with impassable cells.
func TestAccumulate_ObstacleExclusion(t *testing.T) {
	data := []float64{
		1, 1, 1, 1, 1,
		1, 0, 0, 0, 1,
		1, 0, 1, 0, 1,
		1, 0, 0, 0, 1,
		1, 1, 1, 1, 1,
	}
	f, err := raster.NewFriction(5, 5, data, -1)
	require.NoError(t, err)
	s := sources(t, 5, 5, raster.Cell{X: 2, Y: 2})

	out, stats, err := costdist.AccumulateWithStats(f, s)
	require.NoError(t, err)
	assert.Equal(t, 1, out.ValidCount(), "only the enclosed source itself is reached")
	assert.Equal(t, 1, stats.Finalized)
	for i := 0; i < out.Len(); i++ {
		if !f.ValidAt(i) {
			assert.False(t, out.ValidAt(i), "impassable cell %d must not be finalized", i)
		}
	}

	// A source placed on an impassable cell seeds nothing.
	s2 := sources(t, 5, 5, raster.Cell{X: 1, Y: 1})
	out2, stats2, err := costdist.AccumulateWithStats(f, s2)
	require.NoError(t, err)
	assert.Equal(t, 0, out2.ValidCount())
	assert.Equal(t, 0, stats2.Seeds)
}

// TestAccumulate_HandBuiltBadFriction checks that valid cells holding zero,
// negative, NaN or infinite friction are obstacles even without NewFriction.
func TestAccumulate_HandBuiltBadFriction(t *testing.T) {
	for name, bad := range map[string]float64{
		"Zero":     0,
		"Negative": -1,
		"NaN":      math.NaN(),
		"Inf":      math.Inf(1),
	} {
		t.Run(name, func(t *testing.T) {
			// 1) A wall in the middle of a 3×1 strip cuts the far end off.
			f, err := raster.FromSlice(3, 1, []float64{1, bad, 1}, nil)
			require.NoError(t, err)
			out, err := costdist.Accumulate(f, sources(t, 3, 1, raster.Cell{X: 0, Y: 0}),
				costdist.WithConnectivity(gridgraph.Conn4),
				costdist.WithMaxCost(10),
			)
			require.NoError(t, err)

			v, ok, err := out.Get(0, 0)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, 0.0, v)
			for x := 1; x < 3; x++ {
				_, ok, err = out.Get(x, 0)
				require.NoError(t, err)
				assert.False(t, ok, "cell (%d,0) must stay unreached", x)
			}

			// 2) A source sitting on the bad cell seeds nothing.
			_, stats, err := costdist.AccumulateWithStats(f, sources(t, 3, 1, raster.Cell{X: 1, Y: 0}))
			require.NoError(t, err)
			assert.Equal(t, 0, stats.Seeds)
			assert.Equal(t, 0, stats.Finalized)
		})
	}
}

// TestAccumulate_EmptySources yields an all-unreached grid without error.
func TestAccumulate_EmptySources(t *testing.T) {
	out, err := costdist.Accumulate(uniform(t, 4, 4, 1), sources(t, 4, 4))
	require.NoError(t, err)
	assert.Equal(t, 4, out.Width())
	assert.Equal(t, 4, out.Height())
	assert.Equal(t, 0, out.ValidCount())
}

// TestAccumulate_CellSizeScales checks costs scale linearly with CellSize.
func TestAccumulate_CellSizeScales(t *testing.T) {
	f := uniform(t, 4, 1, 2)
	s := sources(t, 4, 1, raster.Cell{X: 0, Y: 0})
	out, err := costdist.Accumulate(f, s, costdist.WithCellSize(30))
	require.NoError(t, err)
	v, ok, _ := out.Get(3, 0)
	require.True(t, ok)
	assert.InDelta(t, 3*2*30.0, v, 1e-9)
}

// TestAccumulate_MeanFrictionEdge checks the averaged edge cost between unequal cells.
func TestAccumulate_MeanFrictionEdge(t *testing.T) {
	f, _ := raster.From2D([][]float64{{1, 3, 5}})
	out, err := costdist.Accumulate(f, sources(t, 3, 1, raster.Cell{X: 0, Y: 0}))
	require.NoError(t, err)
	got, _ := out.Values()
	assert.InDeltaSlice(t, []float64{0, 2, 6}, got, 1e-12)
}

// ------------------------------------------------------------------------
// 4. Ambient behavior: cancellation and logging.
// ------------------------------------------------------------------------

func TestAccumulate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := uniform(t, 100, 100, 1)
	s := sources(t, 100, 100, raster.Cell{X: 50, Y: 50})

	_, err := costdist.Accumulate(f, s, costdist.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAccumulate_LogsDebug(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := costdist.Accumulate(uniform(t, 3, 3, 1), sources(t, 3, 3, raster.Cell{X: 0, Y: 0}),
		costdist.WithLogger(l))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "accumulate done")
	assert.Contains(t, buf.String(), "finalized=9")
}

func TestSetLogger_NilRestoresSilence(t *testing.T) {
	var buf bytes.Buffer
	costdist.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	_, _ = costdist.Accumulate(uniform(t, 2, 2, 1), sources(t, 2, 2, raster.Cell{X: 0, Y: 0}))
	assert.NotEmpty(t, buf.String())

	costdist.SetLogger(nil)
	buf.Reset()
	_, _ = costdist.Accumulate(uniform(t, 2, 2, 1), sources(t, 2, 2, raster.Cell{X: 0, Y: 0}))
	assert.Empty(t, buf.String())
	assert.NotNil(t, costdist.Logger())
}
