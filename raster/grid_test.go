package raster_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/costdist/raster"
)

//----------------------------------------------------------------------------//
// Construction
//----------------------------------------------------------------------------//

// TestNew_Errors verifies that constructors reject malformed shapes and buffers.
func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name string
		fn   func() error
		err  error
	}{
		{"ZeroWidth", func() error { _, err := raster.New[float64](0, 3); return err }, raster.ErrBadShape},
		{"NegativeHeight", func() error { _, err := raster.New[int](2, -1); return err }, raster.ErrBadShape},
		{"ShortBuffer", func() error {
			_, err := raster.FromSlice(2, 2, []float64{1, 2, 3}, nil)
			return err
		}, raster.ErrBufferLength},
		{"ShortMask", func() error {
			_, err := raster.FromSlice(2, 1, []float64{1, 2}, []bool{true})
			return err
		}, raster.ErrBufferLength},
		{"Empty2D", func() error { _, err := raster.From2D[int](nil); return err }, raster.ErrEmptyGrid},
		{"Jagged2D", func() error { _, err := raster.From2D([][]int{{1, 2}, {3}}); return err }, raster.ErrNonRectangular},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.fn()
			if !errors.Is(err, tc.err) {
				t.Errorf("error = %v; want %v", err, tc.err)
			}
		})
	}
}

// TestFromSlice_CopiesInput ensures the grid does not alias the caller's buffer.
func TestFromSlice_CopiesInput(t *testing.T) {
	data := []float64{1, 2, 3, 4}
	g, err := raster.FromSlice(2, 2, data, nil)
	require.NoError(t, err)

	data[0] = 99
	v, ok, err := g.Get(0, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)
}

//----------------------------------------------------------------------------//
// Access
//----------------------------------------------------------------------------//

// TestGetSet covers valid, invalid and out-of-range access on a 3×2 grid.
func TestGetSet(t *testing.T) {
	g, err := raster.New[float64](3, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 2, g.Height())
	assert.Equal(t, 6, g.Len())

	// Fresh grids are entirely nodata.
	_, ok, err := g.Get(1, 1)
	require.NoError(t, err)
	assert.False(t, ok, "new grid cell should be invalid")

	require.NoError(t, g.Set(2, 1, 7.5))
	v, ok, err := g.Get(2, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7.5, v)

	valid, err := g.IsValid(2, 1)
	require.NoError(t, err)
	assert.True(t, valid)

	require.NoError(t, g.Invalidate(2, 1))
	v, ok, _ = g.Get(2, 1)
	assert.False(t, ok)
	assert.Zero(t, v, "invalid cells never expose a stale value")

	for _, xy := range [][2]int{{-1, 0}, {3, 0}, {0, 2}, {0, -1}} {
		_, _, err = g.Get(xy[0], xy[1])
		assert.ErrorIs(t, err, raster.ErrOutOfRange, "Get(%d,%d)", xy[0], xy[1])
		assert.ErrorIs(t, g.Set(xy[0], xy[1], 1), raster.ErrOutOfRange)
		_, err = g.IsValid(xy[0], xy[1])
		assert.ErrorIs(t, err, raster.ErrOutOfRange)
		assert.ErrorIs(t, g.Invalidate(xy[0], xy[1]), raster.ErrOutOfRange)
	}
}

// TestIndexCoordinate checks the row-major round trip.
func TestIndexCoordinate(t *testing.T) {
	g, _ := raster.New[int](4, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			i := g.Index(x, y)
			assert.Equal(t, y*4+x, i)
			gx, gy := g.Coordinate(i)
			assert.Equal(t, [2]int{x, y}, [2]int{gx, gy})
		}
	}
}

// TestCloneIsIndependent verifies copy-on-write semantics of Clone.
func TestCloneIsIndependent(t *testing.T) {
	g, _ := raster.From2D([][]float64{{1, 2}, {3, 4}})
	c := g.Clone()
	require.NoError(t, c.Set(0, 0, 42))
	require.NoError(t, c.Invalidate(1, 1))

	v, ok, _ := g.Get(0, 0)
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)
	ok, _ = g.IsValid(1, 1)
	assert.True(t, ok)
}

// TestMap_PreservesValidity checks that Map skips invalid cells and honours fn's verdict.
func TestMap_PreservesValidity(t *testing.T) {
	g, _ := raster.FromSlice(3, 1, []float64{-1, 0, 4}, []bool{true, false, true})
	out := raster.Map(g, func(v float64) (float64, bool) { return v * 2, v > 0 })

	_, ok, _ := out.Get(0, 0)
	assert.False(t, ok, "fn rejected the negative cell")
	_, ok, _ = out.Get(1, 0)
	assert.False(t, ok, "invalid input stays invalid")
	v, ok, _ := out.Get(2, 0)
	assert.True(t, ok)
	assert.Equal(t, 8.0, v)
}

// TestCheckSameShape covers matching and mismatching shapes across element types.
func TestCheckSameShape(t *testing.T) {
	a, _ := raster.New[float64](3, 2)
	b, _ := raster.New[bool](3, 2)
	c, _ := raster.New[bool](2, 3)

	assert.NoError(t, raster.CheckSameShape(a, b))
	assert.True(t, a.SameShape(b))
	assert.ErrorIs(t, raster.CheckSameShape(a, c), raster.ErrDimensionMismatch)
	assert.False(t, a.SameShape(c))
}

// TestInvalidateAt clears a cell by flat index.
func TestInvalidateAt(t *testing.T) {
	g, err := raster.FromSlice(2, 1, []int{3, 4}, nil)
	require.NoError(t, err)

	g.InvalidateAt(1)
	v, ok := g.At(1)
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.Equal(t, 1, g.ValidCount())
}

// TestFillAndValidCount covers the bulk helpers.
func TestFillAndValidCount(t *testing.T) {
	g, _ := raster.New[int](2, 2)
	assert.Equal(t, 0, g.ValidCount())
	g.Fill(5)
	assert.Equal(t, 4, g.ValidCount())
	data, valid := g.Values()
	assert.Equal(t, []int{5, 5, 5, 5}, data)
	assert.Equal(t, []bool{true, true, true, true}, valid)
}
