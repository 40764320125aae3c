package voxel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruppe-adler/voxel-utils/internal/dem"
)

func ones(rows, cols int) [][]int64 {
	g := make([][]int64, rows)
	for r := range g {
		g[r] = make([]int64, cols)
		for c := range g[r] {
			g[r][c] = 1
		}
	}
	return g
}

func TestAggregate2D_Truncates(t *testing.T) {
	grid := ones(5, 5)
	grid[4][0] = 100 // trailing row
	grid[0][4] = 100 // trailing column

	got, err := Aggregate2D(grid, 2)
	require.NoError(t, err)

	want := [][]int64{{4, 4}, {4, 4}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("aggregate mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate2D_Windows(t *testing.T) {
	grid := [][]int32{
		{1, 2, 3, 4, 5, 6},
		{7, 8, 9, 10, 11, 12},
		{13, 14, 15, 16, 17, 18},
	}

	tests := []struct {
		window int
		want   [][]int32
	}{
		{1, grid},
		{2, [][]int32{{18, 26, 34}}},
		{3, [][]int32{{72, 99}}},
		{4, [][]int32{}},
	}

	for _, tc := range tests {
		got, err := Aggregate2D(grid, tc.window)
		require.NoError(t, err)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("window %d (-want +got):\n%s", tc.window, diff)
		}
	}
}

func TestAggregate_InvalidWindow(t *testing.T) {
	_, err := Aggregate2D(ones(2, 2), 0)
	assert.ErrorIs(t, err, ErrWindow)

	_, err = Aggregate3D([][][]int64{ones(2, 2)}, -1)
	assert.ErrorIs(t, err, ErrWindow)
}

func TestAggregate3D(t *testing.T) {
	grid := [][][]int64{ones(4, 5), ones(4, 5)}
	grid[1][3][3] = 10

	got, err := Aggregate3D(grid, 2)
	require.NoError(t, err)

	want := [][][]int64{{{4, 4}, {4, 4}}, {{4, 4}, {4, 13}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("aggregate mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateRaster(t *testing.T) {
	raster := dem.New(5, 5, 2, 100, 200, 1)
	for b := range raster.Data {
		for r := range raster.Data[b] {
			for c := range raster.Data[b][r] {
				raster.Data[b][r][c] = float64(b + 1)
			}
		}
	}
	raster.Data[0][0][0] = raster.NoDataValue

	out, err := AggregateRaster(raster, 2)
	require.NoError(t, err)

	assert.Equal(t, uint(2), out.Ncols)
	assert.Equal(t, uint(2), out.Nrows)
	assert.Equal(t, uint(2), out.Nbands)
	assert.Equal(t, 2.0, out.CellSize)
	assert.Equal(t, dem.GeoTransform{OriginX: 100, OriginY: 205, PixelWidth: 2, PixelHeight: 2}, out.Transform())
	assert.Equal(t, [][]float64{{3, 4}, {4, 4}}, out.Data[0])
	assert.Equal(t, [][]float64{{8, 8}, {8, 8}}, out.Data[1])

	_, err = AggregateRaster(raster, 6)
	assert.Error(t, err)
}
