package voxel

import (
	"errors"
	"fmt"

	"github.com/gruppe-adler/voxel-utils/internal/dem"
)

// ErrWindow is returned for aggregation windows smaller than one cell.
var ErrWindow = errors.New("aggregation window must be at least 1")

// Number is any cell type the voxel grids are stored in.
type Number interface {
	~int32 | ~int64 | ~float64
}

// Aggregate2D sums disjoint window x window blocks of grid. The result has
// len(grid)/window rows and len(grid[0])/window columns; trailing cells that do
// not fill a whole block are dropped.
func Aggregate2D[T Number](grid [][]T, window int) ([][]T, error) {
	if window < 1 {
		return nil, ErrWindow
	}

	rows := len(grid) / window
	cols := 0
	if len(grid) > 0 {
		cols = len(grid[0]) / window
	}

	out := make([][]T, rows)
	for y := range out {
		out[y] = make([]T, cols)
		for x := range out[y] {
			var sum T
			for r := y * window; r < (y+1)*window; r++ {
				for c := x * window; c < (x+1)*window; c++ {
					sum += grid[r][c]
				}
			}
			out[y][x] = sum
		}
	}

	return out, nil
}

// Aggregate3D applies Aggregate2D to every band of grid.
func Aggregate3D[T Number](grid [][][]T, window int) ([][][]T, error) {
	if window < 1 {
		return nil, ErrWindow
	}

	out := make([][][]T, len(grid))
	for b, band := range grid {
		agg, err := Aggregate2D(band, window)
		if err != nil {
			return nil, err
		}
		out[b] = agg
	}

	return out, nil
}

// AggregateRaster coarsens a count or intensity raster by summing window x window
// blocks. The coarse raster keeps the north-west corner of the source and has a
// cell size window times larger.
func AggregateRaster(raster *dem.EsriASCIIRaster, window int) (*dem.EsriASCIIRaster, error) {
	if window < 1 {
		return nil, ErrWindow
	}
	if raster.Ncols < uint(window) || raster.Nrows < uint(window) {
		return nil, fmt.Errorf("a %dx%d raster holds no %dx%d block", raster.Ncols, raster.Nrows, window, window)
	}

	data := make([][][]float64, len(raster.Data))
	for b, band := range raster.Data {
		data[b] = maskNoData(band, raster)
	}

	agg, err := Aggregate3D(data, window)
	if err != nil {
		return nil, err
	}

	t := raster.Transform()
	t.PixelWidth *= float64(window)
	t.PixelHeight *= float64(window)

	out := dem.FromTransform(t, raster.Ncols/uint(window), raster.Nrows/uint(window), raster.Nbands)
	out.Data = agg
	return out, nil
}

// maskNoData returns a copy of band with no data cells set to zero.
func maskNoData(band [][]float64, raster *dem.EsriASCIIRaster) [][]float64 {
	out := make([][]float64, len(band))
	for r, row := range band {
		out[r] = make([]float64, len(row))
		for c, v := range row {
			if !raster.IsNoData(v) {
				out[r][c] = v
			}
		}
	}
	return out
}
