// Package ground answers "which cell" and "how high is the terrain" for
// real-world coordinates on a north-up digital terrain model.
package ground

import (
	"errors"
	"fmt"
	"math"

	"github.com/gruppe-adler/voxel-utils/internal/dem"
)

// Grid is a read-only terrain elevation raster. Row 0 is the northern most row.
type Grid struct {
	dem.GeoTransform
	Rows, Cols int
	Data       [][]float64
}

// New validates the transform and the shape of data and wraps them into a Grid.
func New(transform dem.GeoTransform, data [][]float64) (*Grid, error) {
	if transform.PixelWidth <= 0 || transform.PixelHeight <= 0 {
		return nil, fmt.Errorf("resolution must be greater than 0, got %gx%g", transform.PixelWidth, transform.PixelHeight)
	}
	if len(data) == 0 || len(data[0]) == 0 {
		return nil, errors.New("terrain grid is empty")
	}

	cols := len(data[0])
	for r, row := range data {
		if len(row) != cols {
			return nil, fmt.Errorf("terrain row %d has %d columns, expected %d", r, len(row), cols)
		}
	}

	return &Grid{
		GeoTransform: transform,
		Rows:         len(data),
		Cols:         cols,
		Data:         data,
	}, nil
}

// FromRaster builds a Grid from the first band of raster.
func FromRaster(raster *dem.EsriASCIIRaster) (*Grid, error) {
	if len(raster.Data) == 0 {
		return nil, errors.New("terrain raster has no bands")
	}
	return New(raster.Transform(), raster.Data[0])
}

// ColumnIndex returns the column containing x on a grid starting at originX.
func ColumnIndex(x, originX, resolution float64) int {
	return int(math.Floor((x - originX) / resolution))
}

// RowIndex returns the row containing y on a grid whose northern edge is originY.
// Rows grow southwards.
func RowIndex(y, originY, resolution float64) int {
	return int(math.Floor((originY - y) / resolution))
}

// Cell returns the column and row of (x, y) at the grid's own resolution.
// A coordinate lying exactly on the eastern or southern edge resolves to the
// last column or row. Any other index may still be out of range.
func (g *Grid) Cell(x, y float64) (col, row int) {
	col = ColumnIndex(x, g.OriginX, g.PixelWidth)
	if col == g.Cols {
		col = g.Cols - 1
	}
	row = RowIndex(y, g.OriginY, g.PixelHeight)
	if row == g.Rows {
		row = g.Rows - 1
	}
	return col, row
}

// Contains reports whether (col, row) addresses a cell of the grid.
func (g *Grid) Contains(col, row int) bool {
	return col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}

// ElevationAt returns the terrain elevation of the cell under (x, y).
// ok is false when the point is not covered by the grid.
func (g *Grid) ElevationAt(x, y float64) (z float64, ok bool) {
	col, row := g.Cell(x, y)
	if !g.Contains(col, row) {
		return 0, false
	}
	return g.Data[row][col], true
}

// Extent returns the west, south, east and north edges of the grid.
func (g *Grid) Extent() (minX, minY, maxX, maxY float64) {
	return g.OriginX,
		g.OriginY - float64(g.Rows)*g.PixelHeight,
		g.OriginX + float64(g.Cols)*g.PixelWidth,
		g.OriginY
}
