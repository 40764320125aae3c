package voxel

import (
	"fmt"

	"github.com/gruppe-adler/voxel-utils/internal/dem"
)

// Raster converts the grid of product into a raster placed on t. Count and
// intensity become one band per height stratum, the canopy heights a single band.
func (s *Stack) Raster(product Product, t dem.GeoTransform) (*dem.EsriASCIIRaster, error) {
	t.PixelWidth, t.PixelHeight = CellSize, CellSize
	cols, rows := uint(s.Cols), uint(s.Rows)

	switch product {
	case Count:
		if s.Count == nil {
			break
		}
		out := dem.FromTransform(t, cols, rows, uint(s.Bands))
		for b, band := range s.Count {
			for r, row := range band {
				for c, v := range row {
					out.Data[b][r][c] = float64(v)
				}
			}
		}
		return out, nil

	case Intensity:
		if s.Intensity == nil {
			break
		}
		out := dem.FromTransform(t, cols, rows, uint(s.Bands))
		for b, band := range s.Intensity {
			for r, row := range band {
				for c, v := range row {
					out.Data[b][r][c] = float64(v)
				}
			}
		}
		return out, nil

	case CHM:
		if s.CHM == nil {
			break
		}
		out := dem.FromTransform(t, cols, rows, 1)
		for r, row := range s.CHM {
			copy(out.Data[0][r], row)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unknown voxel product %q", product)
	}

	return nil, fmt.Errorf("voxel product %q was not accumulated", product)
}
