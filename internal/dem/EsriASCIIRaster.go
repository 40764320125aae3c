package dem

import "math"

// EsriASCIIRaster represents a ESRI ASCII Grid.
// Multi-band products carry an additional NBANDS header, the bands follow each
// other in the data section with Nrows lines each.
type EsriASCIIRaster struct {
	Ncols, Nrows, Nbands uint
	Xcenter, Ycenter     *float64
	Xcorner, Ycorner     *float64
	CellSize             float64
	NoDataValue          float64
	Data                 [][][]float64
}

// GeoTransform is the part of an affine geotransform the voxel tools consume.
// OriginX/OriginY is the north-west corner, pixel sizes are positive.
type GeoTransform struct {
	OriginX, OriginY        float64
	PixelWidth, PixelHeight float64
}

// DefaultNoData is written when a raster has no explicit NODATA_VALUE.
const DefaultNoData = -9999

// New allocates an empty raster with its lower left corner at (xll, yll).
func New(ncols, nrows, nbands uint, xll, yll, cellSize float64) *EsriASCIIRaster {
	raster := &EsriASCIIRaster{
		Ncols:       ncols,
		Nrows:       nrows,
		Nbands:      nbands,
		Xcorner:     &xll,
		Ycorner:     &yll,
		CellSize:    cellSize,
		NoDataValue: DefaultNoData,
		Data:        make([][][]float64, nbands),
	}

	for b := range raster.Data {
		raster.Data[b] = make([][]float64, nrows)
		for r := range raster.Data[b] {
			raster.Data[b][r] = make([]float64, ncols)
		}
	}

	return raster
}

// FromTransform allocates an empty raster covering the given geotransform.
func FromTransform(t GeoTransform, ncols, nrows, nbands uint) *EsriASCIIRaster {
	return New(ncols, nrows, nbands, t.OriginX, t.OriginY-float64(nrows)*t.CellSize(), t.CellSize())
}

// Dims returns the dimensions of the grid.
func (raster EsriASCIIRaster) Dims() (c, r uint) {
	return raster.Ncols, raster.Nrows
}

// Z returns the value of the first band at (c, r).
// It will panic if c or r are out of bounds for the grid.
func (raster EsriASCIIRaster) Z(c, r uint) float64 {
	return raster.Data[0][r][c]
}

// IsNoData reports whether v is the raster's no data marker.
func (raster EsriASCIIRaster) IsNoData(v float64) bool {
	return v == raster.NoDataValue || math.IsNaN(v)
}

// MinX returns the western edge of the grid.
func (raster EsriASCIIRaster) MinX() float64 {
	if raster.Xcorner != nil {
		return *raster.Xcorner
	}
	if raster.Xcenter != nil {
		return *raster.Xcenter - raster.CellSize/2
	}
	return 0
}

// MinY returns the southern edge of the grid.
func (raster EsriASCIIRaster) MinY() float64 {
	if raster.Ycorner != nil {
		return *raster.Ycorner
	}
	if raster.Ycenter != nil {
		return *raster.Ycenter - raster.CellSize/2
	}
	return 0
}

// MaxY returns the northern edge of the grid.
func (raster EsriASCIIRaster) MaxY() float64 {
	return raster.MinY() + float64(raster.Nrows)*raster.CellSize
}

// X returns the coordinate of the center of column c.
func (raster EsriASCIIRaster) X(c uint) float64 {
	return raster.MinX() + (float64(c)+0.5)*raster.CellSize
}

// Y returns the coordinate of the center of row r. Row 0 is the northern most row.
func (raster EsriASCIIRaster) Y(r uint) float64 {
	return raster.MaxY() - (float64(r)+0.5)*raster.CellSize
}

// Transform returns the north-up geotransform of the grid.
func (raster EsriASCIIRaster) Transform() GeoTransform {
	return GeoTransform{
		OriginX:     raster.MinX(),
		OriginY:     raster.MaxY(),
		PixelWidth:  raster.CellSize,
		PixelHeight: raster.CellSize,
	}
}

// CellSize returns the pixel width. ESRI grids only know square cells.
func (t GeoTransform) CellSize() float64 {
	return t.PixelWidth
}
