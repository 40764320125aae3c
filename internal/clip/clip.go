// Package clip cuts rasters to a site boundary.
package clip

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/gruppe-adler/voxel-utils/internal/dem"
	"github.com/gruppe-adler/voxel-utils/internal/utils"
)

// ErrOutside is returned when the site boundary does not overlap the raster.
var ErrOutside = errors.New("site boundary does not overlap the raster")

// Site is a named study area.
type Site struct {
	Name     string
	Boundary orb.MultiPolygon
}

// Prefix returns the file name prefix of products belonging to the site.
// A nil site has no prefix.
func (s *Site) Prefix() string {
	if s == nil || s.Name == "" {
		return ""
	}
	return s.Name + "_"
}

// LoadSite reads every polygon of a GeoJSON file into a site named after the file.
func LoadSite(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	site := &Site{Name: utils.Basename(path)}
	for _, feature := range fc.Features {
		switch g := feature.Geometry.(type) {
		case orb.Polygon:
			site.Boundary = append(site.Boundary, g)
		case orb.MultiPolygon:
			site.Boundary = append(site.Boundary, g...)
		}
	}
	if len(site.Boundary) == 0 {
		return nil, fmt.Errorf("%s: no polygon found", path)
	}

	return site, nil
}

// Clip crops raster to the cells touched by the bounding box of boundary and sets
// every cell whose center lies outside boundary to no data. The cropped raster stays
// aligned to the cell grid of the source.
func Clip(raster *dem.EsriASCIIRaster, boundary orb.MultiPolygon) (*dem.EsriASCIIRaster, error) {
	if len(boundary) == 0 {
		return nil, errors.New("empty site boundary")
	}

	t := raster.Transform()
	bound := boundary.Bound()

	c0 := clamp(math.Floor((bound.Min[0]-t.OriginX)/t.PixelWidth), raster.Ncols)
	c1 := clamp(math.Ceil((bound.Max[0]-t.OriginX)/t.PixelWidth), raster.Ncols)
	r0 := clamp(math.Floor((t.OriginY-bound.Max[1])/t.PixelHeight), raster.Nrows)
	r1 := clamp(math.Ceil((t.OriginY-bound.Min[1])/t.PixelHeight), raster.Nrows)
	if c0 >= c1 || r0 >= r1 {
		return nil, ErrOutside
	}

	out := dem.FromTransform(dem.GeoTransform{
		OriginX:     t.OriginX + float64(c0)*t.PixelWidth,
		OriginY:     t.OriginY - float64(r0)*t.PixelHeight,
		PixelWidth:  t.PixelWidth,
		PixelHeight: t.PixelHeight,
	}, c1-c0, r1-r0, raster.Nbands)
	out.NoDataValue = raster.NoDataValue

	for r := r0; r < r1; r++ {
		for c := c0; c < c1; c++ {
			inside := planar.MultiPolygonContains(boundary, orb.Point{raster.X(c), raster.Y(r)})
			for b := range raster.Data {
				v := raster.NoDataValue
				if inside {
					v = raster.Data[b][r][c]
				}
				out.Data[b][r-r0][c-c0] = v
			}
		}
	}

	return out, nil
}

// File clips the raster at path to site, writes the result next to it and then
// replaces the original with it. A nil site leaves the file untouched.
func File(path string, site *Site, store dem.Store) error {
	if site == nil {
		return nil
	}

	raster, err := store.Load(path)
	if err != nil {
		return err
	}

	clipped, err := Clip(raster, site.Boundary)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	base, ext := utils.SplitExt(path)
	tmp := base + "_clip" + ext
	if err := store.Save(tmp, clipped); err != nil {
		return err
	}

	return utils.Replace(tmp, path)
}

func clamp(v float64, n uint) uint {
	if v < 0 {
		return 0
	}
	if v > float64(n) {
		return n
	}
	return uint(v)
}

