package clip

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruppe-adler/voxel-utils/internal/dem"
)

// triangle x+y <= 4.5 over a 4x4 unit grid at the origin, no cell center on its edge
var triangle = orb.MultiPolygon{{{{0, 0}, {4.5, 0}, {0, 4.5}, {0, 0}}}}

func filled(ncols, nrows, nbands uint) *dem.EsriASCIIRaster {
	r := dem.New(ncols, nrows, nbands, 0, 0, 1)
	for b := range r.Data {
		for y := range r.Data[b] {
			for x := range r.Data[b][y] {
				r.Data[b][y][x] = float64(b*100 + y*10 + x)
			}
		}
	}
	return r
}

func TestClip_MasksOutsideCells(t *testing.T) {
	raster := filled(4, 4, 2)

	out, err := Clip(raster, triangle)
	require.NoError(t, err)

	nd := raster.NoDataValue
	assert.Equal(t, [][]float64{
		{0, nd, nd, nd},
		{10, 11, nd, nd},
		{20, 21, 22, nd},
		{30, 31, 32, 33},
	}, out.Data[0])
	assert.Equal(t, 133.0, out.Data[1][3][3])
	assert.Equal(t, raster.Transform(), out.Transform())
}

func TestClip_CropsToBoundary(t *testing.T) {
	raster := filled(6, 6, 1)
	square := orb.MultiPolygon{{{{1.2, 1.2}, {3, 1.2}, {3, 3}, {1.2, 3}, {1.2, 1.2}}}}

	out, err := Clip(raster, square)
	require.NoError(t, err)

	assert.Equal(t, uint(2), out.Ncols)
	assert.Equal(t, uint(2), out.Nrows)
	assert.Equal(t, dem.GeoTransform{OriginX: 1, OriginY: 3, PixelWidth: 1, PixelHeight: 1}, out.Transform())
	assert.Equal(t, [][]float64{{31, 32}, {41, 42}}, out.Data[0])
}

func TestClip_Outside(t *testing.T) {
	far := orb.MultiPolygon{{{{100, 100}, {101, 100}, {101, 101}, {100, 100}}}}

	_, err := Clip(filled(2, 2, 1), far)
	assert.ErrorIs(t, err, ErrOutside)

	_, err = Clip(filled(2, 2, 1), nil)
	assert.Error(t, err)
}

const boundaryJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {}, "geometry": {"type": "Point", "coordinates": [1, 1]}},
    {"type": "Feature", "properties": {"name": "plot"}, "geometry": {
      "type": "Polygon", "coordinates": [[[0, 0], [4, 0], [0, 4], [0, 0]]]
    }}
  ]
}`

func TestLoadSite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot7.geojson")
	require.NoError(t, os.WriteFile(path, []byte(boundaryJSON), 0o644))

	site, err := LoadSite(path)
	require.NoError(t, err)

	assert.Equal(t, "plot7", site.Name)
	assert.Equal(t, "plot7_", site.Prefix())
	assert.Len(t, site.Boundary, 1)

	var none *Site
	assert.Equal(t, "", none.Prefix())
}

func TestLoadSite_NoPolygon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.geojson")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"FeatureCollection","features":[]}`), 0o644))

	_, err := LoadSite(path)
	assert.Error(t, err)
}

func TestFile_ReplacesOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plot7_voxels.count.asc.gz")
	store := dem.FileStore{}
	require.NoError(t, store.Save(path, filled(4, 4, 1)))

	require.NoError(t, File(path, &Site{Name: "plot7", Boundary: triangle}, store))

	got, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, got.NoDataValue, got.Data[0][0][3])
	assert.Equal(t, 33.0, got.Data[0][3][3])

	_, err = os.Stat(filepath.Join(dir, "plot7_voxels.count_clip.asc.gz"))
	assert.True(t, os.IsNotExist(err))
}

func TestFile_NilSite(t *testing.T) {
	assert.NoError(t, File("does-not-matter.asc", nil, dem.FileStore{}))
}
