package dem

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smallGrid = `ncols 3
nrows 2
xllcorner 100
yllcorner 200
cellsize 0.5
NODATA_value 9999
1 2 3
4 5 6
`

func TestParseEsriASCIIRaster(t *testing.T) {
	raster, err := ParseEsriASCIIRaster(strings.NewReader(smallGrid))
	require.NoError(t, err)

	c, r := raster.Dims()
	assert.Equal(t, uint(3), c)
	assert.Equal(t, uint(2), r)
	assert.Equal(t, uint(1), raster.Nbands)
	assert.Equal(t, 9999.0, raster.NoDataValue)
	assert.Equal(t, 6.0, raster.Z(2, 1))

	assert.Equal(t, GeoTransform{OriginX: 100, OriginY: 201, PixelWidth: 0.5, PixelHeight: 0.5}, raster.Transform())
	assert.Equal(t, 100.25, raster.X(0))
	assert.Equal(t, 200.75, raster.Y(0))
}

func TestParseEsriASCIIRaster_Center(t *testing.T) {
	grid := "ncols 1\nnrows 1\nxllcenter 0.5\nyllcenter 0.5\ncellsize 1\n7\n"

	raster, err := ParseEsriASCIIRaster(strings.NewReader(grid))
	require.NoError(t, err)

	assert.Equal(t, 0.0, raster.MinX())
	assert.Equal(t, 1.0, raster.MaxY())
	assert.Equal(t, float64(DefaultNoData), raster.NoDataValue)
}

func TestParseEsriASCIIRaster_MultiBand(t *testing.T) {
	grid := "ncols 2\nnrows 1\nnbands 3\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2\n3 4\n5 6\n"

	raster, err := ParseEsriASCIIRaster(strings.NewReader(grid))
	require.NoError(t, err)

	want := [][][]float64{{{1, 2}}, {{3, 4}}, {{5, 6}}}
	if diff := cmp.Diff(want, raster.Data); diff != "" {
		t.Errorf("bands mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEsriASCIIRaster_Errors(t *testing.T) {
	tests := []struct {
		name string
		grid string
	}{
		{"missing cellsize", "ncols 1\nnrows 1\nxllcorner 0\nyllcorner 0\n1\n"},
		{"zero cellsize", "ncols 1\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 0\n1\n"},
		{"short row", "ncols 3\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2\n"},
		{"missing rows", "ncols 1\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 1\n1\n"},
		{"missing band", "ncols 1\nnrows 1\nnbands 2\nxllcorner 0\nyllcorner 0\ncellsize 1\n1\n"},
		{"bad value", "ncols 1\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\nabc\n"},
		{"bad header", "ncols 1 2\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n1\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseEsriASCIIRaster(strings.NewReader(tc.grid))
			assert.Error(t, err)
		})
	}
}

func TestEncode(t *testing.T) {
	raster := New(2, 2, 2, 10, 20, 1)
	raster.Data[0][0][0] = 3
	raster.Data[1][1][1] = 1.25

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, raster))

	want := "NCOLS 2\nNROWS 2\nNBANDS 2\nXLLCORNER 10\nYLLCORNER 20\nCELLSIZE 1\nNODATA_VALUE -9999\n" +
		"3 0\n0 0\n0 0\n0 1.25\n"
	assert.Equal(t, want, buf.String())
}

func TestEncode_RejectsRaggedData(t *testing.T) {
	raster := New(2, 2, 1, 0, 0, 1)
	raster.Data[0][1] = []float64{1}

	assert.Error(t, Encode(&bytes.Buffer{}, raster))
}

func TestWriteRead(t *testing.T) {
	for _, name := range []string{"grid.asc", "grid.asc.gz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			raster := New(3, 2, 1, -5, 7, 2)
			raster.Data[0][0] = []float64{1, 2, 3}
			raster.Data[0][1] = []float64{4.5, 5, 6}

			store := FileStore{}
			require.NoError(t, store.Save(path, raster))

			got, err := store.Load(path)
			require.NoError(t, err)
			assert.Equal(t, raster.Transform(), got.Transform())
			if diff := cmp.Diff(raster.Data, got.Data); diff != "" {
				t.Errorf("data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromTransform(t *testing.T) {
	transform := GeoTransform{OriginX: 10, OriginY: 50, PixelWidth: 1, PixelHeight: 1}

	raster := FromTransform(transform, 4, 3, 2)

	assert.Equal(t, transform, raster.Transform())
	assert.Len(t, raster.Data, 2)
	assert.Len(t, raster.Data[1], 3)
	assert.Len(t, raster.Data[1][2], 4)
}
