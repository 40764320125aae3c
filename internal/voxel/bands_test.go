package voxel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruppe-adler/voxel-utils/internal/dem"
)

func chmRaster(values ...float64) *dem.EsriASCIIRaster {
	r := dem.New(uint(len(values)), 1, 1, 0, 0, 1)
	copy(r.Data[0][0], values)
	return r
}

func TestBandCount(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   int
	}{
		{"single pixel", []float64{12.2}, 14},
		{"integral height", []float64{0, 5, 20}, 21},
		{"no data excluded", []float64{3.5, 9999, 4.2, 12000}, 6},
		{"flat ground", []float64{0, 0, 0}, 1},
		{"nan ignored", []float64{math.NaN(), 2}, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := BandCount(chmRaster(tc.values...))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBandCount_PercentileIgnoresOutlier(t *testing.T) {
	values := make([]float64, 200001)
	for i := range values {
		values[i] = 20
	}
	values[0] = 500

	got, err := BandCount(chmRaster(values...))
	require.NoError(t, err)
	assert.Equal(t, 21, got)
}

func TestBandCount_Errors(t *testing.T) {
	_, err := BandCount(chmRaster(9999, 10000))
	assert.ErrorIs(t, err, ErrNoCanopy)

	_, err = BandCount(chmRaster(-5, -3))
	assert.ErrorIs(t, err, ErrNoCanopy)

	_, err = BandCount(&dem.EsriASCIIRaster{})
	assert.ErrorIs(t, err, ErrNoCanopy)

	_, err = BandCount(chmRaster(5000))
	assert.Error(t, err)
}

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}

	assert.Equal(t, 1.0, percentile(sorted, 0))
	assert.Equal(t, 3.0, percentile(sorted, 50))
	assert.Equal(t, 4.6, math.Round(percentile(sorted, 90)*1e9)/1e9)
	assert.Equal(t, 5.0, percentile(sorted, 100))
}
