package terrainrgb

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeightToRgb(t *testing.T) {
	tests := []struct {
		height float64
		want   color.RGBA
	}{
		{0, color.RGBA{R: 1, G: 134, B: 160, A: 255}},
		{-10000, color.RGBA{A: 255}},
		{-20000, color.RGBA{A: 255}},
		{1e9, color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, HeightToRgb(tc.height), "height %v", tc.height)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, h := range []float64{-12.3, 0, 0.1, 17.5, 42.42, 8848.8} {
		got := RgbToHeight(HeightToRgb(h))
		assert.LessOrEqual(t, math.Abs(got-h), resolution/2+1e-9, "height %v decoded as %v", h, got)
	}
}
