package terrainrgb

import (
	"image/color"
	"math"
)

/*
	Terrain-RGB stores a height as a 24 bit base-256 number:

	height = -10000 + ((R * 256 * 256 + G * 256 + B) * 0.1)

	Solved for x = R*256^2 + G*256 + B this gives x = 10 * height + 100000,
	so R, G and B are the base-256 digits of x.
*/

const (
	offset     = 10000.0
	resolution = 0.1
	maxX       = 256*256*256 - 1
)

// HeightToRgb encodes height as opaque Terrain-RGB color. Heights outside the
// representable range are clamped.
func HeightToRgb(height float64) color.RGBA {
	x := math.Round((height + offset) / resolution)
	if x < 0 || math.IsNaN(x) {
		x = 0
	}
	if x > maxX {
		x = maxX
	}
	v := uint32(x)

	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}
}

// RgbToHeight decodes a Terrain-RGB color.
func RgbToHeight(c color.RGBA) float64 {
	x := uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	return -offset + float64(x)*resolution
}
