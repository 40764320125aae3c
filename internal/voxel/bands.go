package voxel

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/gruppe-adler/voxel-utils/internal/dem"
)

const (
	// NoCanopy marks canopy height pixels without data. Everything at or above it is ignored.
	NoCanopy = 9999.0

	// CanopyPercentile is the canopy height percentile the band count is derived from.
	CanopyPercentile = 99.999

	// MaxBands caps the band count so a corrupt canopy model cannot exhaust memory.
	MaxBands = 2048
)

// ErrNoCanopy is returned when the canopy height model cannot size the voxel stack.
var ErrNoCanopy = errors.New("canopy height model has no usable pixels")

// BandCount derives the number of one unit high bands needed to hold the canopy:
// the CanopyPercentile of all valid heights, rounded up, plus one band of headroom.
func BandCount(chm *dem.EsriASCIIRaster) (int, error) {
	if len(chm.Data) == 0 {
		return 0, ErrNoCanopy
	}

	heights := make([]float64, 0, chm.Ncols*chm.Nrows)
	for _, row := range chm.Data[0] {
		for _, v := range row {
			if v < NoCanopy && !math.IsNaN(v) {
				heights = append(heights, v)
			}
		}
	}
	if len(heights) == 0 {
		return 0, ErrNoCanopy
	}

	sort.Float64s(heights)
	top := percentile(heights, CanopyPercentile)

	if top+1 > MaxBands {
		return 0, fmt.Errorf("canopy height %.2f needs more than %d bands", top, MaxBands)
	}
	bands := int(math.Ceil(top)) + 1
	if bands < 1 {
		return 0, fmt.Errorf("%w: %.2f percentile height is %.2f", ErrNoCanopy, CanopyPercentile, top)
	}

	return bands, nil
}

// percentile interpolates linearly between the two closest ranks of sorted.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}

	h := float64(len(sorted)-1) * p / 100
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}

	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
