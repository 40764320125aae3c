package voxel

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Stack holds the accumulation grids of one binning pass. Grids of products that
// were not requested are nil. A Stack has a single writer; partial stacks of
// concurrent workers are combined with Merge.
type Stack struct {
	Bands, Rows, Cols int

	Count     [][][]int32 // [band][row][col] returns
	Intensity [][][]int64 // [band][row][col] summed intensity
	CHM       [][]float64 // [row][col] max normalized height
}

// NewStack allocates zeroed grids for the requested products.
func NewStack(bands, rows, cols int, products Products) *Stack {
	s := &Stack{Bands: bands, Rows: rows, Cols: cols}

	if products.Count {
		s.Count = make([][][]int32, bands)
		for b := range s.Count {
			s.Count[b] = make([][]int32, rows)
			for r := range s.Count[b] {
				s.Count[b][r] = make([]int32, cols)
			}
		}
	}
	if products.Intensity {
		s.Intensity = make([][][]int64, bands)
		for b := range s.Intensity {
			s.Intensity[b] = make([][]int64, rows)
			for r := range s.Intensity[b] {
				s.Intensity[b][r] = make([]int64, cols)
			}
		}
	}
	if products.CHM {
		s.CHM = make([][]float64, rows)
		for r := range s.CHM {
			s.CHM[r] = make([]float64, cols)
		}
	}

	return s
}

// Merge folds other into s: counts and intensities are summed, canopy heights maxed.
func (s *Stack) Merge(other *Stack) error {
	if other == nil {
		return nil
	}
	if s.Bands != other.Bands || s.Rows != other.Rows || s.Cols != other.Cols {
		return fmt.Errorf("cannot merge %dx%dx%d stack into %dx%dx%d stack",
			other.Bands, other.Rows, other.Cols, s.Bands, s.Rows, s.Cols)
	}
	if (s.Count == nil) != (other.Count == nil) ||
		(s.Intensity == nil) != (other.Intensity == nil) ||
		(s.CHM == nil) != (other.CHM == nil) {
		return fmt.Errorf("cannot merge stacks of different products")
	}

	for b := range other.Count {
		for r, row := range other.Count[b] {
			dst := s.Count[b][r]
			for c, v := range row {
				dst[c] += v
			}
		}
	}
	for b := range other.Intensity {
		for r, row := range other.Intensity[b] {
			dst := s.Intensity[b][r]
			for c, v := range row {
				dst[c] += v
			}
		}
	}
	for r, row := range other.CHM {
		dst := s.CHM[r]
		for c, v := range row {
			if v > dst[c] {
				dst[c] = v
			}
		}
	}

	return nil
}

// TotalCount returns the number of returns accumulated over all bands.
func (s *Stack) TotalCount() int64 {
	var total int64
	for _, band := range s.Count {
		for _, row := range band {
			for _, v := range row {
				total += int64(v)
			}
		}
	}
	return total
}

// FullestCell returns the highest per-cell return count of any band.
func (s *Stack) FullestCell() int32 {
	var fullest int32
	for _, band := range s.Count {
		for _, row := range band {
			for _, v := range row {
				if v > fullest {
					fullest = v
				}
			}
		}
	}
	return fullest
}

// MaxHeight returns the tallest normalized height in the canopy grid.
func (s *Stack) MaxHeight() float64 {
	var highest float64
	for _, row := range s.CHM {
		if len(row) == 0 {
			continue
		}
		if m := floats.Max(row); m > highest {
			highest = m
		}
	}
	return highest
}

// BandTotals returns the summed return count of every band.
func (s *Stack) BandTotals() []float64 {
	totals := make([]float64, len(s.Count))
	row := make([]float64, s.Cols)
	for b, band := range s.Count {
		for _, counts := range band {
			for c, v := range counts {
				row[c] = float64(v)
			}
			totals[b] += floats.Sum(row)
		}
	}
	return totals
}
