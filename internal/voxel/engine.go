// Package voxel bins LiDAR returns into height stratified voxel grids aligned
// to a terrain model.
package voxel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/gruppe-adler/voxel-utils/internal/ground"
	"github.com/gruppe-adler/voxel-utils/internal/points"
)

// CellSize is the horizontal size of a voxel column. Voxel cells are unit cells
// whatever the resolution of the terrain model.
const CellSize = 1.0

// checkEvery is the number of points between two context checks.
const checkEvery = 1 << 16

// Outcome tells what happened to a single point.
type Outcome int

const (
	Binned      Outcome = iota // accumulated into at least one grid
	OutsideGrid                // horizontal cell not on the grid
	OutsideBand                // normalized height outside the band range
	NoGround                   // no terrain elevation under the point
)

// Stats counts the outcomes of a binning pass.
type Stats struct {
	Points      int64
	Binned      int64
	OutsideGrid int64
	OutsideBand int64
	NoGround    int64
	Files       int
}

func (s *Stats) record(o Outcome) {
	s.Points++
	switch o {
	case Binned:
		s.Binned++
	case OutsideGrid:
		s.OutsideGrid++
	case OutsideBand:
		s.OutsideBand++
	case NoGround:
		s.NoGround++
	}
}

// Add sums other into s.
func (s *Stats) Add(other Stats) {
	s.Points += other.Points
	s.Binned += other.Binned
	s.OutsideGrid += other.OutsideGrid
	s.OutsideBand += other.OutsideBand
	s.NoGround += other.NoGround
	s.Files += other.Files
}

// Engine classifies points into voxel cells and bands.
type Engine struct {
	ground   *ground.Grid
	bands    int
	products Products
}

// NewEngine returns an engine binning onto the cells of g with the given number of bands.
func NewEngine(g *ground.Grid, bands int, products Products) (*Engine, error) {
	if g == nil {
		return nil, errors.New("voxel engine needs a terrain grid")
	}
	if bands < 1 {
		return nil, fmt.Errorf("band count must be at least 1, got %d", bands)
	}
	if products.Empty() {
		return nil, errors.New("no voxel products requested")
	}
	return &Engine{ground: g, bands: bands, products: products}, nil
}

// Bands returns the number of vertical bands.
func (e *Engine) Bands() int {
	return e.bands
}

// Products returns the requested product set.
func (e *Engine) Products() Products {
	return e.products
}

// NewStack allocates an empty stack covering the terrain grid.
func (e *Engine) NewStack() *Stack {
	return NewStack(e.bands, e.ground.Rows, e.ground.Cols, e.products)
}

// Add bins a single point into s.
//
// Ground returns always land in band 0. Their normalized height only decides
// whether they may raise the canopy height. Every other return lands in the band
// ceil(z - ground) and is dropped entirely when that band does not exist.
func (e *Engine) Add(s *Stack, p points.Point) Outcome {
	col := ground.ColumnIndex(p.X, e.ground.OriginX, CellSize)
	row := ground.RowIndex(p.Y, e.ground.OriginY, CellSize)
	if col < 0 || col >= s.Cols || row < 0 || row >= s.Rows {
		return OutsideGrid
	}

	zd, ok := e.ground.ElevationAt(p.X, p.Y)
	if !ok {
		return NoGround
	}
	z2 := p.Z - zd

	// ceil(z2) in [0, bands) without converting out of range floats
	inBand := z2 > -1 && z2 <= float64(s.Bands-1)

	band := 0
	if !p.IsGround() {
		if !inBand {
			return OutsideBand
		}
		band = int(math.Ceil(z2))
	}

	if s.Count != nil {
		s.Count[band][row][col]++
	}
	if s.Intensity != nil {
		s.Intensity[band][row][col] += int64(p.Intensity)
	}
	if s.CHM != nil && inBand && z2 > s.CHM[row][col] {
		s.CHM[row][col] = z2
	}

	return Binned
}

// Accumulate drains src into s.
func (e *Engine) Accumulate(ctx context.Context, s *Stack, src points.Source) (Stats, error) {
	var stats Stats
	for {
		if stats.Points%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
		}

		p, err := src.Next()
		if err == io.EOF {
			return stats, nil
		}
		if err != nil {
			return stats, err
		}

		stats.record(e.Add(s, p))
	}
}

func (e *Engine) accumulateInput(ctx context.Context, s *Stack, input points.Input) (Stats, error) {
	src, err := input.Open()
	if err != nil {
		return Stats{}, fmt.Errorf("%s: %w", input.Name(), err)
	}
	defer src.Close()

	stats, err := e.Accumulate(ctx, s, src)
	if err != nil {
		return stats, fmt.Errorf("%s: %w", input.Name(), err)
	}
	stats.Files = 1
	return stats, nil
}

// Run bins all inputs. The inputs are spread over up to workers goroutines, each
// owning its own stack; the partial stacks are merged once every input is read.
// workers < 1 uses one worker per CPU.
func (e *Engine) Run(ctx context.Context, inputs []points.Input, workers int) (*Stack, Stats, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}
	if workers == 0 {
		return e.NewStack(), Stats{}, nil
	}

	partials := make([]*Stack, workers)
	stats := make([]Stats, workers)
	jobs := make(chan points.Input)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for _, input := range inputs {
			select {
			case jobs <- input:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for input := range jobs {
				if partials[w] == nil {
					partials[w] = e.NewStack()
				}
				st, err := e.accumulateInput(ctx, partials[w], input)
				stats[w].Add(st)
				if err != nil {
					return err
				}
			}
			return nil
		})
	}

	var total Stats
	if err := g.Wait(); err != nil {
		for _, st := range stats {
			total.Add(st)
		}
		return nil, total, err
	}

	var stack *Stack
	for w, partial := range partials {
		total.Add(stats[w])
		if partial == nil {
			continue
		}
		if stack == nil {
			stack = partial
			continue
		}
		if err := stack.Merge(partial); err != nil {
			return nil, total, err
		}
		partials[w] = nil
	}
	if stack == nil {
		stack = e.NewStack()
	}

	return stack, total, nil
}
