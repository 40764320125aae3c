// Package voxelize runs a complete voxel pass: it locates the terrain and canopy
// models, bins the point files, writes and clips the products and records the
// run in a voxels.json sidecar.
package voxelize

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/gruppe-adler/voxel-utils/internal/clip"
	"github.com/gruppe-adler/voxel-utils/internal/dem"
	"github.com/gruppe-adler/voxel-utils/internal/ground"
	"github.com/gruppe-adler/voxel-utils/internal/metajson"
	"github.com/gruppe-adler/voxel-utils/internal/points"
	"github.com/gruppe-adler/voxel-utils/internal/utils"
	"github.com/gruppe-adler/voxel-utils/internal/validate"
	"github.com/gruppe-adler/voxel-utils/internal/voxel"
)

// ErrMissingOutput is returned when a product is absent after the write phase.
var ErrMissingOutput = errors.New("error creating voxels")

// outputExts are the accepted extensions of an existing product, preferred first.
var outputExts = []string{".asc.gz", ".asc"}

// Options configures a run.
type Options struct {
	Inputs    []points.Input
	DemDir    string
	OutDir    string
	Site      *clip.Site
	Products  voxel.Products
	Overwrite bool
	Workers   int
	Store     dem.Store // defaults to dem.FileStore
}

// Result describes a finished (or skipped) run.
type Result struct {
	Skipped bool
	Outputs map[voxel.Product]string
	Sidecar string
	Bands   int
	Stats   voxel.Stats
}

// path returns the site specific path of an output file, e.g. "/out/plot7_voxels.json".
func (o Options) path(name string) string {
	return filepath.Join(o.OutDir, o.Site.Prefix()+name)
}

// OutputPath returns the path product is written to.
func (o Options) OutputPath(product voxel.Product) string {
	return o.path(fmt.Sprintf("voxels.%s%s", product, outputExts[0]))
}

// Done reports whether every requested product already exists under one of
// the accepted extensions.
func (o Options) Done() bool {
	for _, product := range o.Products.List() {
		candidates := make([]string, len(outputExts))
		for i, ext := range outputExts {
			candidates[i] = o.path(fmt.Sprintf("voxels.%s%s", product, ext))
		}
		if _, ok := utils.FirstFile(candidates...); !ok {
			return false
		}
	}
	return true
}

// Voxelize performs the run described by opts. When all products exist and
// Overwrite is not set the run is skipped and Result.Skipped is true.
func Voxelize(ctx context.Context, opts Options) (*Result, error) {
	var timer time.Time
	start := time.Now()

	if opts.Store == nil {
		opts.Store = dem.FileStore{}
	}
	if opts.Products.Empty() {
		return nil, errors.New("no voxel products requested")
	}

	prettyName := fmt.Sprintf("%s [%s]", opts.path("voxels"), opts.Products)

	if !opts.Overwrite && opts.Done() {
		log.Printf("ℹ️  Already created %s", prettyName)
		return &Result{Skipped: true, Outputs: opts.outputs()}, nil
	}

	// locate and load DTM and CHM
	inputs, err := validate.DemDirectory(opts.DemDir, opts.Site.Prefix())
	if err != nil {
		return nil, err
	}

	timer = time.Now()
	log.Printf("▶️  Loading %s and %s", filepath.Base(inputs.DTM), filepath.Base(inputs.CHM))
	dtm, err := opts.Store.Load(inputs.DTM)
	if err != nil {
		return nil, err
	}
	chm, err := opts.Store.Load(inputs.CHM)
	if err != nil {
		return nil, err
	}
	log.Println("✔️  Loaded DTM and CHM in", time.Since(timer).String())

	bands, err := voxel.BandCount(chm)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", inputs.CHM, err)
	}
	log.Printf("ℹ️  Max canopy height needs %d bands", bands)

	grid, err := ground.FromRaster(dtm)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", inputs.DTM, err)
	}

	engine, err := voxel.NewEngine(grid, bands, opts.Products)
	if err != nil {
		return nil, err
	}

	// bin points
	timer = time.Now()
	log.Printf("▶️  Creating %s from %d files", prettyName, len(opts.Inputs))
	stack, stats, err := engine.Run(ctx, opts.Inputs, opts.Workers)
	if err != nil {
		return nil, err
	}
	log.Printf("✔️  Binned %s of %s returns in %s", humanize.Comma(stats.Binned), humanize.Comma(stats.Points), time.Since(timer).String())
	if skipped := stats.OutsideGrid + stats.NoGround; skipped > 0 {
		log.Printf("ℹ️  %s returns outside the terrain grid", humanize.Comma(skipped))
	}
	if stats.OutsideBand > 0 {
		log.Printf("ℹ️  %s returns outside %d bands", humanize.Comma(stats.OutsideBand), bands)
	}

	// write products
	outputs := opts.outputs()
	for _, product := range opts.Products.List() {
		timer = time.Now()
		path := outputs[product]

		raster, err := stack.Raster(product, grid.GeoTransform)
		if err != nil {
			return nil, err
		}
		if err := opts.Store.Save(path, raster); err != nil {
			return nil, err
		}

		switch product {
		case voxel.Count:
			log.Printf("✔️  Wrote %s in %s, fullest pixel has %d returns", filepath.Base(path), time.Since(timer).String(), stack.FullestCell())
		default:
			log.Printf("✔️  Wrote %s in %s", filepath.Base(path), time.Since(timer).String())
		}
	}

	// align and clip to site, then make sure every product made it
	for _, product := range opts.Products.List() {
		path := outputs[product]
		if err := clip.File(path, opts.Site, opts.Store); err != nil {
			return nil, err
		}
		if !utils.IsFile(path) {
			return nil, fmt.Errorf("%w: %s", ErrMissingOutput, path)
		}
	}

	sidecar := opts.path("voxels.json")
	meta := opts.sidecar(inputs, grid, bands, stack, stats, outputs, start)
	if err := metajson.Write(sidecar, meta); err != nil {
		return nil, err
	}

	log.Printf("✔️  Completed %s in %s", prettyName, time.Since(start).String())

	return &Result{
		Outputs: outputs,
		Sidecar: sidecar,
		Bands:   bands,
		Stats:   stats,
	}, nil
}

func (o Options) outputs() map[voxel.Product]string {
	outputs := make(map[voxel.Product]string)
	for _, product := range o.Products.List() {
		outputs[product] = o.OutputPath(product)
	}
	return outputs
}

func (o Options) sidecar(inputs validate.DemInputs, grid *ground.Grid, bands int, stack *voxel.Stack,
	stats voxel.Stats, outputs map[voxel.Product]string, start time.Time) metajson.VoxelsJSON {

	meta := metajson.VoxelsJSON{
		RunID:    uuid.NewString(),
		Created:  start.UTC(),
		Duration: time.Since(start).String(),
		DTM:      inputs.DTM,
		CHM:      inputs.CHM,
		Bands:    bands,
		Extent: metajson.Extent{
			OriginX:  grid.OriginX,
			OriginY:  grid.OriginY,
			CellSize: voxel.CellSize,
			Cols:     grid.Cols,
			Rows:     grid.Rows,
		},
		Products: make(map[string]string),
		Points: metajson.Points{
			Total:       stats.Points,
			Binned:      stats.Binned,
			OutsideGrid: stats.OutsideGrid,
			OutsideBand: stats.OutsideBand,
			NoGround:    stats.NoGround,
		},
		MaxHeight: stack.MaxHeight(),
		Fullest:   stack.FullestCell(),
	}
	if o.Site != nil {
		meta.Site = o.Site.Name
	}
	for _, input := range o.Inputs {
		meta.Inputs = append(meta.Inputs, input.Name())
	}
	for product, path := range outputs {
		meta.Products[string(product)] = filepath.Base(path)
	}
	return meta
}
