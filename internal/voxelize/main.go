package voxelize

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gruppe-adler/voxel-utils/internal/clip"
	"github.com/gruppe-adler/voxel-utils/internal/config"
	"github.com/gruppe-adler/voxel-utils/internal/points"
	"github.com/gruppe-adler/voxel-utils/internal/validate"
	"github.com/gruppe-adler/voxel-utils/internal/voxel"
)

// Run is the program's entrypoint
func Run(flagSet *flag.FlagSet) {

	var timer time.Time
	start := time.Now()

	configPtr := flagSet.String("config", "", "Path to TOML config file")
	demPtr := flagSet.String("dem", "", "Directory holding the DTM and CHM")
	outputPtr := flagSet.String("out", "", "Path to output directory")
	sitePtr := flagSet.String("site", "", "GeoJSON site boundary to clip the products to")
	productsPtr := flagSet.String("products", "", "Comma separated products: count, intensity, chm")
	overwritePtr := flagSet.Bool("overwrite", false, "Recreate products that already exist")
	workersPtr := flagSet.Int("workers", 0, "Number of point files binned in parallel")

	flagSet.Usage = func() {
		fmt.Fprintf(flagSet.Output(), "USAGE:\n    %s voxelize [FLAGS] POINTFILE...\n\n", os.Args[0])
		flagSet.PrintDefaults()
	}
	flagSet.Parse(os.Args[2:])

	cfg, err := config.Load(*configPtr)
	if err != nil {
		log.Fatal(err)
	}
	defer cfg.Logging.SetLogger().Close()

	// flags override the config file
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dem":
			cfg.Voxelize.DemDir = *demPtr
		case "out":
			cfg.Voxelize.OutDir = *outputPtr
		case "site":
			cfg.Voxelize.Site = *sitePtr
		case "products":
			cfg.Voxelize.Products = strings.Split(*productsPtr, ",")
		case "overwrite":
			cfg.Voxelize.Overwrite = *overwritePtr
		case "workers":
			cfg.Voxelize.Workers = *workersPtr
		}
	})

	if err := cfg.Voxelize.Validate(); err != nil {
		log.Fatal(err)
	}
	if err := validate.OutputDirectory(cfg.Voxelize.OutDir); err != nil {
		log.Fatal(err)
	}
	if err := validate.PointFiles(flagSet.Args()); err != nil {
		flagSet.Usage()
		log.Fatal(err)
	}

	products, err := voxel.ParseProducts(cfg.Voxelize.Products)
	if err != nil {
		log.Fatal(err)
	}

	var site *clip.Site
	if cfg.Voxelize.Site != "" {
		timer = time.Now()
		log.Println("▶️  Loading site boundary")
		site, err = clip.LoadSite(cfg.Voxelize.Site)
		if err != nil {
			log.Fatal(err)
		}
		log.Println("✔️  Loaded site", site.Name, "in", time.Since(timer).String())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := Voxelize(ctx, Options{
		Inputs:    points.Files(flagSet.Args()),
		DemDir:    cfg.Voxelize.DemDir,
		OutDir:    cfg.Voxelize.OutDir,
		Site:      site,
		Products:  products,
		Overwrite: cfg.Voxelize.Overwrite,
		Workers:   cfg.Voxelize.Workers,
	})
	if err != nil {
		log.Fatal(err)
	}
	if result.Skipped {
		return
	}

	log.Printf("\n    🎉  Finished in %s\n", time.Since(start).String())
}
