package preview

import (
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"github.com/gruppe-adler/voxel-utils/internal/dem"
	"github.com/gruppe-adler/voxel-utils/internal/utils"
)

// Run is the program's entrypoint
func Run(flagSet *flag.FlagSet) {

	var timer time.Time
	start := time.Now()

	outputPtr := flagSet.String("out", "", "Path to output directory")
	inputPtr := flagSet.String("in", "", "Path to voxel product, e.g. voxels.chm.asc.gz")

	flagSet.Parse(os.Args[2:])

	// make sure both flags are present
	if *outputPtr == "" || *inputPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}

	// make sure given output directory is a valid directory
	if !utils.IsDirectory(*outputPtr) {
		log.Fatal(errors.New("output directory doesn't exist"))
	}

	timer = time.Now()
	log.Println("▶️  Loading", *inputPtr)
	raster, err := dem.Read(*inputPtr)
	if err != nil {
		log.Fatal(err)
	}
	log.Println("✔️  Loaded raster in", time.Since(timer).String())

	timer = time.Now()
	log.Println("▶️  Building preview images")
	written, err := Build(raster, *outputPtr, utils.Basename(*inputPtr))
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("✔️  Built %d preview images in %s", len(written), time.Since(timer).String())

	log.Printf("\n    🎉  Finished in %s\n", time.Since(start).String())
}
