package aggregate

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gruppe-adler/voxel-utils/internal/dem"
	"github.com/gruppe-adler/voxel-utils/internal/utils"
	"github.com/gruppe-adler/voxel-utils/internal/voxel"
)

// Run is the program's entrypoint
func Run(flagSet *flag.FlagSet) {

	var timer time.Time
	start := time.Now()

	inputPtr := flagSet.String("in", "", "Path to count or intensity voxel product")
	outputPtr := flagSet.String("out", "", "Path of the coarse raster, defaults to <in>_<window>m")
	windowPtr := flagSet.Int("window", 5, "Number of unit cells summed along each axis")

	flagSet.Parse(os.Args[2:])

	if *inputPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}
	if *outputPtr == "" {
		*outputPtr = DefaultOutput(*inputPtr, *windowPtr)
	}

	timer = time.Now()
	log.Println("▶️  Loading", *inputPtr)
	raster, err := dem.Read(*inputPtr)
	if err != nil {
		log.Fatal(err)
	}
	log.Println("✔️  Loaded raster in", time.Since(timer).String())

	timer = time.Now()
	log.Printf("▶️  Summing %dx%d blocks of %d bands", *windowPtr, *windowPtr, raster.Nbands)
	coarse, err := voxel.AggregateRaster(raster, *windowPtr)
	if err != nil {
		log.Fatal(err)
	}
	if err := dem.Write(*outputPtr, coarse); err != nil {
		log.Fatal(err)
	}
	log.Println("✔️  Wrote", *outputPtr, "in", time.Since(timer).String())

	log.Printf("\n    🎉  Finished in %s\n", time.Since(start).String())
}

// DefaultOutput names the coarse raster after its source and window,
// "voxels.count.asc.gz" -> "voxels.count_5m.asc.gz".
func DefaultOutput(input string, window int) string {
	base, ext := utils.SplitExt(input)
	return fmt.Sprintf("%s_%dm%s", base, window, ext)
}
