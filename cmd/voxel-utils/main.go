package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gruppe-adler/voxel-utils/internal/aggregate"
	"github.com/gruppe-adler/voxel-utils/internal/preview"
	"github.com/gruppe-adler/voxel-utils/internal/voxelize"
)

type command struct {
	name        string
	description string
	run         func(*flag.FlagSet)
}

var subCommands []command

func init() {
	subCommands = []command{
		{"voxelize", "Bin LiDAR point files into height stratified voxel rasters.", voxelize.Run},
		{"aggregate", "Sum a count or intensity voxel raster into coarser cells.", aggregate.Run},
		{"preview", "Build Terrain-RGB preview images of a voxel raster.", preview.Run},
		{"help", "Print this message.", func(s *flag.FlagSet) { printUsage() }},
	}
}

func printUsage() {
	fmt.Printf("USAGE:\n    %s [SUBCOMMAND] [SUBCOMMAND FLAGS]\n\n", os.Args[0])
	fmt.Print("SUBCOMMANDS: \n")

	for i := 0; i < len(subCommands); i++ {
		name := subCommands[i].name

		fmt.Printf("%12s    %s\n", name, subCommands[i].description)
	}

	fmt.Printf("\nUse -h as SUBCOMMAND FLAG to print help for each subcommand.\n\n")
}

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		fmt.Printf("\nERROR: No subcommand was provided.\n\n")
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]

	for i := 0; i < len(subCommands); i++ {
		if subCommands[i].name == cmd {
			set := flag.NewFlagSet(cmd, flag.ExitOnError)
			subCommands[i].run(set)
			return
		}
	}

	fmt.Printf("\nERROR: Subcommand '%s' was not found.\n\n", cmd)
	printUsage()
	os.Exit(1)
}
