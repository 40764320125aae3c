package validate

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gruppe-adler/voxel-utils/internal/utils"
)

// ErrMissingInput is returned when a terrain or canopy raster cannot be found.
var ErrMissingInput = errors.New("DTM and/or CHM do not exist")

// DemInputs are the rasters a voxel run is aligned to.
type DemInputs struct {
	DTM string
	CHM string
}

// DTMNames returns the accepted terrain model file names for a site prefix, in lookup order.
func DTMNames(prefix string) []string {
	return []string{prefix + "dtm.idw.asc.gz", prefix + "dtm.idw.asc"}
}

// CHMNames returns the accepted canopy model file names for a site prefix, in lookup order.
// A site falls back to the CHM shared by the whole directory.
func CHMNames(prefix string) []string {
	names := []string{prefix + "chm.asc.gz", prefix + "chm.asc"}
	if prefix != "" {
		names = append(names, "chm.asc.gz", "chm.asc")
	}
	return names
}

// DemDirectory locates the DTM and CHM for the site prefix in demDir.
func DemDirectory(demDir, prefix string) (DemInputs, error) {
	if !utils.IsDirectory(demDir) {
		return DemInputs{}, fmt.Errorf("%w: %s does not exist or is no directory", ErrMissingInput, demDir)
	}

	dtm, ok := utils.FirstFile(join(demDir, DTMNames(prefix))...)
	if !ok {
		return DemInputs{}, fmt.Errorf("%w: no %s in %s", ErrMissingInput, DTMNames(prefix)[0], demDir)
	}

	chm, ok := utils.FirstFile(join(demDir, CHMNames(prefix))...)
	if !ok {
		return DemInputs{}, fmt.Errorf("%w: no %s in %s", ErrMissingInput, CHMNames(prefix)[0], demDir)
	}

	return DemInputs{DTM: dtm, CHM: chm}, nil
}

// OutputDirectory validates that given directory exists
func OutputDirectory(outDir string) error {
	if !utils.IsDirectory(outDir) {
		return fmt.Errorf("output directory %s does not exist", outDir)
	}
	return nil
}

// PointFiles validates that every input point file exists
func PointFiles(paths []string) error {
	if len(paths) == 0 {
		return errors.New("no point files given")
	}
	for _, p := range paths {
		if !utils.IsFile(p) {
			return fmt.Errorf("%s is missing", p)
		}
	}
	return nil
}

func join(dir string, names []string) []string {
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths
}
