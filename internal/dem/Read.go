package dem

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Read a grid from given path. Paths ending in .gz are gunzipped on the fly.
func Read(path string) (*EsriASCIIRaster, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		defer gz.Close()
		reader = gz
	}

	raster, err := ParseEsriASCIIRaster(reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return raster, nil
}

// Store loads and saves rasters. The voxel tools only ever talk to rasters through it.
type Store interface {
	Load(path string) (*EsriASCIIRaster, error)
	Save(path string, raster *EsriASCIIRaster) error
}

// FileStore keeps rasters as ESRI ASCII grids on the local filesystem.
type FileStore struct{}

// Load reads the grid at path.
func (FileStore) Load(path string) (*EsriASCIIRaster, error) {
	return Read(path)
}

// Save writes the grid to path.
func (FileStore) Save(path string, raster *EsriASCIIRaster) error {
	return Write(path, raster)
}
