package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"

	"github.com/gruppe-adler/voxel-utils/internal/dem"
	"github.com/gruppe-adler/voxel-utils/internal/terrainrgb"
)

var sizes = []uint{128, 256, 512, 1024}

// Image renders raster as Terrain-RGB image. Multi-band rasters are summed over
// their bands; cells without data in any band stay transparent.
func Image(raster *dem.EsriASCIIRaster) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(raster.Ncols), int(raster.Nrows)))

	for r := 0; r < int(raster.Nrows); r++ {
		for c := 0; c < int(raster.Ncols); c++ {
			sum, valid := 0.0, false
			for _, band := range raster.Data {
				if v := band[r][c]; !raster.IsNoData(v) {
					sum += v
					valid = true
				}
			}
			if !valid {
				img.SetRGBA(c, r, color.RGBA{})
				continue
			}
			img.SetRGBA(c, r, terrainrgb.HeightToRgb(sum))
		}
	}

	return img
}

// Build writes <name>.png at full resolution plus one downsized copy per preview
// size smaller than the raster into outDir and returns the written paths.
// Nearest neighbour sampling keeps the encoded heights intact.
func Build(raster *dem.EsriASCIIRaster, outDir, name string) ([]string, error) {
	img := Image(raster)
	height := img.Bounds().Dy()
	width := img.Bounds().Dx()

	path := filepath.Join(outDir, name+".png")
	if err := saveImage(path, img); err != nil {
		return nil, err
	}
	written := []string{path}

	for _, size := range sizes {
		if int(size) >= height {
			break
		}

		factor := float64(size) / float64(height)
		w := uint(float64(width) * factor)
		if w == 0 {
			w = 1
		}

		small := resize.Resize(w, size, img, resize.NearestNeighbor)
		path := filepath.Join(outDir, fmt.Sprintf("%s_%d.png", name, size))
		if err := saveImage(path, small); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	return written, nil
}

func saveImage(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := png.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("%s: %w", path, err)
	}

	return out.Close()
}
