package dem

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Write raster as ESRI ASCII grid to path. Paths ending in .gz are gzipped.
// Integral values are written without a fraction, so count rasters stay integer grids.
func Write(path string, raster *EsriASCIIRaster) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	var w io.Writer = f
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(f)
		w = gz
	}

	err = Encode(w, raster)

	if gz != nil {
		if cerr := gz.Close(); err == nil {
			err = cerr
		}
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}

// Encode writes the header and all bands of raster to w.
func Encode(w io.Writer, raster *EsriASCIIRaster) error {
	if raster.CellSize <= 0 {
		return fmt.Errorf("CELLSIZE must be greater than 0")
	}
	if uint(len(raster.Data)) != raster.Nbands {
		return fmt.Errorf("raster has %d bands, header says %d", len(raster.Data), raster.Nbands)
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "NCOLS %d\n", raster.Ncols)
	fmt.Fprintf(bw, "NROWS %d\n", raster.Nrows)
	if raster.Nbands > 1 {
		fmt.Fprintf(bw, "NBANDS %d\n", raster.Nbands)
	}
	fmt.Fprintf(bw, "XLLCORNER %s\n", formatValue(raster.MinX()))
	fmt.Fprintf(bw, "YLLCORNER %s\n", formatValue(raster.MinY()))
	fmt.Fprintf(bw, "CELLSIZE %s\n", formatValue(raster.CellSize))
	fmt.Fprintf(bw, "NODATA_VALUE %s\n", formatValue(raster.NoDataValue))

	buf := make([]byte, 0, 32)
	for b, band := range raster.Data {
		if uint(len(band)) != raster.Nrows {
			return fmt.Errorf("band %d has %d rows, header says %d", b, len(band), raster.Nrows)
		}
		for _, row := range band {
			if uint(len(row)) != raster.Ncols {
				return fmt.Errorf("band %d has a row of %d values, header says %d", b, len(row), raster.Ncols)
			}
			for c, v := range row {
				if c > 0 {
					bw.WriteByte(' ')
				}
				buf = strconv.AppendFloat(buf[:0], v, 'f', -1, 64)
				bw.Write(buf)
			}
			bw.WriteByte('\n')
		}
	}

	return bw.Flush()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
