package dem

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseEsriASCIIRaster reads a (possibly multi-band) ESRI ASCII grid from reader.
func ParseEsriASCIIRaster(reader io.Reader) (*EsriASCIIRaster, error) {

	raster := &EsriASCIIRaster{Nbands: 1, NoDataValue: DefaultNoData}
	remainingHeaders := []string{"NCOLS", "NROWS", "NBANDS", "XLLCENTER", "XLLCORNER", "YLLCENTER", "YLLCORNER", "CELLSIZE", "NODATA_VALUE"}
	stillIsHeader := true
	band, row := uint(0), uint(0)

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		keyword := strings.ToUpper(fields[0])

		if stillIsHeader && contains(remainingHeaders, keyword) {
			remainingHeaders = remove(remainingHeaders, keyword)

			// there can either be corner or center not both
			if keyword == "XLLCENTER" || keyword == "YLLCENTER" {
				remainingHeaders = remove(remainingHeaders, "XLLCORNER")
				remainingHeaders = remove(remainingHeaders, "YLLCORNER")
			}
			if keyword == "XLLCORNER" || keyword == "YLLCORNER" {
				remainingHeaders = remove(remainingHeaders, "XLLCENTER")
				remainingHeaders = remove(remainingHeaders, "YLLCENTER")
			}

			if err := parseHeaderLine(fields, raster); err != nil {
				return nil, err
			}
			continue
		}

		if stillIsHeader {
			// NODATA_VALUE and NBANDS are optional
			remainingHeaders = remove(remainingHeaders, "NODATA_VALUE")
			remainingHeaders = remove(remainingHeaders, "NBANDS")

			if len(remainingHeaders) > 0 {
				return nil, fmt.Errorf("grid is missing mandatory headers: %s", strings.Join(remainingHeaders, ", "))
			}

			stillIsHeader = false
			raster.Data = make([][][]float64, raster.Nbands)
			for b := range raster.Data {
				raster.Data[b] = make([][]float64, raster.Nrows)
			}
		}

		values, err := parseDataLine(fields, raster.Ncols)
		if err != nil {
			return nil, fmt.Errorf("band %d row %d: %w", band, row, err)
		}

		raster.Data[band][row] = values
		row++
		if row == raster.Nrows {
			row = 0
			band++
		}
		if band == raster.Nbands {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if stillIsHeader || band < raster.Nbands {
		return nil, fmt.Errorf("grid data ended after %d of %d bands", band, raster.Nbands)
	}

	return raster, nil
}

func parseHeaderLine(fields []string, grid *EsriASCIIRaster) error {
	if len(fields) != 2 {
		return fmt.Errorf("header line must have exactly two fields")
	}

	switch strings.ToUpper(fields[0]) {
	case "NCOLS", "NROWS", "NBANDS":
		i, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return err
		}
		if i == 0 {
			return fmt.Errorf("%s must be greater than 0", fields[0])
		}
		switch strings.ToUpper(fields[0]) {
		case "NCOLS":
			grid.Ncols = uint(i)
		case "NROWS":
			grid.Nrows = uint(i)
		default:
			grid.Nbands = uint(i)
		}

	case "XLLCENTER", "XLLCORNER", "YLLCENTER", "YLLCORNER":
		f, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return err
		}
		switch strings.ToUpper(fields[0]) {
		case "XLLCENTER":
			grid.Xcenter = &f
		case "XLLCORNER":
			grid.Xcorner = &f
		case "YLLCENTER":
			grid.Ycenter = &f
		default:
			grid.Ycorner = &f
		}

	case "CELLSIZE":
		f, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return err
		}
		if f <= 0.0 {
			return fmt.Errorf("CELLSIZE must be greater than 0")
		}
		grid.CellSize = f

	case "NODATA_VALUE":
		f, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return err
		}
		grid.NoDataValue = f

	default:
		return fmt.Errorf("unknown header keyword: %s", fields[0])
	}

	return nil
}

func parseDataLine(fields []string, cols uint) ([]float64, error) {
	if uint(len(fields)) < cols {
		return nil, fmt.Errorf("data row has %d of %d values", len(fields), cols)
	}

	row := make([]float64, cols)
	for i := uint(0); i < cols; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		row[i] = f
	}

	return row, nil
}

// contains checks whether an array contains a string
func contains(array []string, element string) bool {
	for _, curElement := range array {
		if curElement == element {
			return true
		}
	}
	return false
}

// remove removes a string from an array
func remove(arr []string, element string) []string {
	var remaining []string

	for i := 0; i < len(arr); i++ {
		if element != arr[i] {
			remaining = append(remaining, arr[i])
		}
	}

	return remaining
}
