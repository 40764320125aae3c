package points

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Column layout of las2txt output produced with "-parse xyzirncpt -sep komma".
const (
	colX = iota
	colY
	colZ
	colIntensity
	colReturnNumber
	colNumberOfReturns
	colClassification
	colPointSourceID
	colGPSTime

	minColumns = colClassification + 1
)

// TextReader decodes comma separated las2txt point records.
// Lines that are empty or start with '#' are skipped.
type TextReader struct {
	scanner *bufio.Scanner
	closers []io.Closer
	line    int
}

// NewTextReader returns a TextReader on r.
func NewTextReader(r io.Reader) *TextReader {
	return &TextReader{scanner: bufio.NewScanner(r)}
}

// Next returns the next point or io.EOF.
func (t *TextReader) Next() (Point, error) {
	for t.scanner.Scan() {
		t.line++
		line := strings.TrimSpace(t.scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		p, err := parseRecord(line)
		if err != nil {
			return Point{}, fmt.Errorf("line %d: %w", t.line, err)
		}
		return p, nil
	}

	if err := t.scanner.Err(); err != nil {
		return Point{}, err
	}
	return Point{}, io.EOF
}

// Close releases the underlying file, if any.
func (t *TextReader) Close() error {
	var err error
	for i := len(t.closers) - 1; i >= 0; i-- {
		if cerr := t.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	t.closers = nil
	return err
}

func parseRecord(line string) (Point, error) {
	fields := strings.Split(line, ",")
	if len(fields) < minColumns {
		return Point{}, fmt.Errorf("expected at least %d columns, got %d", minColumns, len(fields))
	}

	var p Point
	var err error

	if p.X, err = parseFloat(fields[colX]); err != nil {
		return Point{}, fmt.Errorf("x: %w", err)
	}
	if p.Y, err = parseFloat(fields[colY]); err != nil {
		return Point{}, fmt.Errorf("y: %w", err)
	}
	if p.Z, err = parseFloat(fields[colZ]); err != nil {
		return Point{}, fmt.Errorf("z: %w", err)
	}

	i, err := strconv.ParseUint(strings.TrimSpace(fields[colIntensity]), 10, 16)
	if err != nil {
		return Point{}, fmt.Errorf("intensity: %w", err)
	}
	p.Intensity = uint16(i)

	c, err := strconv.ParseUint(strings.TrimSpace(fields[colClassification]), 10, 8)
	if err != nil {
		return Point{}, fmt.Errorf("classification: %w", err)
	}
	p.Classification = uint8(c)

	return p, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// File is an Input reading a las2txt file from disk. Files ending in .gz are gunzipped.
type File struct {
	Path string
}

// Files wraps every path into a File input.
func Files(paths []string) []Input {
	inputs := make([]Input, len(paths))
	for i, path := range paths {
		inputs[i] = File{Path: path}
	}
	return inputs
}

// Name returns the path of the file.
func (f File) Name() string {
	return f.Path
}

// Open opens the file for reading.
func (f File) Open() (SourceCloser, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(f.Path, ".gz") {
		t := NewTextReader(file)
		t.closers = []io.Closer{file}
		return t, nil
	}

	gz, err := gzip.NewReader(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}

	t := NewTextReader(gz)
	t.closers = []io.Closer{file, gz}
	return t, nil
}
