// Package points provides LiDAR return streams for the voxel engine.
package points

import (
	"io"
)

// Ground is the ASPRS classification code of bare-earth returns.
const Ground uint8 = 2

// Point is a single LiDAR return in real-world coordinates.
type Point struct {
	X, Y, Z        float64
	Classification uint8
	Intensity      uint16
}

// IsGround reports whether the return is classified as bare earth.
func (p Point) IsGround() bool {
	return p.Classification == Ground
}

// Source yields points one at a time. Next returns io.EOF once the stream is drained.
type Source interface {
	Next() (Point, error)
}

// SourceCloser is a Source backed by a resource that must be released.
type SourceCloser interface {
	Source
	io.Closer
}

// Input is a named, not yet opened point stream, usually one file.
type Input interface {
	Name() string
	Open() (SourceCloser, error)
}

// Slice is an in-memory Source.
type Slice struct {
	points []Point
	next   int
}

// NewSlice returns a Source over pts.
func NewSlice(pts []Point) *Slice {
	return &Slice{points: pts}
}

// Next returns the next point or io.EOF.
func (s *Slice) Next() (Point, error) {
	if s.next >= len(s.points) {
		return Point{}, io.EOF
	}
	p := s.points[s.next]
	s.next++
	return p, nil
}

// Close is a no-op.
func (s *Slice) Close() error {
	return nil
}

// Memory is an Input over points held in memory.
type Memory struct {
	Label  string
	Points []Point
}

// Name returns the label of the input.
func (m Memory) Name() string {
	return m.Label
}

// Open returns a fresh Source over the points.
func (m Memory) Open() (SourceCloser, error) {
	return NewSlice(m.Points), nil
}
