package metajson

import (
	"encoding/json"
	"os"
	"time"
)

// Extent describes the grid the voxel products share.
type Extent struct {
	OriginX  float64 `json:"originX"`
	OriginY  float64 `json:"originY"`
	CellSize float64 `json:"cellSize"`
	Cols     int     `json:"cols"`
	Rows     int     `json:"rows"`
}

// Points summarizes what happened to the returns of a run.
type Points struct {
	Total       int64 `json:"total"`
	Binned      int64 `json:"binned"`
	OutsideGrid int64 `json:"outsideGrid"`
	OutsideBand int64 `json:"outsideBand"`
	NoGround    int64 `json:"noGround"`
}

// VoxelsJSON is the sidecar written next to the voxel products of a run.
type VoxelsJSON struct {
	RunID     string            `json:"runId"`
	Site      string            `json:"site,omitempty"`
	Created   time.Time         `json:"created"`
	Duration  string            `json:"duration"`
	DTM       string            `json:"dtm"`
	CHM       string            `json:"chm"`
	Inputs    []string          `json:"inputs"`
	Bands     int               `json:"bands"`
	Extent    Extent            `json:"extent"`
	Products  map[string]string `json:"products"`
	Points    Points            `json:"points"`
	MaxHeight float64           `json:"maxHeight,omitempty"`
	Fullest   int32             `json:"fullestCell,omitempty"`
}

// Read a voxels.json from given path
func Read(path string) (VoxelsJSON, error) {
	var val VoxelsJSON

	bytes, err := os.ReadFile(path)
	if err != nil {
		return val, err
	}

	err = json.Unmarshal(bytes, &val)
	return val, err
}

// Write val as indented JSON to path
func Write(path string, val VoxelsJSON) error {
	bytes, err := json.MarshalIndent(val, "", "    ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(bytes, '\n'), 0o644)
}
