// Package config holds the settings of the voxel tools, read from a TOML file
// and overridden by command line flags.
package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/natefinch/lumberjack"

	"github.com/gruppe-adler/voxel-utils/internal/voxel"
)

// Config is the content of a voxel-utils TOML file.
type Config struct {
	Voxelize VoxelizeConfig
	Logging  LogConfig
}

// VoxelizeConfig configures a binning run.
type VoxelizeConfig struct {
	DemDir    string   `toml:"dem_dir"`
	OutDir    string   `toml:"out_dir"`
	Site      string   `toml:"site"` // GeoJSON boundary, optional
	Products  []string `toml:"products"`
	Overwrite bool     `toml:"overwrite"`
	Workers   int      `toml:"workers"`
}

// LogConfig configures an optional rotating log file.
type LogConfig struct {
	Logfile string
	MaxSize int `toml:"max_log_size"` // megabytes
	MaxAge  int `toml:"max_log_age"`  // days
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Voxelize: VoxelizeConfig{
			DemDir:   ".",
			OutDir:   ".",
			Products: []string{string(voxel.Count), string(voxel.Intensity)},
			Workers:  runtime.NumCPU(),
		},
		Logging: LogConfig{MaxSize: 100, MaxAge: 30},
	}
}

// Load decodes the TOML file at path on top of the defaults. Relative
// directories in the file are resolved against the file's directory.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("could not decode TOML config %s: %w", path, err)
	}

	base := filepath.Dir(path)
	cfg.Voxelize.DemDir = absolute(base, cfg.Voxelize.DemDir)
	cfg.Voxelize.OutDir = absolute(base, cfg.Voxelize.OutDir)
	cfg.Voxelize.Site = absolute(base, cfg.Voxelize.Site)
	cfg.Logging.Logfile = absolute(base, cfg.Logging.Logfile)

	return cfg, nil
}

func absolute(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// Validate checks the run settings.
func (c *VoxelizeConfig) Validate() error {
	if c.DemDir == "" {
		return fmt.Errorf("dem_dir must be set")
	}
	if c.OutDir == "" {
		return fmt.Errorf("out_dir must be set")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if _, err := voxel.ParseProducts(c.Products); err != nil {
		return err
	}
	return nil
}

// SetLogger sends log output to a rotating log file as well as stderr.
// The returned closer flushes and closes the file.
func (c *LogConfig) SetLogger() io.Closer {
	if c == nil || c.Logfile == "" {
		return stderrOnly{}
	}

	l := &lumberjack.Logger{
		Filename: c.Logfile,
		MaxSize:  c.MaxSize,
		MaxAge:   c.MaxAge,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, l))
	log.SetFlags(log.LstdFlags)
	log.Printf("ℹ️  Writing log to %s", c.Logfile)

	return l
}

type stderrOnly struct{}

func (stderrOnly) Close() error { return nil }
