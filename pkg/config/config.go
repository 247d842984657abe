// Package config loads the YAML description of a voxel map: its extent,
// how it is split into chunks, the sharp feature threshold of the contour
// builder and the optional wall extrusion.
package config

import (
	"os"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Size is the side length of the whole map in world units.
	Size float64 `yaml:"size"`
	// OriginX and OriginY place the lower left corner of the map. When
	// unset the map is centred on the world origin.
	OriginX *float64 `yaml:"origin_x,omitempty"`
	OriginY *float64 `yaml:"origin_y,omitempty"`
	// ChunkResolution is the number of chunks per axis.
	ChunkResolution int `yaml:"chunk_resolution"`
	// VoxelResolution is the number of voxels per axis in one chunk.
	VoxelResolution int `yaml:"voxel_resolution"`
	// MaxFeatureAngle is in degrees; 0 disables sharp features.
	MaxFeatureAngle float64 `yaml:"max_feature_angle"`
	Wall            Wall    `yaml:"wall"`
}

type Wall struct {
	Enabled bool    `yaml:"enabled"`
	Bottom  float64 `yaml:"bottom"`
	Top     float64 `yaml:"top"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Size:            2,
		ChunkResolution: 2,
		VoxelResolution: 8,
		MaxFeatureAngle: 135,
		Wall: Wall{
			Bottom: 0,
			Top:    0.25,
		},
	}
}

// Load reads a configuration file on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		cfg := Default()
		cfg.Normalize()
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Default(), errors.New("reading config failed").
			WithTag("path", path).
			Wrap(err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return cfg, errors.New("invalid config").
			WithTag("path", path).
			Wrap(err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults, normalizes and validates it.
func Parse(b []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, errors.New("decoding yaml failed").Wrap(err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Normalize fills derived defaults.
func (c *Config) Normalize() {
	if c == nil {
		return
	}
	if c.OriginX == nil {
		x := -c.Size / 2
		c.OriginX = &x
	}
	if c.OriginY == nil {
		y := -c.Size / 2
		c.OriginY = &y
	}
}

func (c Config) Validate() error {
	if c.Size <= 0 {
		return errors.New("size must be > 0").WithTag("size", c.Size)
	}
	if c.ChunkResolution < 1 {
		return errors.New("chunk_resolution must be >= 1").
			WithTag("chunk_resolution", c.ChunkResolution)
	}
	if c.VoxelResolution < 2 {
		return errors.New("voxel_resolution must be >= 2").
			WithTag("voxel_resolution", c.VoxelResolution)
	}
	if c.MaxFeatureAngle < 0 || c.MaxFeatureAngle > 180 {
		return errors.New("max_feature_angle must be in [0, 180]").
			WithTag("max_feature_angle", c.MaxFeatureAngle)
	}
	if c.Wall.Enabled && c.Wall.Top <= c.Wall.Bottom {
		return errors.New("wall top must be above wall bottom").
			WithTag("bottom", c.Wall.Bottom).
			WithTag("top", c.Wall.Top)
	}
	return nil
}

// Origin returns the lower left corner of the map.
func (c Config) Origin() (x, y float64) {
	if c.OriginX != nil {
		x = *c.OriginX
	} else {
		x = -c.Size / 2
	}
	if c.OriginY != nil {
		y = *c.OriginY
	} else {
		y = -c.Size / 2
	}
	return x, y
}

// ChunkSize returns the side length of one chunk.
func (c Config) ChunkSize() float64 {
	return c.Size / float64(c.ChunkResolution)
}

// VoxelSize returns the side length of one voxel.
func (c Config) VoxelSize() float64 {
	return c.ChunkSize() / float64(c.VoxelResolution)
}
