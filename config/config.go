// Package config holds the parameters of a tilegrid run.
//
// Defaults can be changed by an optional YAML file,
// command line flags are applied on top of that by the caller.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all run parameters.
type Config struct {
	Lat      float64 `mapstructure:"-"` // Set from the command line only.
	Lon      float64 `mapstructure:"-"`
	Zooms    []int   `mapstructure:"-"`
	Grid     int     `mapstructure:"grid"`
	TileSize int     `mapstructure:"tile_size"`
	Out      string  `mapstructure:"out"`

	Font   FontConfig   `mapstructure:"font"`
	Marker MarkerConfig `mapstructure:"marker"`
}

type FontConfig struct {
	Paths      []string `mapstructure:"paths"`
	LabelSize  float64  `mapstructure:"label_size"`
	HeaderSize float64  `mapstructure:"header_size"`
}

type MarkerConfig struct {
	Radius int `mapstructure:"radius"`
}

// Load returns the defaults, overridden by the YAML file at path.
// An empty path only returns the defaults.
// Environment variables are not consulted.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("grid", 3)
	v.SetDefault("tile_size", 256)
	v.SetDefault("out", "./out")
	v.SetDefault("font.paths", []string{})
	v.SetDefault("font.label_size", 14)
	v.SetDefault("font.header_size", 18)
	v.SetDefault("marker.radius", 4)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the ranges of the run parameters.
func (c *Config) Validate() error {
	var errs []string

	if !(c.Lon >= -180 && c.Lon <= 180) {
		errs = append(errs, fmt.Sprintf("lon must be in [-180, 180], got %v", c.Lon))
	}
	if !(c.Lat >= -90 && c.Lat <= 90) {
		errs = append(errs, fmt.Sprintf("lat must be in [-90, 90], got %v", c.Lat))
	}
	if c.Grid < 1 || c.Grid%2 == 0 {
		errs = append(errs, fmt.Sprintf("grid must be a positive odd number (e.g. 3 or 5), got %d", c.Grid))
	}
	if c.TileSize < 8 || c.TileSize > 2048 {
		errs = append(errs, fmt.Sprintf("tile-size must be in [8, 2048], got %d", c.TileSize))
	}
	if len(c.Zooms) == 0 {
		errs = append(errs, "zooms is required")
	}
	for _, z := range c.Zooms {
		if z < 0 || z > 22 {
			errs = append(errs, fmt.Sprintf("zooms must be in [0, 22], got %d", z))
		}
	}
	if c.Out == "" {
		errs = append(errs, "out is required")
	}
	if c.Font.LabelSize <= 0 || c.Font.HeaderSize <= 0 {
		errs = append(errs, "font sizes must be positive")
	}
	if c.Marker.Radius < 1 {
		errs = append(errs, fmt.Sprintf("marker.radius must be positive, got %d", c.Marker.Radius))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
