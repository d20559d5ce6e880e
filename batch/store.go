package batch

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// Dir is the output directory for rendered grids.
type Dir string

// Ensure creates the directory and its parents.
// It does nothing if the directory exists.
func (d Dir) Ensure() error {
	if string(d) == "" {
		return errors.New("the output directory is unset")
	}
	if err := os.MkdirAll(string(d), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}

// Path returns the file name for zoom level z: Dir/grid_z{z}.png.
func (d Dir) Path(z int) string {
	return filepath.Join(string(d), fmt.Sprintf("grid_z%d.png", z))
}

// Save writes m as png to Path(z) and returns the file name.
// It overwrites any existing file.
func (d Dir) Save(z int, m image.Image) (string, error) {
	file := d.Path(z)
	f, err := os.Create(file)
	if err != nil {
		return "", fmt.Errorf("save grid: %w", err)
	}
	if err := png.Encode(f, m); err != nil {
		f.Close()
		return "", fmt.Errorf("save grid: encode %s: %w", file, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("save grid: %w", err)
	}
	return file, nil
}
