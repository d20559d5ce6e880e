// Package batch renders tile grids for a list of zoom levels and stores them as png files.
//
// A failure at one zoom level is reported and does not stop the others.
package batch

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ktye/tilegrid/grid"
	"github.com/ktye/tilegrid/tile"
)

// Job describes the grids to render.
type Job struct {
	Point    tile.LatLon
	Zooms    []int
	GridSize int
	TileSize int
	OutDir   Dir
}

// Result is the outcome for a single zoom level.
// Err is nil on success.
type Result struct {
	Zoom   int
	Path   string  // Written file.
	Center tile.XY // Tile and pixel offset of the point.
	Err    error
}

// Run renders and saves one grid per zoom level of j in order
// and prints a status line for each of them to w.
//
// The returned error is only set if the output directory cannot be created,
// nothing is rendered in that case.
// Failures of single zoom levels are reported in their Result.
func Run(j Job, r *grid.Renderer, w io.Writer) ([]Result, error) {
	if err := j.OutDir.Ensure(); err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(j.Zooms))
	for _, z := range j.Zooms {
		res := render(j, r, z)
		if res.Err != nil {
			fmt.Fprintf(w, "[ERROR] failed to render Z=%d: %v\n", z, res.Err)
		} else {
			c := res.Center
			fmt.Fprintf(w, "[OK] Z=%d: saved %s | tile=(%d,%d) px=(%d,%d)\n", z, res.Path, c.X, c.Y, c.XP, c.YP)
		}
		results = append(results, res)
	}
	return results, nil
}

func render(j Job, r *grid.Renderer, z int) Result {
	res := Result{Zoom: z}
	m, g, err := r.Render(j.Point, z, j.GridSize, j.TileSize)
	if err != nil {
		res.Err = err
		return res
	}
	res.Center = g.Center
	if res.Path, res.Err = j.OutDir.Save(z, m); res.Err == nil {
		slog.Debug("grid saved", "zoom", z, "tile", g.Center.String(), "resolution", g.Center.PixelSize(g.TileSize).String())
	}
	return res
}

// Summary counts the successful and failed results.
func Summary(results []Result) (ok, failed int) {
	for _, r := range results {
		if r.Err != nil {
			failed++
		} else {
			ok++
		}
	}
	return ok, failed
}
