// Tilegrid renders the tiles around a point as a labeled grid for several zoom levels.
//
// Example:
//
//	tilegrid --lat 53.1959 --lon 50.1008 --zooms 12 13 14 --grid 3 --out ./out
//	tilegrid --lat 59.9386 --lon 30.3141 --zooms 12 --grid 5 --tile-size 256 --out ./out_spb
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ktye/tilegrid/batch"
	"github.com/ktye/tilegrid/config"
	"github.com/ktye/tilegrid/grid"
	"github.com/ktye/tilegrid/logging"
	"github.com/ktye/tilegrid/tile"
)

func main() {
	run(os.Args[1:], os.Stdout, os.Stderr)
}

// zoomList collects zoom levels from comma separated values.
// It may be given more than once.
type zoomList []int

func (l *zoomList) String() string {
	s := make([]string, len(*l))
	for i, z := range *l {
		s[i] = strconv.Itoa(z)
	}
	return strings.Join(s, ",")
}

func (l *zoomList) Set(v string) error {
	for _, f := range strings.Split(v, ",") {
		z, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return fmt.Errorf("zoom level %q is not an integer", f)
		}
		*l = append(*l, z)
	}
	return nil
}

// run parses the arguments and renders the grids.
// Invalid arguments are reported on stdout with an [ERROR] prefix
// and nothing is rendered.
func run(args []string, stdout, stderr io.Writer) {
	var (
		lat, lon       float64
		zooms          zoomList
		gridSize, size int
		out            string
		cfgFile, level string
	)
	fs := flag.NewFlagSet("tilegrid", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Float64Var(&lat, "lat", 0, "latitude in degrees (WGS84), [-90, 90], projected within ±85.0511")
	fs.Float64Var(&lon, "lon", 0, "longitude in degrees (WGS84), [-180, 180]")
	fs.Var(&zooms, "zooms", "zoom levels [0..22], e.g.: --zooms 12 13 14 or --zooms 12,13,14")
	fs.IntVar(&gridSize, "grid", 3, "grid size in tiles, odd")
	fs.IntVar(&size, "tile-size", tile.DefaultSize, "tile size in pixels [8..2048]")
	fs.StringVar(&out, "out", "./out", "output directory")
	fs.StringVar(&cfgFile, "config", "", "optional YAML file with defaults")
	fs.StringVar(&level, "log-level", "warn", "diagnostic log level: debug, info, warn, error")

	set, err := parse(fs, args)
	if errors.Is(err, flag.ErrHelp) {
		return
	} else if err != nil {
		fmt.Fprintf(stdout, "[ERROR] invalid arguments: %v\n", err)
		return
	}
	logging.Setup(stderr, level, "text")

	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(stdout, "[ERROR] invalid arguments: %v\n", err)
		return
	}
	var missing []string
	for _, name := range []string{"lat", "lon", "zooms"} {
		if !set[name] {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		fmt.Fprintf(stdout, "[ERROR] invalid arguments: missing %s\n", strings.Join(missing, ", "))
		return
	}
	cfg.Lat, cfg.Lon, cfg.Zooms = lat, lon, zooms
	if set["grid"] {
		cfg.Grid = gridSize
	}
	if set["tile-size"] {
		cfg.TileSize = size
	}
	if set["out"] {
		cfg.Out = out
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stdout, "[ERROR] invalid arguments: %v\n", err)
		return
	}

	r := &grid.Renderer{
		Fonts: grid.NewFileFonts(cfg.Font.Paths),
		Style: grid.Style{
			LabelSize:    cfg.Font.LabelSize,
			HeaderSize:   cfg.Font.HeaderSize,
			MarkerRadius: cfg.Marker.Radius,
		},
	}
	job := batch.Job{
		Point:    tile.LatLon{Lat: tile.Degree(cfg.Lat), Lon: tile.Degree(cfg.Lon)},
		Zooms:    cfg.Zooms,
		GridSize: cfg.Grid,
		TileSize: cfg.TileSize,
		OutDir:   batch.Dir(cfg.Out),
	}
	results, err := batch.Run(job, r, stdout)
	if err != nil {
		fmt.Fprintf(stdout, "[ERROR] rendering failed: %v\n", err)
		return
	}
	ok, failed := batch.Summary(results)
	slog.Info("done", "ok", ok, "failed", failed, "out", cfg.Out)
}

// parse parses args into fs and returns the names of the flags that were given.
// Integers directly following the zoom flag are added to the zoom list, so that
// "--zooms 12 13 14 --grid 5" works as expected. Any other positional
// argument is an error.
func parse(fs *flag.FlagSet, args []string) (map[string]bool, error) {
	if err := fs.Parse(joinZooms(args)); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set, nil
}

// joinZooms rewrites "--zooms 12 13 14" to "--zooms=12,13,14".
// Arguments after "--" are left alone.
func joinZooms(args []string) []string {
	var r []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			return append(r, args[i:]...)
		}
		name := strings.TrimLeft(a, "-")
		if !strings.HasPrefix(a, "-") || (name != "zooms" && !strings.HasPrefix(name, "zooms=")) {
			r = append(r, a)
			continue
		}
		if name == "zooms" {
			if i+1 == len(args) {
				r = append(r, a)
				continue
			}
			i++
			a = "--zooms=" + args[i]
		}
		for i+1 < len(args) && isInt(args[i+1]) {
			i++
			a += "," + args[i]
		}
		r = append(r, a)
	}
	return r
}

func isInt(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
