// Package tile converts between geographic coordinates and tiles
// of the web Mercator projection (EPSG:3857).
//
// Zoom levels: 0-22
//
//	0: single tile of hole world
//	z: 2^z times 2^z tiles
//	16: should be good enough for not getting lost
//	19: max zoom level of tile.openstreetmap.org, some servers offer less.
//
// X coordinate:
//
//	from 0 (left edge 180 deg W) to 2^z - 1 (right edge is 180 E)
//
// Y coordinate:
//
//	from 0 (top edge is 85.0511 deg N) to 2^zoom - 1 (bottom edge is 85.0511 deg S)
//
// Reference:
// https://wiki.openstreetmap.org/wiki/Slippy_map_tilenames
package tile

import (
	"errors"
	"fmt"
)

// MaxZoom is the highest supported zoom level.
const MaxZoom = 22

// DefaultSize is the conventional edge length of a tile in pixels.
const DefaultSize = 256

// ErrInvalidArgument is returned for coordinates, zoom levels or sizes out of range.
var ErrInvalidArgument = errors.New("invalid argument")

// NumTiles returns the number of tiles per direction for the given zoom value.
// It returns 2^z for z values in the allowed range [0, MaxZoom] and 0 otherwise.
func NumTiles(z int) int {
	if z < 0 || z > MaxZoom {
		return 0
	}
	return int(1 << uint(z))
}

// Bounds is the geographic rectangle covered by a tile.
type Bounds struct {
	LonMin, LatMin Degree // South west corner.
	LonMax, LatMax Degree // North east corner.
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%v,%v %v,%v]", b.LatMin, b.LonMin, b.LatMax, b.LonMax)
}

// Contains reports whether ll is inside b, including the edges.
func (b Bounds) Contains(ll LatLon) bool {
	return ll.Lat >= b.LatMin && ll.Lat <= b.LatMax && ll.Lon >= b.LonMin && ll.Lon <= b.LonMax
}

// TileBounds returns the rectangle of tile x, y at zoom level z.
// Y grows southwards, so the top edge of the tile (row y) is LatMax.
// It panics if z is out of range; x and y are not checked.
func TileBounds(x, y, z int) Bounds {
	checkZoom(z)
	return Bounds{
		LonMin: longitude(float64(x), z),
		LatMin: latitude(float64(y+1), z),
		LonMax: longitude(float64(x+1), z),
		LatMax: latitude(float64(y), z),
	}
}

// Bounds returns the rectangle of the tile addressed by xy.
func (xy XY) Bounds() Bounds {
	return TileBounds(xy.X, xy.Y, xy.Z)
}
