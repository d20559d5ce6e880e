package tile

import (
	"fmt"
	"math"
	"strconv"
)

// Degree is a unit for angles.
// It represent distinct values in the range [-180, 180].
type Degree float64

// String prints a degree value with the "°" suffix.
func (d Degree) String() string {
	return strconv.FormatFloat(float64(d), 'f', -1, 64) + "°"
}

// Radians converts a Degree value to radians [-pi, pi].
func (d Degree) Radians() float64 {
	return float64(d) / 180 * math.Pi
}

// LatLon defines a point by the spherical angles Lat and Lon given in degree (EPSG:4326).
// Changing the lateral coordinate from -90 to 90 is equivalent from a point moving from the South to the North pole.
// The longitudinal coordinate is 0 at the Greenwich meridian and increases by moving East.
type LatLon struct {
	Lat Degree // Latitude (lines connecting the poles) "[-90, 90]"
	Lon Degree // Longitude (lines around the equator and parallel to it): "[-180, 180]"
}

func (d LatLon) String() string {
	return fmt.Sprintf("%v,%v", d.Lat, d.Lon)
}

// MaxLatitude is the latitude limit applied before projecting.
// Points north of it (or south of -MaxLatitude) are moved onto it.
const MaxLatitude Degree = 85.05112878

// ClampLatitude limits lat to [-MaxLatitude, MaxLatitude].
func ClampLatitude(lat Degree) Degree {
	return max(min(lat, MaxLatitude), -MaxLatitude)
}

// XY converts d to tile coordinates for zoom level z [0, MaxZoom] and
// tiles with an edge length of tileSize pixels.
//
// The latitude is clamped to the representable range, the longitude is not:
// it must be within [-180, 180]. NaN is rejected for both.
// Tile indexes at the poles and the antimeridian are clamped to [0, 2^z-1],
// the pixel offset is the truncated world pixel coordinate modulo tileSize.
func (d LatLon) XY(z, tileSize int) (XY, error) {
	if !(d.Lon >= -180 && d.Lon <= 180) {
		return XY{}, fmt.Errorf("%w: longitude %s is out of range [-180, 180]", ErrInvalidArgument, d.Lon)
	}
	if math.IsNaN(float64(d.Lat)) {
		return XY{}, fmt.Errorf("%w: latitude is not a number", ErrInvalidArgument)
	}
	if z < 0 || z > MaxZoom {
		return XY{}, fmt.Errorf("%w: zoom %d is out of range [0, %d]", ErrInvalidArgument, z, MaxZoom)
	}
	if tileSize < 1 {
		return XY{}, fmt.Errorf("%w: tile size %d is not positive", ErrInvalidArgument, tileSize)
	}

	lat := ClampLatitude(d.Lat).Radians()
	n := two[z]
	x := (float64(d.Lon) + 180) / 360
	y := (1 - math.Log(math.Tan(lat)+1/math.Cos(lat))/math.Pi) / 2

	last := NumTiles(z) - 1
	return XY{
		X:  max(0, min(int(math.Floor(x*n)), last)),
		Y:  max(0, min(int(math.Floor(y*n)), last)),
		Z:  z,
		XP: pixelOffset(x*n*float64(tileSize), tileSize),
		YP: pixelOffset(y*n*float64(tileSize), tileSize),
	}, nil
}

// ToTile is a shortcut for LatLon{lat, lon}.XY(z, tileSize).
func ToTile(lat, lon float64, z, tileSize int) (XY, error) {
	return LatLon{Degree(lat), Degree(lon)}.XY(z, tileSize)
}

// pixelOffset truncates the world pixel coordinate v toward zero
// and returns it modulo tileSize in the range [0, tileSize).
func pixelOffset(v float64, tileSize int) int {
	p := int(v) % tileSize
	if p < 0 {
		p += tileSize
	}
	return p
}

// Earth Radius (mean radius defined by IUGG).
// This is not the radius at the equator.
const EarthRadius Meter = 6371008.8

type Meter float64

// String converts the length to a string with suffix m.
func (m Meter) String() string {
	return strconv.FormatFloat(float64(m), 'f', -1, 64) + "m"
}

// Distance calculates the great circle distance between points at d1 and d2 in meters.
// The great circle distance, is the minimal path length between these points on a sphere
// with the nominal earth radius, for a path which is contraint to the sphere's surface.
// The calculation is done using the Vincenty formula.
func (d1 LatLon) Distance(d2 LatLon) Meter {
	lat1, lon1 := d1.Lat.Radians(), d1.Lon.Radians()
	lat2, lon2 := d2.Lat.Radians(), d2.Lon.Radians()
	dLon := math.Abs(lon2 - lon1)

	// Vincenty formula.
	a := math.Cos(lat2) * math.Sin(dLon)
	b := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	return EarthRadius * Meter(math.Atan2(math.Sqrt(a*a+b*b), math.Sin(lat1)*math.Sin(lat2)+math.Cos(lat1)*math.Cos(lat2)*math.Cos(dLon)))
}

// XY defines the tile coordinates with a zoom index [0, MaxZoom]
// and the pixel position within that tile.
type XY struct {
	X, Y   int // Tile index [0, 2^Z).
	XP, YP int // Pixel offset to top left corner within the tile [0, tileSize).
	Z      int // Zoom index [0, MaxZoom].
}

func (xy XY) String() string {
	return fmt.Sprintf("%d/%d/%d.png:%d,%d", xy.Z, xy.X, xy.Y, xy.XP, xy.YP)
}

// Valid reports whether the zoom level is in range and X and Y address an existing tile.
func (xy XY) Valid() bool {
	n := NumTiles(xy.Z)
	return n > 0 && xy.X >= 0 && xy.X < n && xy.Y >= 0 && xy.Y < n
}

// Offset returns the tile dx columns right and dy rows below xy.
// The result is neither wrapped nor clamped and may not be Valid.
// The pixel offset is reset.
func (xy XY) Offset(dx, dy int) XY {
	return XY{X: xy.X + dx, Y: xy.Y + dy, Z: xy.Z}
}

// LatLon converts the pixel position of xy back to geographic coordinates.
func (xy XY) LatLon(tileSize int) LatLon {
	checkZoom(xy.Z)
	x := float64(xy.X) + float64(xy.XP)/float64(tileSize)
	y := float64(xy.Y) + float64(xy.YP)/float64(tileSize)
	return LatLon{
		Lat: latitude(y, xy.Z),
		Lon: longitude(x, xy.Z),
	}
}

// PixelSize calculates the edge length of a single pixel at xy in meters.
// It uses the mean earth Radius instead of the equator length for the calculation.
func (xy XY) PixelSize(tileSize int) Meter {
	//   2 * pi * R      |
	// --------------    | reduced by factor cos(lat)
	// tileSize * 2^z    |
	deg := xy.LatLon(tileSize)
	coslat := math.Cos(deg.Lat.Radians())
	return EarthRadius * Meter(2*math.Pi*coslat/(float64(tileSize)*two[xy.Z]))
}

// longitude returns the longitude of the fractional tile column x.
func longitude(x float64, z int) Degree {
	return Degree(x/two[z]*360 - 180)
}

// latitude returns the latitude of the fractional tile row y.
func latitude(y float64, z int) Degree {
	return Degree(180 / math.Pi * math.Atan(math.Sinh(math.Pi*(1-2*y/two[z]))))
}

// checkZoom panics, if the zoom value is out of range.
func checkZoom(z int) {
	if z < 0 || z > MaxZoom {
		panic(fmt.Sprintf("zoom value %d is out of range [0, %d]", z, MaxZoom))
	}
}

// two stores the numbers 2^z for the zoom levels 0..MaxZoom.
var two [MaxZoom + 1]float64

func init() {
	for i := 0; i < len(two); i++ {
		two[i] = float64(uint(1) << uint(i))
	}
}
