package tile

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
)

var cities = map[string]LatLon{
	"samara":                 {53.1959, 50.1008},
	"saint petersburg":       {59.9386, 30.3141},
	"los angeles":            {34.05, -118.25},
	"new york":               {40.7127, -74.0059},
	"berlin":                 {52.5167, 13.3833},
	"munich":                 {48.1333, 11.5667},
	"hamburg":                {53.55, 10},
	"london":                 {51.5072, -0.1275},
	"cairo":                  {30.0444, 31.2357},
	"sydney":                 {-33.865, 151.2094},
	"Darmstadt Stadtkirche":  {49.87139, 8.65631},
	"Griesheim Lutherkirche": {49.85987, 8.54996},
	"North Pole":             {90, 0},
	"South Pole":             {-90, 0},
}

func TestToTile(t *testing.T) {
	testCases := []struct {
		name     string
		lat, lon float64
		z, size  int
		want     XY
	}{
		{"samara z12", 53.1959, 50.1008, 12, 256, XY{X: 2618, Y: 1330, Z: 12, XP: 9, YP: 145}},
		{"samara z13", 53.1959, 50.1008, 13, 256, XY{X: 5236, Y: 2661, Z: 13, XP: 18, YP: 34}},
		{"samara z14", 53.1959, 50.1008, 14, 256, XY{X: 10472, Y: 5322, Z: 14, XP: 36, YP: 69}},
		{"samara z5", 53.1959, 50.1008, 5, 256, XY{X: 20, Y: 10, Z: 5, XP: 116, YP: 101}},
		{"samara z0", 53.1959, 50.1008, 0, 256, XY{X: 0, Y: 0, Z: 0, XP: 163, YP: 83}},
		{"saint petersburg", 59.9386, 30.3141, 12, 256, XY{X: 2392, Y: 1190, Z: 12, XP: 232, YP: 223}},
		{"origin", 0, 0, 1, 256, XY{X: 1, Y: 1, Z: 1}},
		{"north east corner", 85.1, 180, 3, 256, XY{X: 7, Y: 0, Z: 3}},
		{"south west corner", -90, -180, 3, 256, XY{X: 0, Y: 7, Z: 3}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ToTile(tc.lat, tc.lon, tc.z, tc.size)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("ToTile(%v, %v, %d, %d) = %v, want %v", tc.lat, tc.lon, tc.z, tc.size, got, tc.want)
			}
		})
	}
}

func TestToTileInvalid(t *testing.T) {
	testCases := []struct {
		name     string
		lat, lon float64
		z, size  int
	}{
		{"lon too small", 0, -180.0001, 3, 256},
		{"lon too large", 0, 181, 3, 256},
		{"negative zoom", 0, 0, -1, 256},
		{"zoom too large", 0, 0, MaxZoom + 1, 256},
		{"zoom 30", 53.1959, 50.1008, 30, 256},
		{"zero tile size", 0, 0, 3, 0},
		{"lat NaN", math.NaN(), 10, 5, 256},
		{"lon NaN", 10, math.NaN(), 5, 256},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ToTile(tc.lat, tc.lon, tc.z, tc.size); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestToTileRange(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for z := 0; z <= MaxZoom; z++ {
		for i := 0; i < 200; i++ {
			lat := 2*85.0511*r.Float64() - 85.0511
			lon := 360*r.Float64() - 180
			xy, err := ToTile(lat, lon, z, DefaultSize)
			if err != nil {
				t.Fatal(err)
			}
			if !xy.Valid() {
				t.Fatalf("%v,%v at z=%d: tile %v out of range", lat, lon, z, xy)
			}
			if xy.XP < 0 || xy.XP >= DefaultSize || xy.YP < 0 || xy.YP >= DefaultSize {
				t.Fatalf("%v,%v at z=%d: pixel offset out of range: %v", lat, lon, z, xy)
			}
		}
		// Edges of the world.
		for _, ll := range []LatLon{{90, -180}, {90, 180}, {-90, -180}, {-90, 180}} {
			if xy, err := ll.XY(z, DefaultSize); err != nil || !xy.Valid() {
				t.Errorf("%s at z=%d: %v %v", ll, z, xy, err)
			}
		}
	}
}

func TestClampLatitude(t *testing.T) {
	for _, v := range []Degree{-1000, -90, -85.06, -MaxLatitude, -12.5, 0, 53.1959, MaxLatitude, 85.06, 90, 1000} {
		c := ClampLatitude(v)
		if c < -MaxLatitude || c > MaxLatitude {
			t.Errorf("ClampLatitude(%s) = %s is out of range", v, c)
		}
		if cc := ClampLatitude(c); cc != c {
			t.Errorf("ClampLatitude is not idempotent for %s: %s != %s", v, cc, c)
		}
		if v >= -MaxLatitude && v <= MaxLatitude && c != v {
			t.Errorf("ClampLatitude(%s) changed an in-range value to %s", v, c)
		}
	}
}

func TestTileBounds(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for z := 0; z <= MaxZoom; z++ {
		n := NumTiles(z)
		for i := 0; i < 100; i++ {
			x, y := r.Intn(n), r.Intn(n)
			b := TileBounds(x, y, z)
			if !(b.LatMin < b.LatMax) || !(b.LonMin < b.LonMax) {
				t.Fatalf("%d/%d/%d: degenerated bounds %s", z, x, y, b)
			}

			// The center pixel projects back into the same tile.
			center := XY{X: x, Y: y, Z: z, XP: DefaultSize / 2, YP: DefaultSize / 2}
			ll := center.LatLon(DefaultSize)
			if !b.Contains(ll) {
				t.Fatalf("%d/%d/%d: center %s is outside of %s", z, x, y, ll, b)
			}
			xy, err := ll.XY(z, DefaultSize)
			if err != nil {
				t.Fatal(err)
			}
			if xy.X != x || xy.Y != y {
				t.Fatalf("%d/%d/%d: round trip through %s ends at %v", z, x, y, ll, xy)
			}
		}
	}
}

func TestTileBoundsWorld(t *testing.T) {
	b := TileBounds(0, 0, 0)
	if b.LonMin != -180 || b.LonMax != 180 {
		t.Errorf("longitude range of the world tile: %s", b)
	}
	if e := math.Abs(float64(b.LatMax) - 85.0511287798); e > 1e-9 {
		t.Errorf("north edge of the world tile: %s", b.LatMax)
	}
	if b.LatMin != -b.LatMax {
		t.Errorf("world tile is not symmetric: %s", b)
	}

	// Neighbours share their edges.
	n, s := TileBounds(3, 4, 5), TileBounds(3, 5, 5)
	if n.LatMin != s.LatMax {
		t.Errorf("north tile %s and south tile %s do not touch", n, s)
	}
	w, e := TileBounds(3, 4, 5), TileBounds(4, 4, 5)
	if w.LonMax != e.LonMin {
		t.Errorf("west tile %s and east tile %s do not touch", w, e)
	}
}

// orb's maptile package is an independent implementation of the same scheme.
func TestCompareMaptile(t *testing.T) {
	for name, ll := range cities {
		if ll.Lat > MaxLatitude || ll.Lat < -MaxLatitude {
			continue
		}
		for _, z := range []int{0, 1, 5, 9, 12, 16, 20} {
			xy, err := ll.XY(z, DefaultSize)
			if err != nil {
				t.Fatal(err)
			}
			mt := maptile.At(orb.Point{float64(ll.Lon), float64(ll.Lat)}, maptile.Zoom(z))
			if int(mt.X) != xy.X || int(mt.Y) != xy.Y {
				t.Errorf("%s z=%d: got %v, maptile has %d/%d", name, z, xy, mt.X, mt.Y)
			}

			b, mb := xy.Bounds(), mt.Bound()
			for _, d := range []float64{
				float64(b.LonMin) - mb.Min.Lon(), float64(b.LatMin) - mb.Min.Lat(),
				float64(b.LonMax) - mb.Max.Lon(), float64(b.LatMax) - mb.Max.Lat(),
			} {
				if math.Abs(d) > 1e-7 {
					t.Errorf("%s z=%d: bounds %s differ from maptile %v", name, z, b, mb)
					break
				}
			}
		}
	}
}

func TestXYOffset(t *testing.T) {
	c := XY{X: 0, Y: 1, Z: 1, XP: 10, YP: 20}
	if got := c.Offset(-1, 1); got != (XY{X: -1, Y: 2, Z: 1}) {
		t.Errorf("Offset(-1, 1) = %v", got)
	}
	if c.Offset(-1, 1).Valid() {
		t.Error("neighbour outside of the world is valid")
	}
	if !c.Offset(1, 0).Valid() {
		t.Error("neighbour inside of the world is invalid")
	}
}

func TestDistance(t *testing.T) {
	testCases := []struct {
		from, to string
		km       float64
	}{
		{"los angeles", "new york", 3936.4},
		{"new york", "los angeles", 3936.4},
		{"berlin", "munich", 504.1},
		{"hamburg", "berlin", 253.7},
		{"hamburg", "munich", 612.2},
		{"new york", "london", 5570.3},
		{"Darmstadt Stadtkirche", "Griesheim Lutherkirche", 7.73}, // End points for the base line of the "Grossherzoglich-Hessische Landvermessung 1808"
		{"North Pole", "South Pole", math.Pi * float64(EarthRadius) / 1000},
		{"cairo", "cairo", 0},
	}
	for _, tc := range testCases {
		from := cities[tc.from]
		to := cities[tc.to]
		distance := float64(from.Distance(to) / 1000)
		if e := math.Abs(distance - tc.km); e > 1 {
			t.Errorf("%s (%s) -> %s (%s): %.2f != %.2f", tc.from, from, tc.to, to, distance, tc.km)
		}
	}
}

func TestLatLon_XY(t *testing.T) {
	for z := 0; z <= MaxZoom; z++ {
		for i := 0; i < 100; i++ {
			deg := LatLon{
				2*MaxLatitude*Degree(rand.Float64()) - MaxLatitude,
				Degree(360*rand.Float64() - 180),
			}
			xy, err := deg.XY(z, DefaultSize)
			if err != nil {
				t.Fatal(err)
			}
			res := xy.LatLon(DefaultSize)
			if e := res.Distance(deg); e > 2*xy.PixelSize(DefaultSize) {
				t.Errorf("distance too big after back transform: %s -> %s -> %s: error=%s @pixel resolution (%s/px)", deg, xy, res, e, xy.PixelSize(DefaultSize))
			}
		}
	}
}

func TestPixelSize(t *testing.T) {
	l := 2 * math.Pi * EarthRadius / 256
	for z := 0; z <= MaxZoom; z++ {
		xy, err := LatLon{0, 0}.XY(z, 256)
		if err != nil {
			t.Fatal(err)
		}
		// Latitude 0 is a tile edge, or the tile center at z=0.
		if e := math.Abs(float64(l - xy.PixelSize(256))); e > 1e-6 {
			t.Errorf("wrong PixelSize for zoom level %d. Got: %s instead of %s", z, xy.PixelSize(256), l)
		}
		l /= 2
	}
}

func ExampleToTile() {
	xy, err := ToTile(53.1959, 50.1008, 12, 256)
	if err != nil {
		panic(err)
	}
	fmt.Println(xy)
	// Output: 12/2618/1330.png:9,145
}

func ExampleTileBounds() {
	b := TileBounds(0, 0, 1)
	fmt.Printf("lon %.1f..%.1f lat %.4f..%.4f\n", b.LonMin, b.LonMax, b.LatMin, b.LatMax)
	// Output: lon -180.0..0.0 lat 0.0000..85.0511
}
