// Latlon2tile converts coordinates to tiles.
//
// It prints the tile with the pixel offset and the bounds of the tile:
//
//	12/2618/1330.png:9,145
//	[53.173119,50.097656 53.225768,50.185547]
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/ktye/tilegrid/tile"
)

func main() {
	var zoom, size int
	var lat, lon float64
	flag.Float64Var(&lat, "lat", 50.0, "latitude (degree)")
	flag.Float64Var(&lon, "lon", 0.0, "longitude (degree)")
	flag.IntVar(&zoom, "zoom", 11, "zoom level")
	flag.IntVar(&size, "tile-size", tile.DefaultSize, "tile size in pixels")
	flag.Parse()

	if xy, err := tile.ToTile(lat, lon, zoom, size); err != nil {
		log.Fatal(err)
	} else {
		b := xy.Bounds()
		fmt.Println(xy)
		fmt.Printf("[%f,%f %f,%f]\n", b.LatMin, b.LonMin, b.LatMax, b.LonMax)
	}
}
