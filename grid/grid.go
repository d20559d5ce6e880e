// Package grid renders a square grid of map tiles around a point.
//
// The image shows the tile boundaries, the tile address of each cell,
// a marker at the point and a caption with the coordinates.
// There is no map content.
package grid

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"github.com/golang/freetype/raster"
	"github.com/ktye/tilegrid/tile"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Grid is a Size x Size block of tiles with Center in the middle cell.
type Grid struct {
	Center   tile.XY // Tile and pixel offset of the point.
	Size     int     // Number of tiles per direction, odd.
	TileSize int     // Edge length of a tile in pixels.
}

// New returns the grid of size tiles around ll at zoom level z.
func New(ll tile.LatLon, z, size, tileSize int) (Grid, error) {
	if size < 1 || size%2 == 0 {
		return Grid{}, fmt.Errorf("%w: grid size %d must be odd and positive", tile.ErrInvalidArgument, size)
	}
	c, err := ll.XY(z, tileSize)
	if err != nil {
		return Grid{}, err
	}
	return Grid{Center: c, Size: size, TileSize: tileSize}, nil
}

// Half is the number of cells on each side of the center cell.
func (g Grid) Half() int { return g.Size / 2 }

// Rect is the pixel rectangle of the whole grid.
func (g Grid) Rect() image.Rectangle {
	return image.Rect(0, 0, g.Size*g.TileSize, g.Size*g.TileSize)
}

// Cell returns the tile shown in column gx and row gy.
// Cells beyond the edge of the world are not clamped or wrapped.
func (g Grid) Cell(gx, gy int) tile.XY {
	return g.Center.Offset(gx-g.Half(), gy-g.Half())
}

// Marker returns the pixel position of the point.
func (g Grid) Marker() image.Point {
	h := g.Half() * g.TileSize
	return image.Point{h + g.Center.XP, h + g.Center.YP}
}

// Style holds the cosmetic parameters of a rendering.
type Style struct {
	LabelSize    float64 // Font size of the cell labels.
	HeaderSize   float64 // Font size of the caption.
	MarkerRadius int
	Background   color.Color
	Foreground   color.Color // Lines and text.
	MarkerColor  color.Color
}

// DefaultStyle is used for zero fields of Renderer.Style.
var DefaultStyle = Style{
	LabelSize:    14,
	HeaderSize:   18,
	MarkerRadius: 4,
	Background:   color.White,
	Foreground:   color.Black,
	MarkerColor:  color.RGBA{220, 0, 0, 255},
}

func (s Style) withDefaults() Style {
	d := DefaultStyle
	if s.LabelSize > 0 {
		d.LabelSize = s.LabelSize
	}
	if s.HeaderSize > 0 {
		d.HeaderSize = s.HeaderSize
	}
	if s.MarkerRadius > 0 {
		d.MarkerRadius = s.MarkerRadius
	}
	if s.Background != nil {
		d.Background = s.Background
	}
	if s.Foreground != nil {
		d.Foreground = s.Foreground
	}
	if s.MarkerColor != nil {
		d.MarkerColor = s.MarkerColor
	}
	return d
}

// Renderer draws grids.
// A nil Fonts uses BasicFont.
type Renderer struct {
	Fonts FontProvider
	Style Style
}

// Render draws the grid of size x size tiles at zoom level z centered on the tile containing ll.
func (r *Renderer) Render(ll tile.LatLon, z, size, tileSize int) (*image.RGBA, Grid, error) {
	g, err := New(ll, z, size, tileSize)
	if err != nil {
		return nil, Grid{}, err
	}
	fonts := r.Fonts
	if fonts == nil {
		fonts = BasicFont{}
	}
	st := r.Style.withDefaults()

	m := image.NewRGBA(g.Rect())
	draw.Draw(m, m.Bounds(), &image.Uniform{st.Background}, image.Point{}, draw.Src)

	// Tile boundaries. The last line is outside of the image.
	fg := &image.Uniform{st.Foreground}
	w := m.Bounds().Dx()
	for i := 0; i <= g.Size; i++ {
		p := i * g.TileSize
		draw.Draw(m, image.Rect(p, 0, p+1, w), fg, image.Point{}, draw.Src)
		draw.Draw(m, image.Rect(0, p, w, p+1), fg, image.Point{}, draw.Src)
	}

	label := fonts.Face(st.LabelSize)
	for gy := 0; gy < g.Size; gy++ {
		for gx := 0; gx < g.Size; gx++ {
			xy := g.Cell(gx, gy)
			text := fmt.Sprintf("X=%d  Y=%d\nZ=%d", xy.X, xy.Y, xy.Z)
			drawText(m, label, fg, image.Point{gx*g.TileSize + 6, gy*g.TileSize + 6}, text)
		}
	}

	drawMarker(m, g.Marker(), st.MarkerRadius, st.MarkerColor, st.Foreground)

	c := g.Center
	header := fmt.Sprintf("Point: lat=%.6f, lon=%.6f | Z=%d\nCenter tile: X=%d, Y=%d | px=%d, py=%d (tile_size=%d)",
		float64(ll.Lat), float64(ll.Lon), z, c.X, c.Y, c.XP, c.YP, g.TileSize)
	drawText(m, fonts.Face(st.HeaderSize), fg, image.Point{10, m.Bounds().Dy() - 40}, header)
	return m, g, nil
}

// drawText writes the lines of s with the top left corner at p.
func drawText(dst draw.Image, face font.Face, src image.Image, p image.Point, s string) {
	metrics := face.Metrics()
	d := font.Drawer{
		Dst:  dst,
		Src:  src,
		Face: face,
	}
	y := fixed.I(p.Y) + metrics.Ascent
	for _, line := range strings.Split(s, "\n") {
		d.Dot = fixed.Point26_6{X: fixed.I(p.X), Y: y}
		d.DrawString(line)
		y += metrics.Height
	}
}

// drawMarker fills a disc of radius r around the center of pixel c
// with a one pixel outline.
func drawMarker(m *image.RGBA, c image.Point, r int, fill, outline color.Color) {
	painter := raster.NewRGBAPainter(m)
	rast := raster.NewRasterizer(m.Bounds().Dx(), m.Bounds().Dy())
	cx, cy := float64(c.X)+0.5, float64(c.Y)+0.5
	disc := func(radius float64, co color.Color) {
		rast.Clear()
		rast.AddPath(circle(cx, cy, radius))
		painter.SetColor(co)
		rast.Rasterize(painter)
	}
	disc(float64(r)+0.5, outline)
	disc(float64(r)-0.5, fill)
}

// circle approximates a circle by a closed polygon.
func circle(cx, cy, r float64) raster.Path {
	const n = 32
	pt := func(i int) fixed.Point26_6 {
		a := 2 * math.Pi * float64(i) / n
		return fixed.Point26_6{
			X: fixed.Int26_6((cx + r*math.Cos(a)) * 64),
			Y: fixed.Int26_6((cy + r*math.Sin(a)) * 64),
		}
	}
	var path raster.Path
	path.Start(pt(0))
	for i := 1; i <= n; i++ {
		path.Add1(pt(i))
	}
	return path
}
