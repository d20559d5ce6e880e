package grid

import (
	"log/slog"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// A FontProvider returns a font face for the given size in points.
// It must always return a usable face.
type FontProvider interface {
	Face(size float64) font.Face
}

// DefaultFontPaths are the system fonts tried by FileFonts, in order.
var DefaultFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	`C:\Windows\Fonts\consola.ttf`,
	`C:\Windows\Fonts\arial.ttf`,
}

// BasicFont is the built-in fixed size bitmap font.
// It ignores the requested size.
type BasicFont struct{}

// Face returns basicfont.Face7x13.
func (BasicFont) Face(size float64) font.Face {
	return basicfont.Face7x13
}

// FileFonts loads the first TrueType font from Paths that exists and parses.
// If none does, it falls back to BasicFont.
// Faces are cached per size.
type FileFonts struct {
	Paths []string

	once  sync.Once
	font  *truetype.Font
	faces map[float64]font.Face
}

// NewFileFonts returns a FileFonts for the given paths or DefaultFontPaths, if paths is empty.
func NewFileFonts(paths []string) *FileFonts {
	if len(paths) == 0 {
		paths = DefaultFontPaths
	}
	return &FileFonts{Paths: paths}
}

// Face returns a face of the loaded font or the fallback font.
func (f *FileFonts) Face(size float64) font.Face {
	f.once.Do(f.load)
	if f.font == nil {
		return BasicFont{}.Face(size)
	}
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := truetype.NewFace(f.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	f.faces[size] = face
	return face
}

func (f *FileFonts) load() {
	f.faces = make(map[float64]font.Face)
	for _, path := range f.Paths {
		b, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		ttf, err := truetype.Parse(b)
		if err != nil {
			slog.Debug("cannot parse font", "path", path, "err", err)
			continue
		}
		slog.Debug("font loaded", "path", path)
		f.font = ttf
		return
	}
	slog.Debug("no system font found, using built-in font")
}
