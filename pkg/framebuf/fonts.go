package framebuf

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// FontSize selects one of the three faces every screen layout is built on.
type FontSize int

const (
	FontSmall  FontSize = iota // 16 pt, detail rows and footers
	FontMedium                 // 24 pt, labels and secondary lines
	FontLarge                  // 48 pt, clock and flight number
)

var fontPoints = map[FontSize]float64{
	FontSmall:  16,
	FontMedium: 24,
	FontLarge:  48,
}

// fontPaths are tried in order on the Pi before falling back to the
// embedded Go font.
var fontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/freefont/FreeSans.ttf",
}

type fontSet struct {
	faces map[FontSize]font.Face
}

func loadFonts() (*fontSet, error) {
	data := gobold.TTF
	for _, path := range fontPaths {
		if b, err := os.ReadFile(path); err == nil {
			data = b
			break
		}
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	faces := make(map[FontSize]font.Face, len(fontPoints))
	for size, points := range fontPoints {
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    points,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, fmt.Errorf("create %v face: %w", size, err)
		}
		faces[size] = face
	}

	return &fontSet{faces: faces}, nil
}

func (f *fontSet) face(size FontSize) font.Face {
	if face, ok := f.faces[size]; ok {
		return face
	}
	return f.faces[FontMedium]
}
