// Package framebuf renders frames for a small SPI TFT panel. A Surface
// is an in-memory RGB canvas with the drawing primitives the screen
// layouts need; a Display pushes finished frames to the panel device in
// its native RGB565 byte order, to an HDMI mirror, or to a PNG preview
// when no panel hardware is present.
package framebuf

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Anchor positions text relative to the given point.
type Anchor int

const (
	// AnchorTopLeft places the point at the top-left of the text box.
	AnchorTopLeft Anchor = iota
	// AnchorTopRight places the point at the top-right of the text box.
	AnchorTopRight
	// AnchorBottomLeft places the point at the bottom-left of the text box.
	AnchorBottomLeft
	// AnchorBottomRight places the point at the bottom-right of the text box.
	AnchorBottomRight
)

// Surface is a fixed-size RGB canvas. It is not safe for concurrent use;
// the render loop owns it.
type Surface struct {
	width  int
	height int
	img    *image.RGBA
	fonts  *fontSet
}

// NewSurface allocates a canvas of the given panel dimensions and loads
// the font faces used by the screen layouts.
func NewSurface(width, height int) (*Surface, error) {
	fonts, err := loadFonts()
	if err != nil {
		return nil, err
	}
	return &Surface{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		fonts:  fonts,
	}, nil
}

// Size returns the canvas dimensions in pixels.
func (s *Surface) Size() (width, height int) {
	return s.width, s.height
}

// Image exposes the backing frame for encoding and tests.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Clear fills the whole canvas with a single color.
func (s *Surface) Clear(c color.RGBA) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// FillRect fills the axis-aligned rectangle at (x, y) with the given
// width and height. Portions outside the canvas are clipped.
func (s *Surface) FillRect(x, y, w, h int, c color.RGBA) {
	r := image.Rect(x, y, x+w, y+h).Intersect(s.img.Bounds())
	draw.Draw(s.img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// StrokeRect draws a one pixel outline of the rectangle.
func (s *Surface) StrokeRect(x, y, w, h int, c color.RGBA) {
	s.FillRect(x, y, w, 1, c)
	s.FillRect(x, y+h-1, w, 1, c)
	s.FillRect(x, y, 1, h, c)
	s.FillRect(x+w-1, y, 1, h, c)
}

// Line draws a one pixel line between two points (Bresenham).
func (s *Surface) Line(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		s.setPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// StrokeCircle draws a one pixel circle outline (midpoint algorithm).
func (s *Surface) StrokeCircle(cx, cy, radius int, c color.RGBA) {
	x, y := radius, 0
	err := 1 - radius
	for x >= y {
		for _, p := range [8][2]int{
			{x, y}, {y, x}, {-y, x}, {-x, y},
			{-x, -y}, {-y, -x}, {y, -x}, {x, -y},
		} {
			s.setPixel(cx+p[0], cy+p[1], c)
		}
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

// FillCircle draws a filled circle centered at (cx, cy).
func (s *Surface) FillCircle(cx, cy, radius int, c color.RGBA) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				s.setPixel(cx+dx, cy+dy, c)
			}
		}
	}
}

// Text draws a string at (x, y) using the requested face and anchor.
func (s *Surface) Text(text string, x, y int, size FontSize, c color.RGBA, anchor Anchor) {
	face := s.fonts.face(size)
	metrics := face.Metrics()

	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c),
		Face: face,
	}

	width := d.MeasureString(text).Ceil()

	dotX := x
	if anchor == AnchorTopRight || anchor == AnchorBottomRight {
		dotX = x - width
	}
	dotY := y + metrics.Ascent.Ceil()
	if anchor == AnchorBottomLeft || anchor == AnchorBottomRight {
		dotY = y - metrics.Descent.Ceil()
	}

	d.Dot = fixed.P(dotX, dotY)
	d.DrawString(text)
}

// CenteredText draws a string horizontally centered at the given y.
func (s *Surface) CenteredText(text string, y int, size FontSize, c color.RGBA) {
	width := s.TextWidth(text, size)
	s.Text(text, (s.width-width)/2, y, size, c, AnchorTopLeft)
}

// TextWidth returns the advance width of the string in pixels.
func (s *Surface) TextWidth(text string, size FontSize) int {
	return font.MeasureString(s.fonts.face(size), text).Ceil()
}

// TextHeight returns the line height of the face in pixels.
func (s *Surface) TextHeight(size FontSize) int {
	m := s.fonts.face(size).Metrics()
	return (m.Ascent + m.Descent).Ceil()
}

func (s *Surface) setPixel(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	s.img.SetRGBA(x, y, c)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
