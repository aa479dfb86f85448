package framebuf

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// AircraftIcon draws a stylised aircraft silhouette centered at (cx, cy),
// rotated so its nose points along the given heading in degrees (0 is up,
// 90 is right). The silhouette is drawn pointing up on its own small
// canvas and rotated as a whole, so the shape stays intact at any angle.
func (s *Surface) AircraftIcon(cx, cy, headingDeg, size int, c color.RGBA) {
	if size < 12 {
		size = 12
	}

	icon := image.NewRGBA(image.Rect(0, 0, size, size))
	mid := size / 2

	// Fuselage, wings, tail. Offsets follow the upright silhouette.
	fillTriangle(icon,
		image.Pt(mid, 2), image.Pt(mid-3, size-5), image.Pt(mid+3, size-5), c)
	fillTriangle(icon,
		image.Pt(mid, mid-3), image.Pt(2, mid+5), image.Pt(size-2, mid+5), c)
	fillTriangle(icon,
		image.Pt(mid, size-8), image.Pt(mid-6, size-3), image.Pt(mid+6, size-3), c)

	rotated := rotateSquare(icon, float64(headingDeg))
	dst := image.Rect(cx-mid, cy-mid, cx-mid+size, cy-mid+size)
	clipped := dst.Intersect(s.img.Bounds())
	if clipped.Empty() {
		return
	}
	draw.Draw(s.img, clipped, rotated, clipped.Min.Sub(dst.Min), draw.Over)
}

// rotateSquare rotates a square RGBA image clockwise about its center.
func rotateSquare(src *image.RGBA, degrees float64) *image.RGBA {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)

	b := src.Bounds()
	cx := float64(b.Dx()) / 2
	cy := float64(b.Dy()) / 2

	// Affine transform mapping source coordinates into the rotated
	// destination. In screen coordinates (y down) this matrix turns the
	// image clockwise by the given angle.
	m := f64.Aff3{
		cos, -sin, cx - cos*cx + sin*cy,
		sin, cos, cy - sin*cx - cos*cy,
	}

	dst := image.NewRGBA(b)
	xdraw.BiLinear.Transform(dst, m, src, b, xdraw.Src, nil)
	return dst
}

// fillTriangle rasterises a filled triangle using edge functions.
func fillTriangle(img *image.RGBA, p0, p1, p2 image.Point, c color.RGBA) {
	minX := min3(p0.X, p1.X, p2.X)
	maxX := max3(p0.X, p1.X, p2.X)
	minY := min3(p0.Y, p1.Y, p2.Y)
	maxY := max3(p0.Y, p1.Y, p2.Y)

	b := img.Bounds()
	if minX < b.Min.X {
		minX = b.Min.X
	}
	if minY < b.Min.Y {
		minY = b.Min.Y
	}
	if maxX >= b.Max.X {
		maxX = b.Max.X - 1
	}
	if maxY >= b.Max.Y {
		maxY = b.Max.Y - 1
	}

	edge := func(ax, ay, bx, by, px, py int) int {
		return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edge(p0.X, p0.Y, p1.X, p1.Y, x, y)
			w1 := edge(p1.X, p1.Y, p2.X, p2.Y, x, y)
			w2 := edge(p2.X, p2.Y, p0.X, p0.Y, x, y)
			if (w0 >= 0 && w1 >= 0 && w2 >= 0) || (w0 <= 0 && w1 <= 0 && w2 <= 0) {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func max3(a, b, c int) int {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}
