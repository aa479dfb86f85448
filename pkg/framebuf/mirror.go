package framebuf

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// Mirror defaults when the sysfs geometry cannot be read. Stock Pi HDMI
// console runs 1920x1080 at 32 bpp.
const (
	defaultMirrorWidth  = 1920
	defaultMirrorHeight = 1080
	defaultMirrorBPP    = 32
)

// Mirror copies frames to a second framebuffer, typically the HDMI
// console on /dev/fb0. Frames are scaled preserving aspect ratio and
// centered on black. Mirroring is cosmetic: every error is reported to
// the caller but callers are expected to shrug them off.
type Mirror struct {
	path   string
	width  int
	height int
	bpp    int
	canvas *image.RGBA
	logger *slog.Logger
}

// NewMirror probes the mirror device geometry from sysfs and returns a
// mirror targeting devPath. Geometry that cannot be read falls back to
// 1920x1080 at 32 bpp. sysfsDir is the framebuffer class directory,
// normally /sys/class/graphics; tests substitute a temp dir.
func NewMirror(devPath, sysfsDir string, logger *slog.Logger) *Mirror {
	if logger == nil {
		logger = slog.Default()
	}

	width, height, bpp := mirrorGeometry(devPath, sysfsDir)
	logger.Debug("mirror geometry",
		"device", devPath, "width", width, "height", height, "bpp", bpp)

	return &Mirror{
		path:   devPath,
		width:  width,
		height: height,
		bpp:    bpp,
		canvas: image.NewRGBA(image.Rect(0, 0, width, height)),
		logger: logger,
	}
}

// mirrorGeometry reads virtual_size and bits_per_pixel from the sysfs
// node matching the device name.
func mirrorGeometry(devPath, sysfsDir string) (width, height, bpp int) {
	width, height, bpp = defaultMirrorWidth, defaultMirrorHeight, defaultMirrorBPP

	node := filepath.Join(sysfsDir, filepath.Base(devPath))
	if raw, err := os.ReadFile(filepath.Join(node, "virtual_size")); err == nil {
		parts := strings.Split(strings.TrimSpace(string(raw)), ",")
		if len(parts) == 2 {
			w, errW := strconv.Atoi(strings.TrimSpace(parts[0]))
			h, errH := strconv.Atoi(strings.TrimSpace(parts[1]))
			if errW == nil && errH == nil && w > 0 && h > 0 {
				width, height = w, h
			}
		}
	}
	if raw, err := os.ReadFile(filepath.Join(node, "bits_per_pixel")); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(string(raw))); err == nil && v > 0 {
			bpp = v
		}
	}
	return width, height, bpp
}

// fitRect computes the centered, aspect-preserving placement of a
// srcW x srcH frame on a dstW x dstH screen.
func fitRect(srcW, srcH, dstW, dstH int) image.Rectangle {
	scale := float64(dstW) / float64(srcW)
	if s := float64(dstH) / float64(srcH); s < scale {
		scale = s
	}
	w := int(float64(srcW) * scale)
	h := int(float64(srcH) * scale)
	x := (dstW - w) / 2
	y := (dstH - h) / 2
	return image.Rect(x, y, x+w, y+h)
}

// Write scales the frame onto the mirror canvas and pushes it to the
// device. A missing device node is not an error; the mirror just skips.
func (m *Mirror) Write(src *image.RGBA) error {
	if _, err := os.Stat(m.path); err != nil {
		return nil
	}

	draw.Draw(m.canvas, m.canvas.Bounds(),
		image.NewUniform(color.RGBA{A: 0xFF}), image.Point{}, draw.Src)
	dst := fitRect(src.Bounds().Dx(), src.Bounds().Dy(), m.width, m.height)
	xdraw.ApproxBiLinear.Scale(m.canvas, dst, src, src.Bounds(), xdraw.Src, nil)

	var data []byte
	switch m.bpp {
	case 32:
		data = encodeBGRA(m.canvas)
	case 16:
		data = NewEncoder().EncodeRGB565(m.canvas)
	default:
		data = encodeRGB24(m.canvas)
	}

	if err := writeDevice(m.path, data); err != nil {
		return fmt.Errorf("write mirror %s: %w", m.path, err)
	}
	return nil
}

// HideCursor blanks the console text cursor so it does not blink over
// the mirrored frame. Best effort; consoles we cannot write to are
// simply left alone.
func HideCursor() {
	for _, path := range []string{"/sys/class/graphics/fbcon/cursor_blink", "/dev/tty1"} {
		f, err := os.OpenFile(path, os.O_WRONLY, 0)
		if err != nil {
			continue
		}
		if strings.HasPrefix(path, "/dev/tty") {
			f.WriteString("\033[?25l")
		} else {
			f.WriteString("0")
		}
		f.Close()
	}
}

func writeDevice(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteAt(data, 0)
	return err
}
