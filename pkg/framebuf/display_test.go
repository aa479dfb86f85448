package framebuf

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func solidFrame(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestDisplay(t *testing.T) {
	t.Run("Missing device enters simulation mode and writes a preview PNG", func(t *testing.T) {
		dir := t.TempDir()
		preview := filepath.Join(dir, "preview.png")
		d := NewDisplay(filepath.Join(dir, "no-such-fb"), preview, discardLogger())

		assert.True(t, d.Simulated())
		require.NoError(t, d.Push(solidFrame(480, 320, color.RGBA{R: 40, G: 80, B: 120, A: 255})))

		f, err := os.Open(preview)
		require.NoError(t, err)
		defer f.Close()
		decoded, err := png.Decode(f)
		require.NoError(t, err)
		assert.Equal(t, 480, decoded.Bounds().Dx())
		assert.Equal(t, 320, decoded.Bounds().Dy())
	})

	t.Run("Existing device receives the RGB565 stream", func(t *testing.T) {
		dir := t.TempDir()
		device := filepath.Join(dir, "fb1")
		require.NoError(t, os.WriteFile(device, nil, 0o644))

		d := NewDisplay(device, filepath.Join(dir, "preview.png"), discardLogger())
		require.False(t, d.Simulated())
		require.NoError(t, d.Push(solidFrame(8, 4, color.RGBA{R: 255, A: 255})))

		data, err := os.ReadFile(device)
		require.NoError(t, err)
		require.Len(t, data, 8*4*2)
		assert.Equal(t, byte(0x00), data[0])
		assert.Equal(t, byte(0xF8), data[1])
	})

	t.Run("Mirror failure does not fail the push", func(t *testing.T) {
		dir := t.TempDir()
		device := filepath.Join(dir, "fb1")
		require.NoError(t, os.WriteFile(device, nil, 0o644))

		mirror := NewMirror(filepath.Join(dir, "fb0"), dir, discardLogger())
		d := NewDisplay(device, filepath.Join(dir, "preview.png"), discardLogger(),
			WithMirror(mirror))

		assert.NoError(t, d.Push(solidFrame(8, 4, color.RGBA{A: 255})))
	})
}

func TestMirror(t *testing.T) {
	t.Run("Geometry comes from sysfs", func(t *testing.T) {
		sysfs := t.TempDir()
		node := filepath.Join(sysfs, "fb0")
		require.NoError(t, os.Mkdir(node, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(node, "virtual_size"), []byte("800,480\n"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(node, "bits_per_pixel"), []byte("16\n"), 0o644))

		m := NewMirror("/dev/fb0", sysfs, discardLogger())
		assert.Equal(t, 800, m.width)
		assert.Equal(t, 480, m.height)
		assert.Equal(t, 16, m.bpp)
	})

	t.Run("Missing sysfs falls back to 1080p at 32 bpp", func(t *testing.T) {
		m := NewMirror("/dev/fb0", t.TempDir(), discardLogger())
		assert.Equal(t, 1920, m.width)
		assert.Equal(t, 1080, m.height)
		assert.Equal(t, 32, m.bpp)
	})

	t.Run("Write scales to the device geometry", func(t *testing.T) {
		dir := t.TempDir()
		sysfs := t.TempDir()
		node := filepath.Join(sysfs, "fb0")
		require.NoError(t, os.Mkdir(node, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(node, "virtual_size"), []byte("12,8"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(node, "bits_per_pixel"), []byte("32"), 0o644))

		device := filepath.Join(dir, "fb0")
		require.NoError(t, os.WriteFile(device, nil, 0o644))

		m := NewMirror(device, sysfs, discardLogger())
		require.NoError(t, m.Write(solidFrame(6, 4, color.RGBA{G: 255, A: 255})))

		data, err := os.ReadFile(device)
		require.NoError(t, err)
		assert.Len(t, data, 12*8*4)
	})

	t.Run("Missing device is silently skipped", func(t *testing.T) {
		m := NewMirror(filepath.Join(t.TempDir(), "fb0"), t.TempDir(), discardLogger())
		assert.NoError(t, m.Write(solidFrame(6, 4, color.RGBA{A: 255})))
	})
}

func TestFitRect(t *testing.T) {
	t.Run("Panel on 1080p is pillarboxed", func(t *testing.T) {
		r := fitRect(480, 320, 1920, 1080)
		assert.Equal(t, image.Rect(150, 0, 1770, 1080), r)
	})

	t.Run("Matching aspect fills the screen", func(t *testing.T) {
		r := fitRect(480, 320, 960, 640)
		assert.Equal(t, image.Rect(0, 0, 960, 640), r)
	})

	t.Run("Wide frame on a tall screen is letterboxed", func(t *testing.T) {
		r := fitRect(200, 100, 100, 200)
		assert.Equal(t, image.Rect(0, 75, 100, 125), r)
	})
}
