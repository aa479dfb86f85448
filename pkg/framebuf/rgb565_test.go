package framebuf

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackRGB565(t *testing.T) {
	t.Run("Primary colors", func(t *testing.T) {
		assert.Equal(t, uint16(0x0000), PackRGB565(0, 0, 0))
		assert.Equal(t, uint16(0xFFFF), PackRGB565(255, 255, 255))
		assert.Equal(t, uint16(0xF800), PackRGB565(255, 0, 0))
		assert.Equal(t, uint16(0x07E0), PackRGB565(0, 255, 0))
		assert.Equal(t, uint16(0x001F), PackRGB565(0, 0, 255))
	})

	t.Run("Packing keeps the top 5-6-5 bits of each channel", func(t *testing.T) {
		rng := rand.New(rand.NewSource(565))
		for i := 0; i < 200; i++ {
			r := uint8(rng.Intn(256))
			g := uint8(rng.Intn(256))
			b := uint8(rng.Intn(256))

			px := PackRGB565(r, g, b)
			assert.Equal(t, r&0xF8, uint8(px>>8)&0xF8)
			assert.Equal(t, g&0xFC, uint8(px>>3)&0xFC)
			assert.Equal(t, b&0xF8, uint8(px<<3))
		}
	})
}

func randomFrame(t *testing.T, w, h int) *image.RGBA {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.Intn(256))
	}
	// keep alpha opaque so the scalar path's premultiplied RGBA values
	// match the raw channel bytes
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xFF
	}
	return img
}

func TestEncoders(t *testing.T) {
	t.Run("Row and scalar encoders produce identical output", func(t *testing.T) {
		img := randomFrame(t, 31, 17)
		assert.Equal(t, scalarEncoder{}.EncodeRGB565(img), rowEncoder{}.EncodeRGB565(img))
	})

	t.Run("Output is little-endian", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 1, 1))
		img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})

		data := NewEncoder().EncodeRGB565(img)
		require.Len(t, data, 2)
		assert.Equal(t, byte(0x00), data[0])
		assert.Equal(t, byte(0xF8), data[1])
	})

	t.Run("Output length is two bytes per pixel", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 480, 320))
		assert.Len(t, NewEncoder().EncodeRGB565(img), 480*320*2)
	})
}

func TestEncodeBGRA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	data := encodeBGRA(img)
	assert.Equal(t, []byte{3, 2, 1, 255}, data)
}

func TestEncodeRGB24(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 4, G: 5, B: 6, A: 255})

	data := encodeRGB24(img)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, data)
}
