package upload_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"go-interview-backend/pkg/upload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCompressImage(t *testing.T) {
	t.Run("Should downscale an oversized landscape image", func(t *testing.T) {
		out, err := upload.CompressImage(makePNG(t, 3000, 1500), 1920, 80)
		require.NoError(t, err)

		img, err := jpeg.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 1920, img.Bounds().Dx())
		assert.Equal(t, 960, img.Bounds().Dy())
	})

	t.Run("Should downscale an oversized portrait image", func(t *testing.T) {
		out, err := upload.CompressImage(makePNG(t, 400, 1024), 512, 80)
		require.NoError(t, err)

		img, err := jpeg.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 512, img.Bounds().Dy())
		assert.Equal(t, 200, img.Bounds().Dx())
	})

	t.Run("Should keep dimensions of an image already within bounds", func(t *testing.T) {
		out, err := upload.CompressImage(makePNG(t, 300, 200), 1920, 80)
		require.NoError(t, err)

		img, err := jpeg.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 300, img.Bounds().Dx())
		assert.Equal(t, 200, img.Bounds().Dy())
	})

	t.Run("Should fail on content that is not an image", func(t *testing.T) {
		_, err := upload.CompressImage([]byte("not an image"), 1920, 80)
		assert.Error(t, err)
	})
}
