package imaging_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iroll/miniviewer/internal/errors"
	"github.com/iroll/miniviewer/internal/imaging"
)

// writePNG writes a w by h test image and returns its path.
func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	path := filepath.Join(t.TempDir(), "test.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestDecodeFile(t *testing.T) {
	t.Run("decodes a png with dimensions", func(t *testing.T) {
		path := writePNG(t, 12, 8)

		decoded, err := imaging.DecodeFile(path)
		require.NoError(t, err)
		assert.Equal(t, "png", decoded.Format)
		assert.Equal(t, 12, decoded.Width)
		assert.Equal(t, 8, decoded.Height)
		assert.NotNil(t, decoded.Image)
	})

	t.Run("garbage bytes are a decode error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.jpg")
		require.NoError(t, os.WriteFile(path, []byte("not an image"), 0644))

		_, err := imaging.DecodeFile(path)
		require.Error(t, err)
		assert.True(t, errors.IsDecodeError(err))
	})

	t.Run("missing file is not a decode error", func(t *testing.T) {
		_, err := imaging.DecodeFile(filepath.Join(t.TempDir(), "missing.png"))
		require.Error(t, err)
		assert.False(t, errors.IsDecodeError(err))
	})
}

func TestDimensions(t *testing.T) {
	path := writePNG(t, 30, 20)

	w, h, err := imaging.Dimensions(path)
	require.NoError(t, err)
	assert.Equal(t, 30, w)
	assert.Equal(t, 20, h)
}

func TestRotate(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 2))
	marker := color.RGBA{R: 255, A: 255}
	src.Set(0, 0, marker)

	t.Run("90 degrees swaps dimensions", func(t *testing.T) {
		out := imaging.Rotate(src, 90)
		b := out.Bounds()
		assert.Equal(t, 2, b.Dx())
		assert.Equal(t, 4, b.Dy())
		// Top-left pixel moves to the top-right corner
		assert.Equal(t, marker, out.(*image.RGBA).RGBAAt(1, 0))
	})

	t.Run("180 degrees keeps dimensions", func(t *testing.T) {
		out := imaging.Rotate(src, 180)
		b := out.Bounds()
		assert.Equal(t, 4, b.Dx())
		assert.Equal(t, 2, b.Dy())
		assert.Equal(t, marker, out.(*image.RGBA).RGBAAt(3, 1))
	})

	t.Run("270 degrees swaps dimensions back", func(t *testing.T) {
		out := imaging.Rotate(src, 270)
		b := out.Bounds()
		assert.Equal(t, 2, b.Dx())
		assert.Equal(t, 4, b.Dy())
		assert.Equal(t, marker, out.(*image.RGBA).RGBAAt(0, 3))
	})

	t.Run("zero and invalid angles return the image unchanged", func(t *testing.T) {
		assert.Equal(t, image.Image(src), imaging.Rotate(src, 0))
		assert.Equal(t, image.Image(src), imaging.Rotate(src, 45))
	})
}
