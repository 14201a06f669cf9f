package icon

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
	"golang.org/x/image/bmp"
)

func writeImage(t *testing.T, name string, encode func(*bytes.Buffer, image.Image) error) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, encode(&buf, img))
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func TestLoad_PNG(t *testing.T) {
	path := writeImage(t, "icon.png", func(b *bytes.Buffer, img image.Image) error { return png.Encode(b, img) })

	img, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(1, 1))
}

func TestLoad_BMP(t *testing.T) {
	path := writeImage(t, "icon.bmp", func(b *bytes.Buffer, img image.Image) error { return bmp.Encode(b, img) })

	img, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Undecodable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o600))

	_, err := Load(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, image.ErrFormat)
}

func TestDefault(t *testing.T) {
	img, err := Default(32)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 32, 32), img.Bounds())
	assert.NotZero(t, img.RGBAAt(16, 24).A, "the ghost body is painted")

	_, err = Default(0)
	assert.Error(t, err)
}

func TestDefaultSet(t *testing.T) {
	imgs, err := DefaultSet()

	require.NoError(t, err)
	require.Len(t, imgs, len(DefaultSizes))
	for i, img := range imgs {
		assert.Equal(t, DefaultSizes[i], img.Bounds().Dx())
	}
}
