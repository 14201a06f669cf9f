// Package icon loads window icons and draws the default one.
package icon

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/gogpu/gg"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DefaultSizes are the icon sizes generated when no icon file is configured.
var DefaultSizes = []int{16, 32, 64}

// Load reads and decodes the icon at path.
func Load(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open icon %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode icon %s: %w", path, err)
	}
	return img, nil
}

// Decode decodes a PNG, JPEG, GIF, BMP or WebP image into RGBA.
func Decode(r io.Reader) (*image.RGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return toRGBA(img), nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// Default draws the built-in icon at size x size pixels.
func Default(size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid icon size %d", size)
	}
	dc := gg.NewContext(size, size)
	defer func() { _ = dc.Close() }()

	s := float64(size)
	dc.SetRGB(0.1, 0.2, 0.3)
	dc.DrawRoundedRectangle(0, 0, s, s, s*0.2)
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("failed to draw icon background: %w", err)
	}

	// Ghost: round head over a rectangular body.
	dc.SetRGB(0.92, 0.94, 0.98)
	dc.DrawCircle(s*0.5, s*0.45, s*0.28)
	dc.DrawRectangle(s*0.22, s*0.45, s*0.56, s*0.33)
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("failed to draw icon body: %w", err)
	}

	dc.SetRGB(0.1, 0.2, 0.3)
	dc.DrawCircle(s*0.4, s*0.42, s*0.06)
	dc.DrawCircle(s*0.6, s*0.42, s*0.06)
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("failed to draw icon eyes: %w", err)
	}

	return toRGBA(dc.Image()), nil
}

// DefaultSet draws the built-in icon at every size in DefaultSizes.
func DefaultSet() ([]image.Image, error) {
	out := make([]image.Image, 0, len(DefaultSizes))
	for _, size := range DefaultSizes {
		img, err := Default(size)
		if err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, nil
}
