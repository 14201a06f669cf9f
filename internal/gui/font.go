package gui

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	firstGlyph  = ' '
	lastGlyph   = '~'
	atlasCols   = 16
	fallbackRun = '?'
)

type glyph struct {
	uv Rect
}

// fontAtlas rasterizes the printable ASCII range of a bitmap face into a
// single RGBA texture.
type fontAtlas struct {
	img     *image.RGBA
	glyphs  map[rune]glyph
	advance float32
	height  float32
	white   Point
}

func newFontAtlas() *fontAtlas {
	face := basicfont.Face7x13
	cellW, cellH := face.Advance, face.Height
	count := int(lastGlyph-firstGlyph) + 1
	rows := (count + atlasCols - 1) / atlasCols

	w := atlasCols * cellW
	h := rows*cellH + 4
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	// Solid white block under the glyph grid.
	whiteRect := image.Rect(0, rows*cellH, 3, rows*cellH+3)
	draw.Draw(img, whiteRect, image.White, image.Point{}, draw.Src)

	d := &font.Drawer{Dst: img, Src: image.White, Face: face}
	glyphs := make(map[rune]glyph, count)
	for i := 0; i < count; i++ {
		r := firstGlyph + rune(i)
		x := (i % atlasCols) * cellW
		y := (i / atlasCols) * cellH
		d.Dot = fixed.P(x, y+face.Ascent)
		d.DrawString(string(r))
		glyphs[r] = glyph{uv: Rect{
			Min: Pt(float32(x)/float32(w), float32(y)/float32(h)),
			Max: Pt(float32(x+cellW)/float32(w), float32(y+cellH)/float32(h)),
		}}
	}

	return &fontAtlas{
		img:     img,
		glyphs:  glyphs,
		advance: float32(cellW),
		height:  float32(cellH),
		white:   Pt(1.5/float32(w), (float32(rows*cellH)+1.5)/float32(h)),
	}
}

func (a *fontAtlas) glyph(r rune) glyph {
	if g, ok := a.glyphs[r]; ok {
		return g
	}
	return a.glyphs[fallbackRun]
}

// textSize returns the size of a single line of text in points.
func (a *fontAtlas) textSize(text string) Point {
	n := 0
	for range text {
		n++
	}
	return Pt(float32(n)*a.advance, a.height)
}
