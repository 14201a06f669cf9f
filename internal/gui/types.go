// Package gui is a small immediate-mode GUI. A frame is built with
// panels and widgets, then tessellated into clipped triangle meshes
// for the renderer.
package gui

import (
	"image"
	"image/color"
)

// Point is a position or size in points.
type Point struct {
	X, Y float32
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Rect is an axis-aligned rectangle in points. Max is exclusive.
type Rect struct {
	Min, Max Point
}

// RectFromMinSize builds a rectangle from its top-left corner and size.
func RectFromMinSize(min, size Point) Rect {
	return Rect{Min: min, Max: min.Add(size)}
}

func (r Rect) Width() float32  { return r.Max.X - r.Min.X }
func (r Rect) Height() float32 { return r.Max.Y - r.Min.Y }

// IsEmpty reports whether r covers no area.
func (r Rect) IsEmpty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Intersect returns the overlap of r and o.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		Min: Point{X: max(r.Min.X, o.Min.X), Y: max(r.Min.Y, o.Min.Y)},
		Max: Point{X: min(r.Max.X, o.Max.X), Y: min(r.Max.Y, o.Max.Y)},
	}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// Shrink moves every edge inwards by m.
func (r Rect) Shrink(m float32) Rect {
	return Rect{
		Min: Point{X: r.Min.X + m, Y: r.Min.Y + m},
		Max: Point{X: r.Max.X - m, Y: r.Max.Y - m},
	}
}

// Shape is a paint primitive.
type Shape interface {
	isShape()
}

// RectShape is a filled rectangle.
type RectShape struct {
	Rect Rect
	Fill color.RGBA
}

// TextShape is a single line of text whose top-left corner is at Pos.
type TextShape struct {
	Pos   Point
	Text  string
	Color color.RGBA
}

func (RectShape) isShape() {}
func (TextShape) isShape() {}

// ClippedShape is a shape with the clip rectangle it must be drawn in.
type ClippedShape struct {
	Clip  Rect
	Shape Shape
}

// TextureID names a texture managed by the GUI.
type TextureID uint64

// FontTexture is the font atlas. It also holds a white texel used for
// solid fills.
const FontTexture TextureID = 0

// ImageDelta is a full texture upload when Pos is nil, or a patch of an
// existing texture at Pos.
type ImageDelta struct {
	Image *image.RGBA
	Pos   *image.Point
}

// TexturesDelta lists texture uploads to apply before painting and
// textures to free after painting.
type TexturesDelta struct {
	Set  map[TextureID]ImageDelta
	Free []TextureID
}

// IsEmpty reports whether the delta has nothing to do.
func (d TexturesDelta) IsEmpty() bool {
	return len(d.Set) == 0 && len(d.Free) == 0
}

// Vertex is a mesh vertex. Pos is in points, UV is normalized and Color is
// premultiplied alpha.
type Vertex struct {
	Pos   Point
	UV    Point
	Color color.RGBA
}

// Mesh is an indexed triangle list sampling one texture.
type Mesh struct {
	Texture  TextureID
	Vertices []Vertex
	Indices  []uint32
}

// PaintJob is a mesh drawn inside a clip rectangle.
type PaintJob struct {
	Clip Rect
	Mesh Mesh
}

// FullOutput is the result of one GUI frame.
type FullOutput struct {
	Shapes         []ClippedShape
	Textures       TexturesDelta
	PixelsPerPoint float32
}

// PaintData is everything the renderer needs to draw the GUI.
type PaintData struct {
	Jobs           []PaintJob
	Textures       TexturesDelta
	PixelsPerPoint float32
}
