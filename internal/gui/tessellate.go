package gui

import "image/color"

// maxMeshVertices keeps every mesh addressable with 16-bit indices.
const maxMeshVertices = 1 << 16

type tessellator struct {
	atlas *fontAtlas
	jobs  []PaintJob
}

// Tessellate converts shapes into paint jobs. Consecutive shapes with the
// same clip rectangle share a mesh. Shapes whose clip is empty are dropped.
func (c *Context) Tessellate(shapes []ClippedShape) []PaintJob {
	t := &tessellator{atlas: c.atlas}
	for _, cs := range shapes {
		if cs.Clip.IsEmpty() {
			continue
		}
		switch s := cs.Shape.(type) {
		case RectShape:
			if s.Fill.A == 0 || s.Rect.IsEmpty() {
				continue
			}
			uv := Rect{Min: t.atlas.white, Max: t.atlas.white}
			t.quad(cs.Clip, s.Rect, uv, s.Fill)
		case TextShape:
			t.text(cs.Clip, s)
		}
	}
	return t.jobs
}

func (t *tessellator) text(clip Rect, s TextShape) {
	if s.Color.A == 0 {
		return
	}
	pos := s.Pos
	for _, r := range s.Text {
		if r != ' ' {
			g := t.atlas.glyph(r)
			t.quad(clip, RectFromMinSize(pos, Pt(t.atlas.advance, t.atlas.height)), g.uv, s.Color)
		}
		pos.X += t.atlas.advance
	}
}

// mesh returns the mesh that the next quad goes into.
func (t *tessellator) mesh(clip Rect) *Mesh {
	if n := len(t.jobs); n > 0 {
		last := &t.jobs[n-1]
		if last.Clip == clip && len(last.Mesh.Vertices)+4 <= maxMeshVertices {
			return &last.Mesh
		}
	}
	t.jobs = append(t.jobs, PaintJob{Clip: clip, Mesh: Mesh{Texture: FontTexture}})
	return &t.jobs[len(t.jobs)-1].Mesh
}

func (t *tessellator) quad(clip Rect, r, uv Rect, c color.RGBA) {
	m := t.mesh(clip)
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices,
		Vertex{Pos: r.Min, UV: uv.Min, Color: c},
		Vertex{Pos: Pt(r.Max.X, r.Min.Y), UV: Pt(uv.Max.X, uv.Min.Y), Color: c},
		Vertex{Pos: r.Max, UV: uv.Max, Color: c},
		Vertex{Pos: Pt(r.Min.X, r.Max.Y), UV: Pt(uv.Min.X, uv.Max.Y), Color: c},
	)
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}
