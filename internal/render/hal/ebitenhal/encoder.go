package ebitenhal

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/phantom/internal/render/hal"
)

type command func() error

// CommandEncoder records passes as deferred ebiten draw calls.
type CommandEncoder struct {
	label  string
	cmds   []command
	open   *RenderPass
	failed error
}

// BeginRenderPass starts a pass. Passes must be ended before the next one
// begins.
func (e *CommandEncoder) BeginRenderPass(desc hal.RenderPassDescriptor) hal.RenderPass {
	p := &RenderPass{enc: e}
	if e.open != nil {
		e.fail(errors.New("render pass begun while another is open"))
		return p
	}
	e.open = p

	target, ok := desc.Color.View.(*Texture)
	if !ok || target.img == nil {
		e.fail(fmt.Errorf("pass %q: invalid color attachment", desc.Label))
		return p
	}
	p.target = target.img
	p.scissor = target.img.Bounds()

	if desc.Color.LoadOp == gputypes.LoadOpClear {
		c := toRGBA(desc.Color.ClearValue)
		img := p.target
		e.record(func() error {
			img.Fill(c)
			return nil
		})
	}
	if desc.Depth != nil {
		depth, ok := desc.Depth.View.(*Texture)
		if !ok || depth.img == nil {
			e.fail(fmt.Errorf("pass %q: invalid depth attachment", desc.Label))
			return p
		}
		p.layer = depth.img
		if desc.Depth.DepthLoadOp == gputypes.LoadOpClear {
			layer := p.layer
			e.record(func() error {
				layer.Clear()
				return nil
			})
		}
	}
	return p
}

// Finish seals the recording.
func (e *CommandEncoder) Finish() (hal.CommandBuffer, error) {
	if e.failed != nil {
		return nil, e.failed
	}
	if e.open != nil {
		return nil, errors.New("render pass not ended")
	}
	return &CommandBuffer{label: e.label, cmds: e.cmds}, nil
}

func (e *CommandEncoder) record(c command) {
	e.cmds = append(e.cmds, c)
}

func (e *CommandEncoder) fail(err error) {
	if e.failed == nil {
		e.failed = err
	}
}

// CommandBuffer is a list of deferred draw calls.
type CommandBuffer struct {
	label string
	cmds  []command
}

func (c *CommandBuffer) Label() string { return c.label }

// RenderPass records draws. Depth-tested pipelines draw into the depth
// attachment's layer, which is composited onto the target when the pass
// switches to a pipeline without depth or ends.
type RenderPass struct {
	enc      *CommandEncoder
	target   *ebiten.Image
	layer    *ebiten.Image
	pipeline *Pipeline
	texture  *ebiten.Image
	scissor  image.Rectangle
	dirty    bool
}

func (p *RenderPass) SetPipeline(rp hal.RenderPipeline) {
	pl, ok := rp.(*Pipeline)
	if !ok {
		p.enc.fail(fmt.Errorf("foreign pipeline %T", rp))
		return
	}
	if p.pipeline != nil && p.pipeline.depth && !pl.depth {
		p.flushLayer()
	}
	p.pipeline = pl
}

func (p *RenderPass) SetBindTexture(t hal.Texture) {
	p.texture = nil
	if tex, ok := t.(*Texture); ok {
		p.texture = tex.img
	}
}

func (p *RenderPass) SetScissorRect(r image.Rectangle) {
	p.scissor = r
}

func (p *RenderPass) DrawIndexed(vertices []hal.Vertex, indices []uint32) {
	if p.target == nil || p.pipeline == nil {
		p.enc.fail(errors.New("draw without target or pipeline"))
		return
	}
	if len(vertices) > 1<<16 {
		p.enc.fail(fmt.Errorf("mesh of %d vertices exceeds 16-bit indices", len(vertices)))
		return
	}

	dst := p.target
	if p.pipeline.depth && p.layer != nil {
		dst = p.layer
		p.dirty = true
	}
	clip := p.scissor.Intersect(dst.Bounds())
	if clip.Empty() {
		return
	}

	var tw, th float32
	if p.texture != nil {
		b := p.texture.Bounds()
		tw, th = float32(b.Dx()), float32(b.Dy())
	}
	vs := make([]ebiten.Vertex, len(vertices))
	for i, v := range vertices {
		vs[i] = ebiten.Vertex{
			DstX:   v.Position[0],
			DstY:   v.Position[1],
			SrcX:   v.UV[0] * tw,
			SrcY:   v.UV[1] * th,
			ColorR: v.Color[0],
			ColorG: v.Color[1],
			ColorB: v.Color[2],
			ColorA: v.Color[3],
		}
	}
	is := make([]uint16, len(indices))
	for i, idx := range indices {
		if int(idx) >= len(vertices) {
			p.enc.fail(fmt.Errorf("index %d out of range", idx))
			return
		}
		is[i] = uint16(idx)
	}

	shader, tex := p.pipeline.shader, p.texture
	p.enc.record(func() error {
		sub := dst.SubImage(clip).(*ebiten.Image)
		if shader != nil {
			op := &ebiten.DrawTrianglesShaderOptions{}
			op.Images[0] = tex
			sub.DrawTrianglesShader(vs, is, shader, op)
			return nil
		}
		if tex == nil {
			return errors.New("textured draw without a bound texture")
		}
		sub.DrawTriangles(vs, is, tex, &ebiten.DrawTrianglesOptions{
			ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
		})
		return nil
	})
}

// End composites any pending depth layer and closes the pass.
func (p *RenderPass) End() {
	p.flushLayer()
	if p.enc.open == p {
		p.enc.open = nil
	}
}

func (p *RenderPass) flushLayer() {
	if !p.dirty || p.layer == nil || p.target == nil {
		return
	}
	p.dirty = false
	layer, target := p.layer, p.target
	p.enc.record(func() error {
		target.DrawImage(layer, nil)
		return nil
	})
}

func toRGBA(c gputypes.Color) color.RGBA {
	clamp := func(v float64) uint8 {
		switch {
		case v <= 0:
			return 0
		case v >= 1:
			return 255
		default:
			return uint8(v*255 + 0.5)
		}
	}
	a := float64(c.A)
	return color.RGBA{
		R: clamp(float64(c.R) * a),
		G: clamp(float64(c.G) * a),
		B: clamp(float64(c.B) * a),
		A: clamp(a),
	}
}
