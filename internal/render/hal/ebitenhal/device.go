package ebitenhal

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/phantom/internal/render/hal"
)

// Texture wraps an ebiten image. Depth textures are backed by a color
// layer that depth-tested draws render into.
type Texture struct {
	img      *ebiten.Image
	format   gputypes.TextureFormat
	borrowed bool
}

func (t *Texture) Size() (uint32, uint32) {
	b := t.img.Bounds()
	return uint32(b.Dx()), uint32(b.Dy())
}

func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// Destroy frees the image unless it is the borrowed screen.
func (t *Texture) Destroy() {
	if t.borrowed || t.img == nil {
		return
	}
	t.img.Deallocate()
	t.img = nil
}

// ShaderModule is a compiled Kage program.
type ShaderModule struct {
	shader *ebiten.Shader
}

func (m *ShaderModule) Destroy() {
	if m.shader != nil {
		m.shader.Deallocate()
		m.shader = nil
	}
}

// Pipeline selects between the built-in textured draw and a Kage shader.
type Pipeline struct {
	label  string
	shader *ebiten.Shader
	depth  bool
}

func (p *Pipeline) Destroy() {}

// Device creates ebiten resources.
type Device struct {
	label string
}

func (d *Device) CreateTexture(desc hal.TextureDescriptor) (hal.Texture, error) {
	if desc.Size.Width == 0 || desc.Size.Height == 0 {
		return nil, fmt.Errorf("texture %q has zero size", desc.Label)
	}
	img := ebiten.NewImage(int(desc.Size.Width), int(desc.Size.Height))
	return &Texture{img: img, format: desc.Format}, nil
}

func (d *Device) CreateShaderModule(desc hal.ShaderModuleDescriptor) (hal.ShaderModule, error) {
	shader, err := ebiten.NewShader(desc.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader %q: %w", desc.Label, err)
	}
	return &ShaderModule{shader: shader}, nil
}

func (d *Device) CreateRenderPipeline(desc hal.RenderPipelineDescriptor) (hal.RenderPipeline, error) {
	p := &Pipeline{label: desc.Label, depth: desc.DepthStencil != nil}
	if desc.Shader != nil {
		m, ok := desc.Shader.(*ShaderModule)
		if !ok || m.shader == nil {
			return nil, fmt.Errorf("pipeline %q: invalid shader module %T", desc.Label, desc.Shader)
		}
		p.shader = m.shader
	}
	return p, nil
}

func (d *Device) CreateCommandEncoder(label string) (hal.CommandEncoder, error) {
	return &CommandEncoder{label: label}, nil
}

func (d *Device) Destroy() {}

// Queue runs command buffers on the calling goroutine.
type Queue struct{}

func (q *Queue) WriteTexture(dst hal.ImageCopyTexture, data []byte, size image.Point) error {
	tex, ok := dst.Texture.(*Texture)
	if !ok || tex.img == nil {
		return errors.New("write to invalid texture")
	}
	if len(data) != 4*size.X*size.Y {
		return fmt.Errorf("write of %d bytes does not match %v", len(data), size)
	}
	r := image.Rectangle{Min: dst.Origin, Max: dst.Origin.Add(size)}
	if !r.In(tex.img.Bounds()) {
		return fmt.Errorf("write %v outside texture bounds %v", r, tex.img.Bounds())
	}
	tex.img.SubImage(r).(*ebiten.Image).WritePixels(data)
	return nil
}

func (q *Queue) Submit(buffers ...hal.CommandBuffer) error {
	for _, b := range buffers {
		cb, ok := b.(*CommandBuffer)
		if !ok {
			return fmt.Errorf("foreign command buffer %T", b)
		}
		for _, cmd := range cb.cmds {
			if err := cmd(); err != nil {
				return fmt.Errorf("%s: %w", cb.label, err)
			}
		}
	}
	return nil
}
