package gpu

import (
	"fmt"
	"image"
	"maps"
	"math"
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/younwookim/phantom/internal/gui"
	"github.com/younwookim/phantom/internal/render/hal"
)

type screenDescriptor struct {
	width, height uint32
	scale         float32
}

type guiBatch struct {
	texture  gui.TextureID
	scissor  image.Rectangle
	vertices []hal.Vertex
	indices  []uint32
}

// textureUpdate is one queued upload or release, applied in order.
type textureUpdate struct {
	id    gui.TextureID
	delta gui.ImageDelta
	free  bool
}

// guiPass draws tessellated GUI meshes on top of the frame.
type guiPass struct {
	device   hal.Device
	pipeline hal.RenderPipeline
	textures map[gui.TextureID]hal.Texture
	batches  []guiBatch

	// pending holds texture updates that no frame has applied yet. The GUI
	// sends each delta once, so a dropped frame must not lose them.
	pending []textureUpdate
}

func newGUIPass(device hal.Device, format gputypes.TextureFormat) (*guiPass, error) {
	blend := gputypes.BlendStatePremultiplied()
	pipeline, err := device.CreateRenderPipeline(hal.RenderPipelineDescriptor{
		Label:        "GUI Pipeline",
		TargetFormat: format,
		Blend:        &blend,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GUI pipeline: %w", err)
	}
	return &guiPass{
		device:   device,
		pipeline: pipeline,
		textures: make(map[gui.TextureID]hal.Texture),
	}, nil
}

// queueTextures appends uploads in texture id order.
func (p *guiPass) queueTextures(set map[gui.TextureID]gui.ImageDelta) {
	for _, id := range slices.Sorted(maps.Keys(set)) {
		p.pending = append(p.pending, textureUpdate{id: id, delta: set[id]})
	}
}

// queueFrees defers releases that a dropped frame did not apply.
func (p *guiPass) queueFrees(ids []gui.TextureID) {
	for _, id := range ids {
		p.pending = append(p.pending, textureUpdate{id: id, free: true})
	}
}

// flushTextures applies pending updates in order. An update that fails is
// discarded; the ones behind it stay queued for the next frame.
func (p *guiPass) flushTextures(queue hal.Queue) error {
	for len(p.pending) > 0 {
		u := p.pending[0]
		p.pending = p.pending[1:]
		if u.free {
			p.freeTextures([]gui.TextureID{u.id})
			continue
		}
		if err := p.updateTexture(queue, u.id, u.delta); err != nil {
			return err
		}
	}
	p.pending = nil
	return nil
}

// updateTexture applies a full upload or a patch.
func (p *guiPass) updateTexture(queue hal.Queue, id gui.TextureID, delta gui.ImageDelta) error {
	if delta.Image == nil {
		return nil
	}
	b := delta.Image.Bounds()
	origin := image.Point{}
	tex, ok := p.textures[id]

	if delta.Pos == nil {
		if ok {
			tex.Destroy()
		}
		var err error
		tex, err = p.device.CreateTexture(hal.TextureDescriptor{
			Label:         fmt.Sprintf("GUI Texture %d", id),
			Size:          gputypes.Extent3D{Width: uint32(b.Dx()), Height: uint32(b.Dy()), DepthOrArrayLayers: 1},
			Format:        gputypes.TextureFormatRGBA8Unorm,
			Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
			Dimension:     gputypes.TextureDimension2D,
			MipLevelCount: 1,
			SampleCount:   1,
		})
		if err != nil {
			delete(p.textures, id)
			return fmt.Errorf("failed to create GUI texture %d: %w", id, err)
		}
		p.textures[id] = tex
	} else {
		if !ok {
			return fmt.Errorf("patch of unknown GUI texture %d", id)
		}
		origin = *delta.Pos
	}

	if err := queue.WriteTexture(hal.ImageCopyTexture{Texture: tex, Origin: origin}, packRGBA(delta.Image), b.Size()); err != nil {
		return fmt.Errorf("failed to upload GUI texture %d: %w", id, err)
	}
	return nil
}

// packRGBA returns the pixels of img without row padding.
func packRGBA(img *image.RGBA) []byte {
	b := img.Bounds()
	rowLen := 4 * b.Dx()
	if img.Stride == rowLen && b.Min == (image.Point{}) {
		return img.Pix[:rowLen*b.Dy()]
	}
	out := make([]byte, 0, rowLen*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		out = append(out, img.Pix[off:off+rowLen]...)
	}
	return out
}

// freeTextures releases textures the GUI no longer uses. It runs after
// the frame was submitted.
func (p *guiPass) freeTextures(ids []gui.TextureID) {
	for _, id := range ids {
		if tex, ok := p.textures[id]; ok {
			tex.Destroy()
			delete(p.textures, id)
		}
	}
}

// updateBuffers converts paint jobs from points to target pixels.
func (p *guiPass) updateBuffers(jobs []gui.PaintJob, sd screenDescriptor) {
	scale := sd.scale
	if scale <= 0 {
		scale = 1
	}
	p.batches = p.batches[:0]
	target := image.Rect(0, 0, int(sd.width), int(sd.height))

	for _, job := range jobs {
		if len(job.Mesh.Indices) == 0 {
			continue
		}
		scissor := image.Rect(
			int(math.Floor(float64(job.Clip.Min.X*scale))),
			int(math.Floor(float64(job.Clip.Min.Y*scale))),
			int(math.Ceil(float64(job.Clip.Max.X*scale))),
			int(math.Ceil(float64(job.Clip.Max.Y*scale))),
		).Intersect(target)
		if scissor.Empty() {
			continue
		}

		verts := make([]hal.Vertex, len(job.Mesh.Vertices))
		for i, v := range job.Mesh.Vertices {
			verts[i] = hal.Vertex{
				Position: [2]float32{v.Pos.X * scale, v.Pos.Y * scale},
				UV:       [2]float32{v.UV.X, v.UV.Y},
				Color: [4]float32{
					float32(v.Color.R) / 255,
					float32(v.Color.G) / 255,
					float32(v.Color.B) / 255,
					float32(v.Color.A) / 255,
				},
			}
		}
		p.batches = append(p.batches, guiBatch{
			texture:  job.Mesh.Texture,
			scissor:  scissor,
			vertices: verts,
			indices:  job.Mesh.Indices,
		})
	}
}

func (p *guiPass) execute(pass hal.RenderPass) {
	if len(p.batches) == 0 {
		return
	}
	pass.SetPipeline(p.pipeline)
	for _, b := range p.batches {
		tex, ok := p.textures[b.texture]
		if !ok {
			continue
		}
		pass.SetBindTexture(tex)
		pass.SetScissorRect(b.scissor)
		pass.DrawIndexed(b.vertices, b.indices)
	}
}

func (p *guiPass) destroy() {
	for id, tex := range p.textures {
		tex.Destroy()
		delete(p.textures, id)
	}
	p.pipeline.Destroy()
}
