// Package haltest provides a scriptable in-memory hal driver for tests.
package haltest

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/younwookim/phantom/internal/platform"
	"github.com/younwookim/phantom/internal/render/hal"
)

// Instance is a fake driver instance. Set the exported fields before use
// and inspect the recorded calls afterwards.
type Instance struct {
	NoAdapter          bool
	AdapterFeatures    gputypes.Features
	RejectDevice       error
	PreferredFormat    gputypes.TextureFormat
	PreferredFormatErr error

	// AcquireErrs is consumed one entry per AcquireTexture call. A nil
	// entry, or an exhausted queue, acquires successfully.
	AcquireErrs []error
	SubmitErr   error

	DeviceRequests []hal.DeviceDescriptor
	AdapterOpts    []hal.RequestAdapterOptions
	Configures     []hal.SurfaceConfiguration
	Textures       []*Texture
	Pipelines      []*Pipeline
	Writes         []Write
	Submits        int
	Presents       int
	Passes         []*Pass
}

// Write is one recorded Queue.WriteTexture call.
type Write struct {
	Texture *Texture
	Origin  image.Point
	Size    image.Point
}

// Draw is one recorded DrawIndexed call with the pass state at that time.
type Draw struct {
	Pipeline *Pipeline
	Texture  *Texture
	Scissor  image.Rectangle
	Vertices []hal.Vertex
	Indices  []uint32
}

// NewInstance creates a fake with one adapter and an RGBA8 surface.
func NewInstance() *Instance {
	return &Instance{PreferredFormat: gputypes.TextureFormatRGBA8Unorm}
}

func (i *Instance) CreateSurface(platform.Window) (hal.Surface, error) {
	return &surface{inst: i}, nil
}

func (i *Instance) RequestAdapter(opts hal.RequestAdapterOptions) (hal.Adapter, error) {
	i.AdapterOpts = append(i.AdapterOpts, opts)
	if i.NoAdapter {
		return nil, hal.ErrAdapterNotFound
	}
	return &adapter{inst: i}, nil
}

func (i *Instance) Destroy() {}

// LiveTextures returns the textures created and not yet destroyed.
func (i *Instance) LiveTextures() []*Texture {
	var out []*Texture
	for _, t := range i.Textures {
		if !t.Destroyed {
			out = append(out, t)
		}
	}
	return out
}

// Draws returns every draw of every submitted pass in order.
func (i *Instance) Draws() []Draw {
	var out []Draw
	for _, p := range i.Passes {
		out = append(out, p.Draws...)
	}
	return out
}

type adapter struct {
	inst *Instance
}

func (a *adapter) Info() hal.AdapterInfo {
	return hal.AdapterInfo{Name: "Fake Adapter", Vendor: "haltest", Backend: hal.BackendsAll}
}

func (a *adapter) Features() gputypes.Features { return a.inst.AdapterFeatures }
func (a *adapter) Limits() gputypes.Limits     { return gputypes.DefaultLimits() }

func (a *adapter) RequestDevice(desc hal.DeviceDescriptor) (hal.Device, hal.Queue, error) {
	a.inst.DeviceRequests = append(a.inst.DeviceRequests, desc)
	if a.inst.RejectDevice != nil {
		return nil, nil, a.inst.RejectDevice
	}
	return &device{inst: a.inst}, &queue{inst: a.inst}, nil
}

type surface struct {
	inst *Instance
}

func (s *surface) PreferredFormat(hal.Adapter) (gputypes.TextureFormat, error) {
	if s.inst.PreferredFormatErr != nil {
		return gputypes.TextureFormatUndefined, s.inst.PreferredFormatErr
	}
	return s.inst.PreferredFormat, nil
}

func (s *surface) Configure(_ hal.Device, cfg hal.SurfaceConfiguration) error {
	s.inst.Configures = append(s.inst.Configures, cfg)
	return nil
}

func (s *surface) AcquireTexture() (hal.SurfaceTexture, error) {
	if len(s.inst.AcquireErrs) > 0 {
		err := s.inst.AcquireErrs[0]
		s.inst.AcquireErrs = s.inst.AcquireErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	if len(s.inst.Configures) == 0 {
		return nil, hal.ErrSurfaceLost
	}
	cfg := s.inst.Configures[len(s.inst.Configures)-1]
	tex := &Texture{Label: "surface", Width: cfg.Width, Height: cfg.Height, format: cfg.Format}
	return &surfaceTexture{inst: s.inst, tex: tex}, nil
}

func (s *surface) Destroy() {}

type surfaceTexture struct {
	inst *Instance
	tex  *Texture
}

func (st *surfaceTexture) Texture() hal.Texture { return st.tex }

func (st *surfaceTexture) Present() error {
	st.inst.Presents++
	return nil
}

// Texture is a fake texture.
type Texture struct {
	Label     string
	Width     uint32
	Height    uint32
	Usage     gputypes.TextureUsage
	Destroyed bool
	format    gputypes.TextureFormat
}

func (t *Texture) Size() (uint32, uint32)         { return t.Width, t.Height }
func (t *Texture) Format() gputypes.TextureFormat { return t.format }
func (t *Texture) Destroy()                       { t.Destroyed = true }

// Pipeline is a fake render pipeline.
type Pipeline struct {
	Desc hal.RenderPipelineDescriptor
}

func (p *Pipeline) Destroy() {}

type shader struct{}

func (shader) Destroy() {}

type device struct {
	inst *Instance
}

func (d *device) CreateTexture(desc hal.TextureDescriptor) (hal.Texture, error) {
	if desc.Size.Width == 0 || desc.Size.Height == 0 {
		return nil, fmt.Errorf("texture %q has zero size", desc.Label)
	}
	t := &Texture{
		Label:  desc.Label,
		Width:  desc.Size.Width,
		Height: desc.Size.Height,
		Usage:  desc.Usage,
		format: desc.Format,
	}
	d.inst.Textures = append(d.inst.Textures, t)
	return t, nil
}

func (d *device) CreateShaderModule(desc hal.ShaderModuleDescriptor) (hal.ShaderModule, error) {
	if len(desc.Source) == 0 {
		return nil, errors.New("empty shader source")
	}
	return shader{}, nil
}

func (d *device) CreateRenderPipeline(desc hal.RenderPipelineDescriptor) (hal.RenderPipeline, error) {
	p := &Pipeline{Desc: desc}
	d.inst.Pipelines = append(d.inst.Pipelines, p)
	return p, nil
}

func (d *device) CreateCommandEncoder(label string) (hal.CommandEncoder, error) {
	return &encoder{inst: d.inst, label: label}, nil
}

func (d *device) Destroy() {}

type queue struct {
	inst *Instance
}

func (q *queue) WriteTexture(dst hal.ImageCopyTexture, data []byte, size image.Point) error {
	tex, ok := dst.Texture.(*Texture)
	if !ok || tex.Destroyed {
		return errors.New("write to invalid texture")
	}
	if len(data) != 4*size.X*size.Y {
		return fmt.Errorf("write of %d bytes does not match %v", len(data), size)
	}
	r := image.Rectangle{Min: dst.Origin, Max: dst.Origin.Add(size)}
	if !r.In(image.Rect(0, 0, int(tex.Width), int(tex.Height))) {
		return fmt.Errorf("write %v outside texture %q", r, tex.Label)
	}
	q.inst.Writes = append(q.inst.Writes, Write{Texture: tex, Origin: dst.Origin, Size: size})
	return nil
}

func (q *queue) Submit(buffers ...hal.CommandBuffer) error {
	if q.inst.SubmitErr != nil {
		return q.inst.SubmitErr
	}
	for _, b := range buffers {
		cb := b.(*commandBuffer)
		q.inst.Passes = append(q.inst.Passes, cb.passes...)
	}
	q.inst.Submits++
	return nil
}

type encoder struct {
	inst   *Instance
	label  string
	passes []*Pass
}

func (e *encoder) BeginRenderPass(desc hal.RenderPassDescriptor) hal.RenderPass {
	p := &Pass{Desc: desc}
	e.passes = append(e.passes, p)
	return p
}

func (e *encoder) Finish() (hal.CommandBuffer, error) {
	for _, p := range e.passes {
		if !p.Ended {
			return nil, errors.New("render pass not ended")
		}
	}
	return &commandBuffer{label: e.label, passes: e.passes}, nil
}

type commandBuffer struct {
	label  string
	passes []*Pass
}

func (c *commandBuffer) Label() string { return c.label }

// Pass is a recorded render pass.
type Pass struct {
	Desc  hal.RenderPassDescriptor
	Draws []Draw
	Ended bool

	pipeline *Pipeline
	texture  *Texture
	scissor  image.Rectangle
}

func (p *Pass) SetPipeline(rp hal.RenderPipeline) { p.pipeline = rp.(*Pipeline) }

func (p *Pass) SetBindTexture(t hal.Texture) {
	p.texture, _ = t.(*Texture)
}

func (p *Pass) SetScissorRect(r image.Rectangle) { p.scissor = r }

func (p *Pass) DrawIndexed(vertices []hal.Vertex, indices []uint32) {
	p.Draws = append(p.Draws, Draw{
		Pipeline: p.pipeline,
		Texture:  p.texture,
		Scissor:  p.scissor,
		Vertices: append([]hal.Vertex(nil), vertices...),
		Indices:  append([]uint32(nil), indices...),
	})
}

func (p *Pass) End() { p.Ended = true }
