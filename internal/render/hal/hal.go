// Package hal is the hardware abstraction the GPU renderer is written
// against. Descriptor vocabulary comes from gputypes; drivers live in
// subpackages.
package hal

import (
	"image"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/younwookim/phantom/internal/platform"
)

// InstanceDescriptor configures an Instance.
type InstanceDescriptor struct {
	Backends Backends

	// Logger receives driver notices. Nil means slog.Default.
	Logger *slog.Logger
}

// RequestAdapterOptions selects an adapter.
type RequestAdapterOptions struct {
	// CompatibleSurface, when set, restricts the choice to adapters able
	// to present to it.
	CompatibleSurface Surface
	PowerPreference   gputypes.PowerPreference
	// Name restricts the choice to adapters whose name contains it,
	// case-insensitively. Empty matches any adapter.
	Name string
}

// AdapterInfo describes a physical adapter.
type AdapterInfo struct {
	Name    string
	Vendor  string
	Driver  string
	Backend Backends
}

// Instance is the entry point of a driver.
type Instance interface {
	CreateSurface(window platform.Window) (Surface, error)
	RequestAdapter(opts RequestAdapterOptions) (Adapter, error)
	Destroy()
}

// Adapter is a physical GPU.
type Adapter interface {
	Info() AdapterInfo
	Features() gputypes.Features
	Limits() gputypes.Limits
	RequestDevice(desc DeviceDescriptor) (Device, Queue, error)
}

// DeviceDescriptor configures a logical device.
type DeviceDescriptor struct {
	Label            string
	RequiredFeatures gputypes.Features
	RequiredLimits   gputypes.Limits
}

// Device creates GPU resources.
type Device interface {
	CreateTexture(desc TextureDescriptor) (Texture, error)
	CreateShaderModule(desc ShaderModuleDescriptor) (ShaderModule, error)
	CreateRenderPipeline(desc RenderPipelineDescriptor) (RenderPipeline, error)
	CreateCommandEncoder(label string) (CommandEncoder, error)
	Destroy()
}

// Queue executes command buffers and uploads data.
type Queue interface {
	// WriteTexture copies tightly packed premultiplied RGBA8 data of the
	// given size into dst at dst.Origin.
	WriteTexture(dst ImageCopyTexture, data []byte, size image.Point) error
	Submit(buffers ...CommandBuffer) error
}

// SurfaceConfiguration describes how a surface presents.
type SurfaceConfiguration struct {
	Usage       gputypes.TextureUsage
	Format      gputypes.TextureFormat
	Width       uint32
	Height      uint32
	PresentMode PresentMode
}

// Surface is the presentable area of a window.
type Surface interface {
	PreferredFormat(adapter Adapter) (gputypes.TextureFormat, error)
	Configure(device Device, cfg SurfaceConfiguration) error
	// AcquireTexture returns the texture for the next frame. It fails with
	// ErrSurfaceLost, ErrSurfaceOutdated, ErrSurfaceTimeout or
	// ErrOutOfMemory.
	AcquireTexture() (SurfaceTexture, error)
	Destroy()
}

// SurfaceTexture is a frame acquired from a surface.
type SurfaceTexture interface {
	// Texture returns the view to render into.
	Texture() Texture
	Present() error
}

// TextureDescriptor configures a texture.
type TextureDescriptor struct {
	Label         string
	Size          gputypes.Extent3D
	Format        gputypes.TextureFormat
	Usage         gputypes.TextureUsage
	Dimension     gputypes.TextureDimension
	MipLevelCount uint32
	SampleCount   uint32
}

// Texture is a GPU image. Textures double as their own views.
type Texture interface {
	Size() (width, height uint32)
	Format() gputypes.TextureFormat
	Destroy()
}

// ImageCopyTexture addresses a region origin inside a texture.
type ImageCopyTexture struct {
	Texture Texture
	Origin  image.Point
}

// ShaderModuleDescriptor holds driver-specific shader source.
type ShaderModuleDescriptor struct {
	Label  string
	Source []byte
}

// ShaderModule is a compiled shader.
type ShaderModule interface {
	Destroy()
}

// DepthStencilState enables depth testing for a pipeline.
type DepthStencilState struct {
	Format            gputypes.TextureFormat
	DepthWriteEnabled bool
	DepthCompare      gputypes.CompareFunction
}

// RenderPipelineDescriptor configures a pipeline. A nil Shader selects the
// driver's textured, vertex-colored pipeline.
type RenderPipelineDescriptor struct {
	Label        string
	Shader       ShaderModule
	TargetFormat gputypes.TextureFormat
	Blend        *gputypes.BlendState
	DepthStencil *DepthStencilState
}

// RenderPipeline is a compiled pipeline.
type RenderPipeline interface {
	Destroy()
}

// ColorAttachment is the color target of a render pass.
type ColorAttachment struct {
	View       Texture
	LoadOp     gputypes.LoadOp
	StoreOp    gputypes.StoreOp
	ClearValue gputypes.Color
}

// DepthAttachment is the depth target of a render pass.
type DepthAttachment struct {
	View            Texture
	DepthLoadOp     gputypes.LoadOp
	DepthStoreOp    gputypes.StoreOp
	DepthClearValue float32
}

// RenderPassDescriptor configures a render pass.
type RenderPassDescriptor struct {
	Label string
	Color ColorAttachment
	Depth *DepthAttachment
}

// CommandEncoder records GPU commands.
type CommandEncoder interface {
	BeginRenderPass(desc RenderPassDescriptor) RenderPass
	Finish() (CommandBuffer, error)
}

// CommandBuffer is a finished recording ready for Queue.Submit.
type CommandBuffer interface {
	Label() string
}

// Vertex is the immediate vertex format of a render pass. Position is in
// target pixels, UV is normalized over the bound texture and Color is
// premultiplied alpha.
type Vertex struct {
	Position [2]float32
	UV       [2]float32
	Color    [4]float32
}

// RenderPass records draws into its attachments.
type RenderPass interface {
	SetPipeline(p RenderPipeline)
	// SetBindTexture binds the texture sampled by following draws.
	SetBindTexture(t Texture)
	// SetScissorRect limits following draws to r, in target pixels.
	SetScissorRect(r image.Rectangle)
	DrawIndexed(vertices []Vertex, indices []uint32)
	End()
}
