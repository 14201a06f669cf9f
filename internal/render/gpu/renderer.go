// Package gpu renders the GUI overlay and scene draw lists through a hal
// driver and recovers from surface loss.
package gpu

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/younwookim/phantom/internal/application/scene"
	"github.com/younwookim/phantom/internal/gui"
	"github.com/younwookim/phantom/internal/platform"
	"github.com/younwookim/phantom/internal/render/hal"
)

// ClearColor is the background of every frame.
var ClearColor = gputypes.Color{R: 0.1, G: 0.2, B: 0.3, A: 1}

const depthFormat = gputypes.TextureFormatDepth24PlusStencil8

// Options configures adapter selection and the device.
type Options struct {
	AdapterName     string
	PowerPreference gputypes.PowerPreference

	// OptionalFeatures are enabled when the adapter supports them.
	OptionalFeatures gputypes.Features
	// RequiredFeatures are always requested; the device request fails
	// without them.
	RequiredFeatures gputypes.Features
	PresentMode      hal.PresentMode

	Logger *slog.Logger
}

// Renderer draws frames to a window surface.
type Renderer struct {
	logger *slog.Logger

	surface hal.Surface
	adapter hal.Adapter
	device  hal.Device
	queue   hal.Queue
	config  hal.SurfaceConfiguration
	depth   hal.Texture

	gui   *guiPass
	world *worldPass

	// suspended is set while the window has no area, e.g. minimized.
	suspended bool
}

// New acquires a device for window and configures its surface at
// width x height. Device acquisition is synchronous.
func New(instance hal.Instance, window platform.Window, width, height uint32, opts Options) (*Renderer, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	surface, err := instance.CreateSurface(window)
	if err != nil {
		return nil, fmt.Errorf("failed to create surface: %w", err)
	}

	adapter, err := instance.RequestAdapter(hal.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   opts.PowerPreference,
		Name:              opts.AdapterName,
	})
	switch {
	case errors.Is(err, hal.ErrAdapterNotFound):
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	case err != nil:
		return nil, fmt.Errorf("%w: %w", hal.ErrAdapterNotFound, err)
	case adapter == nil:
		return nil, hal.ErrAdapterNotFound
	}
	info := adapter.Info()
	logger.Info("GPU adapter selected",
		"name", info.Name,
		"vendor", info.Vendor,
		"backend", info.Backend.String(),
		"features", adapter.Features(),
	)

	features := (opts.OptionalFeatures & adapter.Features()) | opts.RequiredFeatures
	device, queue, err := adapter.RequestDevice(hal.DeviceDescriptor{
		Label:            "Render Device",
		RequiredFeatures: features,
		RequiredLimits:   adapter.Limits(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request device: %w", err)
	}

	format, err := surface.PreferredFormat(adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to get preferred surface format: %w", err)
	}

	r := &Renderer{
		logger:  logger,
		surface: surface,
		adapter: adapter,
		device:  device,
		queue:   queue,
		config: hal.SurfaceConfiguration{
			Usage:       gputypes.TextureUsageRenderAttachment,
			Format:      format,
			Width:       width,
			Height:      height,
			PresentMode: opts.PresentMode,
		},
	}
	if err := surface.Configure(device, r.config); err != nil {
		return nil, fmt.Errorf("failed to configure surface: %w", err)
	}
	if r.depth, err = createDepthTexture(device, width, height); err != nil {
		return nil, err
	}
	if r.world, err = newWorldPass(device, format); err != nil {
		return nil, err
	}
	if r.gui, err = newGUIPass(device, format); err != nil {
		return nil, err
	}
	return r, nil
}

func createDepthTexture(device hal.Device, width, height uint32) (hal.Texture, error) {
	tex, err := device.CreateTexture(hal.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          gputypes.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		Format:        depthFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
		Dimension:     gputypes.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create depth texture: %w", err)
	}
	return tex, nil
}

// Config returns the current surface configuration.
func (r *Renderer) Config() hal.SurfaceConfiguration {
	return r.config
}

// AdapterInfo returns the selected adapter.
func (r *Renderer) AdapterInfo() hal.AdapterInfo {
	return r.adapter.Info()
}

// Resize reconfigures the surface and rebuilds the depth texture.
// A zero width or height keeps the configuration and suspends rendering
// until the next non-zero size.
func (r *Renderer) Resize(width, height uint32) {
	if width == 0 || height == 0 {
		r.suspended = true
		return
	}
	r.suspended = false
	r.config.Width = width
	r.config.Height = height
	if err := r.surface.Configure(r.device, r.config); err != nil {
		r.logger.Error("failed to reconfigure surface", "error", err, "width", width, "height", height)
	}
	if r.depth != nil {
		r.depth.Destroy()
	}
	depth, err := createDepthTexture(r.device, width, height)
	if err != nil {
		r.depth = nil
		r.logger.Error("failed to recreate depth texture", "error", err)
		return
	}
	r.depth = depth
}

// Render draws one frame. Surface loss, staleness and timeouts reconfigure
// the surface and drop the frame. Running out of memory is returned as a
// fatal error. Other failures are logged and the frame is skipped.
func (r *Renderer) Render(paint gui.PaintData, world *scene.DrawList) error {
	if r.suspended {
		r.gui.queueTextures(paint.Textures.Set)
		r.gui.queueFrees(paint.Textures.Free)
		return nil
	}
	err := r.renderFrame(paint, world)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, hal.ErrSurfaceLost),
		errors.Is(err, hal.ErrSurfaceOutdated),
		errors.Is(err, hal.ErrSurfaceTimeout):
		r.logger.Debug("surface needs reconfiguration", "error", err)
		r.Resize(r.config.Width, r.config.Height)
		return nil
	case errors.Is(err, hal.ErrOutOfMemory):
		return fmt.Errorf("render frame: %w", err)
	default:
		r.logger.Error("failed to render frame", "error", err)
		return nil
	}
}

func (r *Renderer) renderFrame(paint gui.PaintData, world *scene.DrawList) error {
	r.gui.queueTextures(paint.Textures.Set)
	submitted := false
	defer func() {
		if !submitted {
			r.gui.queueFrees(paint.Textures.Free)
		}
	}()
	if err := r.gui.flushTextures(r.queue); err != nil {
		return err
	}

	frame, err := r.surface.AcquireTexture()
	if err != nil {
		return fmt.Errorf("failed to acquire surface texture: %w", err)
	}
	view := frame.Texture()

	r.gui.updateBuffers(paint.Jobs, screenDescriptor{
		width:  r.config.Width,
		height: r.config.Height,
		scale:  paint.PixelsPerPoint,
	})

	encoder, err := r.device.CreateCommandEncoder("Render Encoder")
	if err != nil {
		return fmt.Errorf("failed to create command encoder: %w", err)
	}
	pass := encoder.BeginRenderPass(hal.RenderPassDescriptor{
		Label: "Render Pass",
		Color: hal.ColorAttachment{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: ClearColor,
		},
		Depth: &hal.DepthAttachment{
			View:            r.depth,
			DepthLoadOp:     gputypes.LoadOpClear,
			DepthStoreOp:    gputypes.StoreOpStore,
			DepthClearValue: 1,
		},
	})
	r.world.execute(pass, world, r.config.Width, r.config.Height)
	r.gui.execute(pass)
	pass.End()

	cmd, err := encoder.Finish()
	if err != nil {
		return fmt.Errorf("failed to finish command encoder: %w", err)
	}
	if err := r.queue.Submit(cmd); err != nil {
		return fmt.Errorf("failed to submit commands: %w", err)
	}
	submitted = true
	r.gui.freeTextures(paint.Textures.Free)

	if err := frame.Present(); err != nil {
		return fmt.Errorf("failed to present frame: %w", err)
	}
	return nil
}

// Destroy releases every GPU resource.
func (r *Renderer) Destroy() {
	r.gui.destroy()
	r.world.destroy()
	if r.depth != nil {
		r.depth.Destroy()
	}
	r.surface.Destroy()
	r.device.Destroy()
}
