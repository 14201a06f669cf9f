// Package ebitenhal implements hal on top of Ebitengine. Textures are
// ebiten images, shader modules are Kage programs and the surface is the
// screen image handed to the game's Draw.
package ebitenhal

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/phantom/internal/platform"
	"github.com/younwookim/phantom/internal/render/hal"
)

// ScreenTarget is a window that exposes the screen image while a frame is
// being drawn. Screen returns nil outside of drawing.
type ScreenTarget interface {
	Screen() *ebiten.Image
}

// GraphicsLibrary maps a backend set to the library ebiten should use.
// A set naming exactly one API forces it; anything else lets ebiten choose.
func GraphicsLibrary(b hal.Backends) ebiten.GraphicsLibrary {
	switch b {
	case hal.BackendOpenGL:
		return ebiten.GraphicsLibraryOpenGL
	case hal.BackendDirectX:
		return ebiten.GraphicsLibraryDirectX
	case hal.BackendMetal:
		return ebiten.GraphicsLibraryMetal
	default:
		return ebiten.GraphicsLibraryAuto
	}
}

func libraryName(lib ebiten.GraphicsLibrary) string {
	switch lib {
	case ebiten.GraphicsLibraryOpenGL:
		return "OpenGL"
	case ebiten.GraphicsLibraryDirectX:
		return "DirectX"
	case ebiten.GraphicsLibraryMetal:
		return "Metal"
	default:
		return "Auto"
	}
}

// Instance is the ebiten driver entry point.
type Instance struct {
	backends hal.Backends
	library  ebiten.GraphicsLibrary
	logger   *slog.Logger
}

// NewInstance creates an instance restricted to desc.Backends.
func NewInstance(desc hal.InstanceDescriptor) *Instance {
	backends := desc.Backends
	if backends == 0 {
		backends = hal.BackendsAll
	}
	logger := desc.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Instance{
		backends: backends,
		library:  GraphicsLibrary(backends),
		logger:   logger,
	}
}

// CreateSurface wraps a window exposing its screen image.
func (i *Instance) CreateSurface(window platform.Window) (hal.Surface, error) {
	target, ok := window.(ScreenTarget)
	if !ok {
		return nil, fmt.Errorf("%w: window %T has no screen image", hal.ErrIncompatibleSurface, window)
	}
	return &Surface{instance: i, target: target}, nil
}

// RequestAdapter returns the single ebiten adapter when it matches opts.
func (i *Instance) RequestAdapter(opts hal.RequestAdapterOptions) (hal.Adapter, error) {
	if opts.CompatibleSurface != nil {
		s, ok := opts.CompatibleSurface.(*Surface)
		if !ok || s.instance != i {
			return nil, fmt.Errorf("%w: surface %T belongs to another driver", hal.ErrAdapterNotFound, opts.CompatibleSurface)
		}
	}
	if opts.PowerPreference != gputypes.PowerPreferenceNone {
		// ebiten picks the GPU itself.
		i.logger.Info("power preference not supported, using the system default adapter",
			"preference", opts.PowerPreference.String())
	}
	a := &Adapter{instance: i}
	if opts.Name != "" && !strings.Contains(strings.ToLower(a.Info().Name), strings.ToLower(opts.Name)) {
		return nil, fmt.Errorf("%w: no adapter named %q", hal.ErrAdapterNotFound, opts.Name)
	}
	return a, nil
}

func (i *Instance) Destroy() {}

// Adapter is the ebiten graphics driver seen as one physical device.
type Adapter struct {
	instance *Instance
}

func (a *Adapter) Info() hal.AdapterInfo {
	return hal.AdapterInfo{
		Name:    "Ebitengine " + libraryName(a.instance.library),
		Vendor:  "Ebitengine",
		Driver:  libraryName(a.instance.library),
		Backend: a.instance.backends,
	}
}

// Features returns no optional features.
func (a *Adapter) Features() gputypes.Features {
	return 0
}

func (a *Adapter) Limits() gputypes.Limits {
	return gputypes.DefaultLimits()
}

// RequestDevice creates the device. It fails with hal.ErrDeviceRejected
// when desc asks for features or limits the adapter lacks.
func (a *Adapter) RequestDevice(desc hal.DeviceDescriptor) (hal.Device, hal.Queue, error) {
	if missing := desc.RequiredFeatures &^ a.Features(); missing != 0 {
		return nil, nil, fmt.Errorf("%w: unsupported features %v", hal.ErrDeviceRejected, missing)
	}
	if desc.RequiredLimits.MaxTextureDimension2D > a.Limits().MaxTextureDimension2D {
		return nil, nil, fmt.Errorf("%w: texture dimension %d exceeds adapter limit", hal.ErrDeviceRejected, desc.RequiredLimits.MaxTextureDimension2D)
	}
	d := &Device{label: desc.Label}
	return d, &Queue{}, nil
}
