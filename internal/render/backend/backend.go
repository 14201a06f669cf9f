// Package backend builds renderers on top of the platform graphics
// drivers.
package backend

import (
	"fmt"
	"log/slog"

	"github.com/younwookim/phantom/internal/platform"
	"github.com/younwookim/phantom/internal/render"
	"github.com/younwookim/phantom/internal/render/gpu"
	"github.com/younwookim/phantom/internal/render/hal"
	"github.com/younwookim/phantom/internal/render/hal/ebitenhal"
)

// Options configures New.
type Options struct {
	Env    hal.Env
	Logger *slog.Logger
}

// New creates a renderer of kind b for window.
func New(b render.Backend, window platform.Window, width, height uint32, opts Options) (render.Renderer, error) {
	switch b {
	case render.BackendGPU:
		backends, err := opts.Env.BackendSet()
		if err != nil {
			return nil, err
		}
		power, err := opts.Env.Power()
		if err != nil {
			return nil, err
		}
		instance := ebitenhal.NewInstance(hal.InstanceDescriptor{Backends: backends, Logger: opts.Logger})
		r, err := gpu.New(instance, window, width, height, gpu.Options{
			AdapterName:     opts.Env.AdapterName,
			PowerPreference: power,
			PresentMode:     hal.PresentModeFifo,
			Logger:          opts.Logger,
		})
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("%w: %d", render.ErrUnknownBackend, int(b))
	}
}

