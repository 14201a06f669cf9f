// Package render defines the renderer used by the application loop. It
// has no platform dependencies; package backend builds implementations.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/younwookim/phantom/internal/application/scene"
	"github.com/younwookim/phantom/internal/gui"
	"github.com/younwookim/phantom/internal/render/hal"
)

var (
	// ErrAdapterNotFound is returned when no compatible adapter exists.
	ErrAdapterNotFound = hal.ErrAdapterNotFound
	// ErrUnknownBackend is returned for an unsupported Backend value.
	ErrUnknownBackend = errors.New("unknown render backend")
)

// Renderer draws the GUI overlay and the scene into the window.
type Renderer interface {
	// Resize adapts the render targets to the window size in physical
	// pixels. A zero dimension pauses rendering until a non-zero size
	// arrives.
	Resize(width, height uint32)
	// Render draws and presents one frame. A non-nil error is fatal.
	Render(paint gui.PaintData, world *scene.DrawList) error
}

// Backend selects a renderer implementation.
type Backend int

const (
	BackendGPU Backend = iota
)

// String returns the string representation of the backend
func (b Backend) String() string {
	switch b {
	case BackendGPU:
		return "gpu"
	default:
		return "unknown"
	}
}

// ParseBackend parses a backend name. The empty string selects BackendGPU.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "gpu", "wgpu":
		return BackendGPU, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

// IsFatal reports whether err returned by Render must end the application.
func IsFatal(err error) bool {
	return err != nil && errors.Is(err, hal.ErrOutOfMemory)
}
