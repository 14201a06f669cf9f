// Package resources holds the handles a state may use during one callback.
package resources

import (
	"errors"
	"fmt"

	"github.com/younwookim/phantom/internal/application/scene"
	"github.com/younwookim/phantom/internal/gui"
	"github.com/younwookim/phantom/internal/platform"
	"github.com/younwookim/phantom/internal/render"
)

// ErrNoWindow is returned by window operations when no window is attached.
var ErrNoWindow = errors.New("no window attached")

// Resources is rebuilt for every loop iteration from the handles owned by
// the orchestrator. A callback must not keep a reference to it.
type Resources struct {
	Window   platform.Window
	Gamepads platform.GamepadSource
	Renderer render.Renderer
	GUI      *gui.Context
	Input    *Input
	System   *System
	Scene    *scene.DrawList
}

// SetCursorGrab confines the cursor to the window.
func (r *Resources) SetCursorGrab(grab bool) error {
	if r.Window == nil {
		return ErrNoWindow
	}
	if err := r.Window.SetCursorGrab(grab); err != nil {
		return fmt.Errorf("failed to set cursor grab: %w", err)
	}
	return nil
}

// SetCursorVisible shows or hides the cursor.
func (r *Resources) SetCursorVisible(visible bool) {
	if r.Window == nil {
		return
	}
	r.Window.SetCursorVisible(visible)
}

// RequestExit asks the orchestrator to shut down after the current callback.
func (r *Resources) RequestExit() {
	if r.System != nil {
		r.System.ExitRequested = true
	}
}

// Release drops every borrowed handle.
func (r *Resources) Release() {
	*r = Resources{}
}
