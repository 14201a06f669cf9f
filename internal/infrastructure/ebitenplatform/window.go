package ebitenplatform

import (
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/phantom/internal/platform"
)

// Size returns the screen size in physical pixels.
func (d *Driver) Size() (uint32, uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.width, d.height
}

// ScaleFactor returns the device scale factor.
func (d *Driver) ScaleFactor() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scale
}

func (d *Driver) SetTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// SetCursorGrab captures the cursor. Browsers and mobile platforms
// cannot capture it.
func (d *Driver) SetCursorGrab(grab bool) error {
	switch runtime.GOOS {
	case "js", "android", "ios":
		return platform.ErrCursorGrabUnsupported
	}
	d.grabbed = grab
	d.applyCursor()
	return nil
}

func (d *Driver) SetCursorVisible(visible bool) {
	d.cursorShown = visible
	d.applyCursor()
}

func (d *Driver) applyCursor() {
	switch {
	case d.grabbed:
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	case d.cursorShown:
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	default:
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
}

func (d *Driver) SetFullscreen(fullscreen bool) {
	ebiten.SetFullscreen(fullscreen)
}

func (d *Driver) IsFullscreen() bool {
	return ebiten.IsFullscreen()
}
