package platform

import "errors"

// ErrCursorGrabUnsupported is returned when the platform cannot confine the cursor.
var ErrCursorGrabUnsupported = errors.New("cursor grab is not supported")

// Window is the application window.
type Window interface {
	// Size returns the inner size in physical pixels.
	Size() (width, height uint32)
	ScaleFactor() float64
	SetTitle(title string)
	SetCursorGrab(grab bool) error
	SetCursorVisible(visible bool)
	SetFullscreen(fullscreen bool)
	IsFullscreen() bool
}
