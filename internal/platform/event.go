package platform

import "io/fs"

// Event is a platform event delivered to the event loop handler.
type Event interface {
	isEvent()
}

// CloseRequested is sent when the user asks to close the window.
type CloseRequested struct{}

// KeyboardInput reports a key press or release.
type KeyboardInput struct {
	Key   Key
	State ElementState
}

// MouseInput reports a mouse button press or release.
type MouseInput struct {
	Button MouseButton
	State  ElementState
}

// CursorMoved reports the cursor position in physical pixels.
type CursorMoved struct {
	X, Y float64
}

// MouseWheel reports a scroll delta.
type MouseWheel struct {
	DX, DY float64
}

// FileDropped reports a file dropped onto the window.
// FS is the dropped file system when the platform exposes one.
type FileDropped struct {
	Path string
	FS   fs.FS
}

// Resized reports the new inner size of the window in physical pixels.
type Resized struct {
	Width, Height uint32
}

// ScaleFactorChanged reports a new device scale factor.
type ScaleFactorChanged struct {
	ScaleFactor float64
}

// Focused reports a window focus change.
type Focused struct {
	Focused bool
}

// FrameReady is sent once per loop iteration after the pending events
// have been delivered. It is the signal to update and render.
type FrameReady struct{}

func (CloseRequested) isEvent()     {}
func (KeyboardInput) isEvent()      {}
func (MouseInput) isEvent()         {}
func (CursorMoved) isEvent()        {}
func (MouseWheel) isEvent()         {}
func (FileDropped) isEvent()        {}
func (Resized) isEvent()            {}
func (ScaleFactorChanged) isEvent() {}
func (Focused) isEvent()            {}
func (FrameReady) isEvent()         {}

// ControlFlow tells the event loop what to do after a handler returns.
type ControlFlow int

const (
	Continue ControlFlow = iota
	Exit
)

// String returns the string representation of the control flow
func (c ControlFlow) String() string {
	switch c {
	case Continue:
		return "Continue"
	case Exit:
		return "Exit"
	default:
		return "Unknown"
	}
}

// Handler consumes one event and decides whether the loop keeps running.
type Handler func(Event) ControlFlow

// EventLoop runs until the handler returns Exit or the platform shuts down.
type EventLoop interface {
	Run(h Handler) error
}
