package resources

import "github.com/younwookim/phantom/internal/platform"

// Input tracks keyboard and mouse state from platform events.
type Input struct {
	keys    map[platform.Key]bool
	buttons map[platform.MouseButton]bool

	cursorX, cursorY float64
	scrollX, scrollY float64
}

// NewInput creates an empty input tracker.
func NewInput() *Input {
	return &Input{
		keys:    make(map[platform.Key]bool),
		buttons: make(map[platform.MouseButton]bool),
	}
}

// Handle updates the tracked state from ev.
func (in *Input) Handle(ev platform.Event) {
	switch e := ev.(type) {
	case platform.KeyboardInput:
		in.keys[e.Key] = e.State == platform.Pressed
	case platform.MouseInput:
		in.buttons[e.Button] = e.State == platform.Pressed
	case platform.CursorMoved:
		in.cursorX, in.cursorY = e.X, e.Y
	case platform.MouseWheel:
		in.scrollX += e.DX
		in.scrollY += e.DY
	case platform.Focused:
		if !e.Focused {
			clear(in.keys)
			clear(in.buttons)
		}
	}
}

// EndFrame clears per-frame accumulators.
func (in *Input) EndFrame() {
	in.scrollX, in.scrollY = 0, 0
}

// IsKeyPressed reports whether key is held down.
func (in *Input) IsKeyPressed(key platform.Key) bool {
	return in.keys[key]
}

// IsMousePressed reports whether button is held down.
func (in *Input) IsMousePressed(button platform.MouseButton) bool {
	return in.buttons[button]
}

// Cursor returns the last cursor position in physical pixels.
func (in *Input) Cursor() (x, y float64) {
	return in.cursorX, in.cursorY
}

// Scroll returns the scroll accumulated during the current frame.
func (in *Input) Scroll() (dx, dy float64) {
	return in.scrollX, in.scrollY
}
