package platform

import "time"

// ElementState is the state of a key or button.
type ElementState int

const (
	Released ElementState = iota
	Pressed
)

// String returns the string representation of the element state
func (s ElementState) String() string {
	switch s {
	case Pressed:
		return "Pressed"
	case Released:
		return "Released"
	default:
		return "Unknown"
	}
}

// Key names a keyboard key. Names follow the platform's key names
// ("A", "Digit1", "Escape", "ArrowLeft", ...).
type Key string

const (
	KeyEscape    Key = "Escape"
	KeyEnter     Key = "Enter"
	KeySpace     Key = "Space"
	KeyBackspace Key = "Backspace"
	KeyTab       Key = "Tab"
	KeyF1        Key = "F1"
	KeyF11       Key = "F11"
)

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonBack
	MouseButtonForward
)

// String returns the string representation of the mouse button
func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "Left"
	case MouseButtonRight:
		return "Right"
	case MouseButtonMiddle:
		return "Middle"
	case MouseButtonBack:
		return "Back"
	case MouseButtonForward:
		return "Forward"
	default:
		return "Unknown"
	}
}

// GamepadEventKind classifies a gamepad event.
type GamepadEventKind int

const (
	GamepadConnected GamepadEventKind = iota
	GamepadDisconnected
	GamepadButtonPressed
	GamepadButtonReleased
	GamepadAxisChanged
)

// String returns the string representation of the gamepad event kind
func (k GamepadEventKind) String() string {
	switch k {
	case GamepadConnected:
		return "Connected"
	case GamepadDisconnected:
		return "Disconnected"
	case GamepadButtonPressed:
		return "ButtonPressed"
	case GamepadButtonReleased:
		return "ButtonReleased"
	case GamepadAxisChanged:
		return "AxisChanged"
	default:
		return "Unknown"
	}
}

// GamepadEvent is one event taken from a gamepad source.
type GamepadEvent struct {
	ID     int
	Kind   GamepadEventKind
	Button int
	Axis   int
	Value  float64
	Name   string
	Time   time.Time
}

// GamepadSource is a queue of pending gamepad events.
type GamepadSource interface {
	// NextEvent removes and returns the oldest pending event.
	NextEvent() (GamepadEvent, bool)
}
