package replay

import "github.com/younwookim/phantom/internal/platform"

// FormatVersion is the replay file format version.
const FormatVersion = "2.0"

// Recorded event kinds.
const (
	KindKey    = "key"
	KindMouse  = "mouse"
	KindCursor = "cursor"
	KindWheel  = "wheel"
	KindFile   = "file"
	KindFocus  = "focus"
)

// RecordedEvent is the serialized form of one input event
type RecordedEvent struct {
	Kind    string  `json:"k"`
	Key     string  `json:"key,omitempty"`
	Pressed bool    `json:"p,omitempty"` // Pressed or focused
	Button  int     `json:"b,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Path    string  `json:"path,omitempty"`
}

// FrameEvents holds the input events delivered before a frame
type FrameEvents struct {
	F      int             `json:"f"` // Frame number
	Events []RecordedEvent `json:"e"`
}

// ReplayData contains all data needed to replay an input session
type ReplayData struct {
	Version    string        `json:"version"`
	StartTime  string        `json:"startTime"`
	FrameCount int           `json:"frameCount"`
	Frames     []FrameEvents `json:"frames"`
}

// FromEvent converts a platform input event into its recorded form.
// It reports false for events that are not recorded.
func FromEvent(ev platform.Event) (RecordedEvent, bool) {
	switch e := ev.(type) {
	case platform.KeyboardInput:
		return RecordedEvent{Kind: KindKey, Key: string(e.Key), Pressed: e.State == platform.Pressed}, true
	case platform.MouseInput:
		return RecordedEvent{Kind: KindMouse, Button: int(e.Button), Pressed: e.State == platform.Pressed}, true
	case platform.CursorMoved:
		return RecordedEvent{Kind: KindCursor, X: e.X, Y: e.Y}, true
	case platform.MouseWheel:
		return RecordedEvent{Kind: KindWheel, X: e.DX, Y: e.DY}, true
	case platform.FileDropped:
		return RecordedEvent{Kind: KindFile, Path: e.Path}, true
	case platform.Focused:
		return RecordedEvent{Kind: KindFocus, Pressed: e.Focused}, true
	}
	return RecordedEvent{}, false
}

// Event converts the recorded form back into a platform event.
// It reports false for unknown kinds.
func (r RecordedEvent) Event() (platform.Event, bool) {
	switch r.Kind {
	case KindKey:
		return platform.KeyboardInput{Key: platform.Key(r.Key), State: elementState(r.Pressed)}, true
	case KindMouse:
		return platform.MouseInput{Button: platform.MouseButton(r.Button), State: elementState(r.Pressed)}, true
	case KindCursor:
		return platform.CursorMoved{X: r.X, Y: r.Y}, true
	case KindWheel:
		return platform.MouseWheel{DX: r.X, DY: r.Y}, true
	case KindFile:
		return platform.FileDropped{Path: r.Path}, true
	case KindFocus:
		return platform.Focused{Focused: r.Pressed}, true
	}
	return nil, false
}

func elementState(pressed bool) platform.ElementState {
	if pressed {
		return platform.Pressed
	}
	return platform.Released
}

// isRecorded reports whether the replayer owns events of this type.
func isRecorded(ev platform.Event) bool {
	_, ok := FromEvent(ev)
	return ok
}
