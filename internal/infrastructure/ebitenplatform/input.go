package ebitenplatform

import (
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/phantom/internal/platform"
)

var mouseButtons = []struct {
	ebiten ebiten.MouseButton
	button platform.MouseButton
}{
	{ebiten.MouseButtonLeft, platform.MouseButtonLeft},
	{ebiten.MouseButtonRight, platform.MouseButtonRight},
	{ebiten.MouseButtonMiddle, platform.MouseButtonMiddle},
	{ebiten.MouseButton3, platform.MouseButtonBack},
	{ebiten.MouseButton4, platform.MouseButtonForward},
}

// inputSnapshot is the input state ebiten reports for one tick.
type inputSnapshot struct {
	pressedKeys     []ebiten.Key
	releasedKeys    []ebiten.Key
	pressedButtons  []platform.MouseButton
	releasedButtons []platform.MouseButton
	cursorX         int
	cursorY         int
	wheelX          float64
	wheelY          float64
	focused         bool
	dropped         fs.FS
}

// readSnapshot reads the current input state from ebiten.
func readSnapshot(keys []ebiten.Key) inputSnapshot {
	var s inputSnapshot
	s.pressedKeys = inpututil.AppendJustPressedKeys(keys[:0])
	s.releasedKeys = inpututil.AppendJustReleasedKeys(nil)
	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b.ebiten) {
			s.pressedButtons = append(s.pressedButtons, b.button)
		}
		if inpututil.IsMouseButtonJustReleased(b.ebiten) {
			s.releasedButtons = append(s.releasedButtons, b.button)
		}
	}
	s.cursorX, s.cursorY = ebiten.CursorPosition()
	s.wheelX, s.wheelY = ebiten.Wheel()
	s.focused = ebiten.IsFocused()
	s.dropped = ebiten.DroppedFiles()
	return s
}

// inputPoller converts successive snapshots into platform events.
type inputPoller struct {
	keys    []ebiten.Key
	cursorX int
	cursorY int
	focused bool
	started bool
}

func newInputPoller() *inputPoller {
	return &inputPoller{focused: true}
}

func (p *inputPoller) poll() []platform.Event {
	return p.events(readSnapshot(p.keys))
}

func (p *inputPoller) events(s inputSnapshot) []platform.Event {
	var evs []platform.Event

	if s.focused != p.focused {
		p.focused = s.focused
		evs = append(evs, platform.Focused{Focused: s.focused})
	}
	if !p.started || s.cursorX != p.cursorX || s.cursorY != p.cursorY {
		p.started = true
		p.cursorX, p.cursorY = s.cursorX, s.cursorY
		evs = append(evs, platform.CursorMoved{X: float64(s.cursorX), Y: float64(s.cursorY)})
	}
	for _, k := range s.pressedKeys {
		evs = append(evs, platform.KeyboardInput{Key: platform.Key(k.String()), State: platform.Pressed})
	}
	for _, k := range s.releasedKeys {
		evs = append(evs, platform.KeyboardInput{Key: platform.Key(k.String()), State: platform.Released})
	}
	for _, b := range s.pressedButtons {
		evs = append(evs, platform.MouseInput{Button: b, State: platform.Pressed})
	}
	for _, b := range s.releasedButtons {
		evs = append(evs, platform.MouseInput{Button: b, State: platform.Released})
	}
	if s.wheelX != 0 || s.wheelY != 0 {
		evs = append(evs, platform.MouseWheel{DX: s.wheelX, DY: s.wheelY})
	}
	evs = append(evs, droppedFiles(s.dropped)...)

	p.keys = s.pressedKeys
	return evs
}

// droppedFiles lists the top-level entries of a drop.
func droppedFiles(fsys fs.FS) []platform.Event {
	if fsys == nil {
		return nil
	}
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil
	}
	evs := make([]platform.Event, 0, len(entries))
	for _, e := range entries {
		evs = append(evs, platform.FileDropped{Path: e.Name(), FS: fsys})
	}
	return evs
}
