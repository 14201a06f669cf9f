package ebitenplatform

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/phantom/internal/platform"
)

// maxQueuedGamepadEvents bounds the queue when the application consumes
// fewer events than the pads produce.
const maxQueuedGamepadEvents = 256

// gamepadQueue collects gamepad events each tick. The application takes
// at most one per frame.
type gamepadQueue struct {
	events []platform.GamepadEvent
	ids    []ebiten.GamepadID
	now    func() time.Time
}

func newGamepadQueue() *gamepadQueue {
	return &gamepadQueue{now: time.Now}
}

func (q *gamepadQueue) poll() {
	now := q.now()
	for _, id := range inpututil.AppendJustConnectedGamepadIDs(nil) {
		q.push(platform.GamepadEvent{
			ID:   int(id),
			Kind: platform.GamepadConnected,
			Name: ebiten.GamepadName(id),
			Time: now,
		})
	}

	q.ids = ebiten.AppendGamepadIDs(q.ids[:0])
	for _, id := range q.ids {
		if inpututil.IsGamepadJustDisconnected(id) {
			q.push(platform.GamepadEvent{ID: int(id), Kind: platform.GamepadDisconnected, Time: now})
			continue
		}
		for b := ebiten.GamepadButton(0); b <= ebiten.GamepadButtonMax; b++ {
			if inpututil.IsGamepadButtonJustPressed(id, b) {
				q.push(platform.GamepadEvent{ID: int(id), Kind: platform.GamepadButtonPressed, Button: int(b), Time: now})
			}
			if inpututil.IsGamepadButtonJustReleased(id, b) {
				q.push(platform.GamepadEvent{ID: int(id), Kind: platform.GamepadButtonReleased, Button: int(b), Time: now})
			}
		}
	}
}

func (q *gamepadQueue) push(ev platform.GamepadEvent) {
	if len(q.events) >= maxQueuedGamepadEvents {
		q.events = q.events[1:]
	}
	q.events = append(q.events, ev)
}

func (q *gamepadQueue) next() (platform.GamepadEvent, bool) {
	if len(q.events) == 0 {
		return platform.GamepadEvent{}, false
	}
	ev := q.events[0]
	q.events = q.events[1:]
	return ev, true
}
