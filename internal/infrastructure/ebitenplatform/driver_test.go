package ebitenplatform

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/phantom/internal/platform"
)

func TestNew_RejectsEmptyWindow(t *testing.T) {
	_, err := New(Options{Width: 0, Height: 600})
	assert.ErrorIs(t, err, ErrInvalidWindowSize)

	_, err = New(Options{Width: 800, Height: -1})
	assert.ErrorIs(t, err, ErrInvalidWindowSize)
}

func TestInputPoller_FirstPollReportsCursor(t *testing.T) {
	p := newInputPoller()

	evs := p.events(inputSnapshot{cursorX: 10, cursorY: 20, focused: true})

	assert.Equal(t, []platform.Event{platform.CursorMoved{X: 10, Y: 20}}, evs)
	assert.Empty(t, p.events(inputSnapshot{cursorX: 10, cursorY: 20, focused: true}))
}

func TestInputPoller_EventOrder(t *testing.T) {
	p := newInputPoller()
	p.events(inputSnapshot{focused: true})

	evs := p.events(inputSnapshot{
		pressedKeys:     []ebiten.Key{ebiten.KeyEscape},
		releasedKeys:    []ebiten.Key{ebiten.KeyA},
		pressedButtons:  []platform.MouseButton{platform.MouseButtonLeft},
		releasedButtons: []platform.MouseButton{platform.MouseButtonRight},
		cursorX:         5,
		wheelY:          -1,
		focused:         false,
	})

	assert.Equal(t, []platform.Event{
		platform.Focused{Focused: false},
		platform.CursorMoved{X: 5, Y: 0},
		platform.KeyboardInput{Key: platform.KeyEscape, State: platform.Pressed},
		platform.KeyboardInput{Key: "A", State: platform.Released},
		platform.MouseInput{Button: platform.MouseButtonLeft, State: platform.Pressed},
		platform.MouseInput{Button: platform.MouseButtonRight, State: platform.Released},
		platform.MouseWheel{DY: -1},
	}, evs)
}

func TestDroppedFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"scene.glb":        {Data: []byte("glTF")},
		"textures/a.png":   {Data: []byte{0x89}},
		"textures/b.png":   {Data: []byte{0x89}},
		"readme.txt":       {Data: []byte("hi")},
		"nested/deep/file": {Data: nil},
	}

	evs := droppedFiles(fsys)

	var paths []string
	for _, ev := range evs {
		fd, ok := ev.(platform.FileDropped)
		require.True(t, ok)
		assert.NotNil(t, fd.FS)
		paths = append(paths, fd.Path)
	}
	assert.ElementsMatch(t, []string{"scene.glb", "textures", "readme.txt", "nested"}, paths)
	assert.Nil(t, droppedFiles(nil))
}

func TestGamepadQueue_FIFOAndBound(t *testing.T) {
	q := newGamepadQueue()
	q.now = func() time.Time { return time.Unix(0, 0) }

	_, ok := q.next()
	assert.False(t, ok)

	for i := 0; i < maxQueuedGamepadEvents+3; i++ {
		q.push(platform.GamepadEvent{ID: i})
	}

	first, ok := q.next()
	require.True(t, ok)
	assert.Equal(t, 3, first.ID, "oldest events are dropped when full")
	assert.Len(t, q.events, maxQueuedGamepadEvents-1)
}

func TestDriver_DispatchAndExit(t *testing.T) {
	var got []platform.Event
	d := &Driver{handler: func(ev platform.Event) platform.ControlFlow {
		got = append(got, ev)
		if _, ok := ev.(platform.CloseRequested); ok {
			return platform.Exit
		}
		return platform.Continue
	}}

	assert.Equal(t, platform.Continue, d.dispatch(platform.FrameReady{}))
	assert.Equal(t, platform.Exit, d.dispatch(platform.CloseRequested{}))
	assert.Equal(t, platform.Exit, d.dispatch(platform.FrameReady{}), "nothing is delivered after exit")

	assert.Len(t, got, 2)
	assert.True(t, d.exit)
}

func TestDriver_QueueDrain(t *testing.T) {
	d := &Driver{}

	d.queue(platform.Resized{Width: 1, Height: 2})
	d.queue(platform.CloseRequested{})

	assert.Equal(t, []platform.Event{platform.Resized{Width: 1, Height: 2}, platform.CloseRequested{}}, d.drain())
	assert.Empty(t, d.drain())
}

func TestDriver_ScreenOnlyDuringDraw(t *testing.T) {
	var seen bool
	d := &Driver{}
	d.handler = func(ev platform.Event) platform.ControlFlow {
		if _, ok := ev.(platform.FrameReady); ok {
			seen = d.Screen() != nil
		}
		return platform.Continue
	}
	screen := &ebiten.Image{}

	d.Draw(screen)

	assert.True(t, seen)
	assert.Nil(t, d.Screen())
}
